/*
Package rostersdk is a client for the Rosterra REST API.

# SDKClient vs Session

SDKClient covers the endpoints that need no token (signup, login, health).
Logging in yields a Session which attaches the bearer token to every call:

	client := rostersdk.NewSDKClient("http://localhost:5000/api")

	session, login, err := client.AuthenticateWithPassword(ctx, "ann@x.com", "secret1")
	if err != nil {
		var apiErr *rostersdk.APIError
		if errors.As(err, &apiErr) && apiErr.AccountStatus == "pending" {
			// waiting for an admin
		}
		return err
	}

	roasters, err := session.ListRoasters(ctx)

A Session can also be rebuilt from a stored token with client.NewSession(token).

# Errors

Every non-2xx answer is returned as *APIError. Network failures and 5xx answers
satisfy IsUnavailable, which is what the local-first sync layer keys off.
*/
package rostersdk
