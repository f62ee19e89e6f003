package rostersdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/stretchr/testify/require"
)

func TestLogin_NotApproved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(rostersdk.ErrorResponse{
			Error:  "Your account is pending admin approval. Please wait for approval to login.",
			Code:   "account_not_approved",
			Status: "pending",
		})
	}))
	defer srv.Close()

	client := rostersdk.NewSDKClient(srv.URL + "/api/")
	_, _, err := client.AuthenticateWithPassword(context.Background(), "ann@x.com", "secret1")

	var apiErr *rostersdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "pending", apiErr.AccountStatus)
	require.True(t, rostersdk.IsUnauthorized(err))
	require.False(t, rostersdk.IsUnavailable(err))
}

func TestSession_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/users/pending/count":
			_ = json.NewEncoder(w).Encode(rostersdk.CountResponse{Count: 3})
		case "/api/roasters":
			_ = json.NewEncoder(w).Encode([]rostersdk.Roaster{{ID: "r1", Name: "Jane", Status: "pending"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := rostersdk.NewSDKClient(srv.URL + "/api")
	session := client.NewSession("tok-1")
	require.Equal(t, "tok-1", session.Token())

	n, err := session.CountPendingUsers(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, n)

	list, err := session.ListRoasters(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Jane", list[0].Name)

	_, err = client.NewSession("wrong").ListRoasters(context.Background())
	require.True(t, rostersdk.IsUnauthorized(err))
}

func TestIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	session := rostersdk.NewSDKClient(srv.URL).NewSession("tok")

	_, err := session.ListRoasters(context.Background())
	require.True(t, rostersdk.IsUnavailable(err), "5xx")

	srv.Close()
	_, err = session.ListRoasters(context.Background())
	require.True(t, rostersdk.IsUnavailable(err), "connection refused")
}

func TestSignup_ValidatesBeforeSending(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := rostersdk.NewSDKClient(srv.URL).Signup(context.Background(), rostersdk.SignupRequest{
		Name: "Ann", Email: "ann@x.com", Password: "123",
	})
	var verr *rostersdk.ValidationError
	require.ErrorAs(t, err, &verr)
	require.False(t, called)
}
