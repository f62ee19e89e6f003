package rostersdk_test

import (
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantEmpty bool
		wantValid bool
		wantValue int64
	}{
		{"number", `{"followers":12000}`, true, false, true, 12000},
		{"numeric string", `{"followers":"12000"}`, true, false, true, 12000},
		{"padded string", `{"followers":" 42 "}`, true, false, true, 42},
		{"empty string", `{"followers":""}`, true, true, true, 0},
		{"null", `{"followers":null}`, true, true, true, 0},
		{"missing", `{}`, false, false, true, 0},
		{"text", `{"followers":"lots"}`, true, false, false, 0},
		{"fraction", `{"followers":12.5}`, true, false, false, 0},
		{"negative", `{"followers":-3}`, true, false, true, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in rostersdk.RoasterInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			require.Equal(t, tt.wantSet, in.Followers.Set)
			require.Equal(t, tt.wantEmpty, in.Followers.Empty)
			require.Equal(t, tt.wantValid, in.Followers.Valid())
			require.Equal(t, tt.wantValue, in.Followers.Value)
		})
	}
}

func TestRoasterInput_MarshalOmitsUnset(t *testing.T) {
	in := rostersdk.RoasterInput{Name: rostersdk.String("Jane"), Followers: rostersdk.Int(10)}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Jane","followers":10}`, string(b))
}

func TestRoasterInput_Validate(t *testing.T) {
	decode := func(body string) rostersdk.RoasterInput {
		var in rostersdk.RoasterInput
		require.NoError(t, json.Unmarshal([]byte(body), &in))
		return in
	}

	tests := []struct {
		name        string
		body        string
		requireName bool
		wantFields  []string
	}{
		{"name only", `{"name":"Jane"}`, true, nil},
		{"missing name", `{"platform":"Instagram"}`, true, []string{"name"}},
		{"blank name", `{"name":"   "}`, true, []string{"name"}},
		{"update without name", `{"status":"accepted"}`, false, nil},
		{"update blanks name", `{"name":""}`, false, []string{"name"}},
		{"negative followers", `{"name":"J","followers":-1}`, true, []string{"followers"}},
		{"text followers", `{"name":"J","followers":"many"}`, true, []string{"followers"}},
		{"age out of range", `{"name":"J","age":121}`, true, []string{"age"}},
		{"age empty", `{"name":"J","age":""}`, true, nil},
		{"bad status", `{"name":"J","status":"approved"}`, true, []string{"status"}},
		{"mixed case status", `{"name":"J","status":"Accepted"}`, true, nil},
		{"several", `{"followers":"x","age":-1}`, true, []string{"name", "followers", "age"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decode(tt.body).Validate(tt.requireName)
			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}

			var verr *rostersdk.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.wantFields {
				require.Contains(t, verr.Fields, f)
			}
			require.Len(t, verr.Fields, len(tt.wantFields))
		})
	}
}

func TestRoasterInput_NormalizeFoldsStatus(t *testing.T) {
	in := rostersdk.RoasterInput{
		Name:   rostersdk.String("  Jane "),
		Status: rostersdk.String(" REJECTED "),
	}
	in.Normalize()

	require.Equal(t, "Jane", *in.Name)
	require.Equal(t, rostersdk.StatusRejected, *in.Status)
	require.NoError(t, in.Validate(true))
}

func TestSignupRequest_Validate(t *testing.T) {
	require.NoError(t, rostersdk.SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"}.Validate())

	err := rostersdk.SignupRequest{Name: " ", Email: "not-an-email", Password: "12345"}.Validate()
	var verr *rostersdk.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3)
}

func TestValidEmail(t *testing.T) {
	require.True(t, rostersdk.ValidEmail("ann@x.com"))
	require.True(t, rostersdk.ValidEmail(" ann@x.com "))
	require.False(t, rostersdk.ValidEmail("ann"))
	require.False(t, rostersdk.ValidEmail("ann@localhost"))
	require.False(t, rostersdk.ValidEmail("Ann <ann@x.com>"))
}
