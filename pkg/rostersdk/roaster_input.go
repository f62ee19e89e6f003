package rostersdk

import (
	"bytes"
	"encoding/json"
	"net/mail"
	"strconv"
	"strings"
)

// Roaster status values.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

const (
	MinAge = 0
	MaxAge = 120

	MinPasswordLength = 6
)

// FlexInt is an integer that also accepts a numeric string on input, the
// way spreadsheet imports and form fields send it. An empty string or null
// counts as "supplied but empty".
type FlexInt struct {
	Value   int64
	Set     bool   // present in the input
	Empty   bool   // null or ""
	Invalid string // raw text when it is not an integer
}

// Int returns a FlexInt holding v.
func Int(v int64) FlexInt { return FlexInt{Value: v, Set: true} }

func (f FlexInt) IsZero() bool { return !f.Set }

// Valid reports whether the value parsed as an integer (or was empty).
func (f FlexInt) Valid() bool { return f.Invalid == "" }

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{Set: true}

	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		f.Empty = true
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			f.Empty = true
			return nil
		}
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.Invalid = raw
		return nil
	}
	f.Value = v
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if f.Empty || !f.Set {
		return []byte("null"), nil
	}
	if f.Invalid != "" {
		return json.Marshal(f.Invalid)
	}
	return strconv.AppendInt(nil, f.Value, 10), nil
}

// RoasterInput is the body of create and update calls. Nil or unset fields
// are "not supplied": on create they default, on update they are left alone.
type RoasterInput struct {
	Name             *string `json:"name,omitempty"`
	ProfileLink      *string `json:"profileLink,omitempty"`
	Platform         *string `json:"platform,omitempty"`
	Followers        FlexInt `json:"followers,omitzero"`
	FollowersDisplay *string `json:"followersDisplay,omitempty"`
	State            *string `json:"state,omitempty"`
	Category         *string `json:"category,omitempty"`
	Commercials      *string `json:"commercials,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
	Sex              *string `json:"sex,omitempty"`
	Age              FlexInt `json:"age,omitzero"`
	Email            *string `json:"email,omitempty"`
	Response         *string `json:"response,omitempty"`
	Status           *string `json:"status,omitempty"`
}

// String returns a pointer to s, for filling RoasterInput literals.
func String(s string) *string { return &s }

// Normalize trims every string field in place and lower-cases the status.
func (in *RoasterInput) Normalize() {
	for _, p := range []*string{
		in.Name, in.ProfileLink, in.Platform, in.FollowersDisplay, in.State,
		in.Category, in.Commercials, in.PhoneNumber, in.Sex, in.Email,
		in.Response, in.Status,
	} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if in.Status != nil {
		*in.Status = strings.ToLower(*in.Status)
	}
}

// Validate checks the input. requireName is true for creates.
func (in RoasterInput) Validate(requireName bool) error {
	fields := map[string]string{}

	if requireName && (in.Name == nil || strings.TrimSpace(*in.Name) == "") {
		fields["name"] = "is required"
	}
	if in.Name != nil && !requireName && strings.TrimSpace(*in.Name) == "" {
		fields["name"] = "cannot be empty"
	}

	if !in.Followers.Valid() || in.Followers.Value < 0 {
		fields["followers"] = "must be a non-negative integer"
	}

	if !in.Age.Valid() || (in.Age.Set && !in.Age.Empty && (in.Age.Value < MinAge || in.Age.Value > MaxAge)) {
		fields["age"] = "must be an integer between 0 and 120"
	}

	if in.Status != nil {
		switch strings.ToLower(strings.TrimSpace(*in.Status)) {
		case "", StatusPending, StatusAccepted, StatusRejected:
		default:
			fields["status"] = "must be one of pending, accepted, rejected"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate applies the signup rules: a name, a syntactically valid email and
// a password of at least MinPasswordLength characters.
func (r SignupRequest) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = "is required"
	}
	if !ValidEmail(r.Email) {
		fields["email"] = "must be a valid email address"
	}
	if len([]rune(r.Password)) < MinPasswordLength {
		fields["password"] = "must be at least 6 characters"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidEmail reports whether s is a bare address like "ann@x.com".
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}
