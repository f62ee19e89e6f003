package rostersdk

import "time"

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Status  string            `json:"status,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// User is the public view of an account. The password hash never leaves the
// server.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	// Role is accepted for compatibility; the server always creates staff.
	Role string `json:"role,omitempty"`
}

type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type VerifyResponse struct {
	User User `json:"user"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type UserActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Roaster is a roster profile as returned by the server. LocalOnly marks
// copies that were only ever stored on this machine.
type Roaster struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ProfileLink      string    `json:"profileLink,omitempty"`
	Platform         string    `json:"platform,omitempty"`
	Followers        int64     `json:"followers"`
	FollowersDisplay string    `json:"followersDisplay,omitempty"`
	State            string    `json:"state,omitempty"`
	Category         string    `json:"category,omitempty"`
	Commercials      string    `json:"commercials,omitempty"`
	PhoneNumber      string    `json:"phoneNumber,omitempty"`
	Sex              string    `json:"sex,omitempty"`
	Age              *int      `json:"age,omitempty"`
	Email            string    `json:"email,omitempty"`
	Response         string    `json:"response,omitempty"`
	Status           string    `json:"status"`
	CreatedBy        string    `json:"createdBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	LocalOnly        bool      `json:"localOnly,omitempty"`
}

type BulkRequest struct {
	Roasters []RoasterInput `json:"roasters"`
}

type BulkResult struct {
	Index   int      `json:"index"`
	Success bool     `json:"success"`
	Roaster *Roaster `json:"roaster,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type BulkResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Created int          `json:"created"`
	Failed  int          `json:"failed"`
	Results []BulkResult `json:"results"`
}

type ClearResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime,omitempty"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
