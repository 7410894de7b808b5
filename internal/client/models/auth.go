package models

// AuthResponse mirrors the envelope the API wraps auth results in.
type AuthResponse struct {
	Success bool      `json:"success"`
	Code    int       `json:"code"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
	Data    *AuthData `json:"data,omitempty"`
}

// AuthData is the payload of a successful login.
type AuthData struct {
	Session AuthSession  `json:"session"`
	User    *UserProfile `json:"user,omitempty"`
}

type AuthSession struct {
	AccessToken string `json:"access_token"`
}

// AccessToken returns the issued token or "" when the response has none.
func (r *AuthResponse) AccessToken() string {
	if r == nil || r.Data == nil {
		return ""
	}
	return r.Data.Session.AccessToken
}

// User returns the returned profile or nil.
func (r *AuthResponse) User() *UserProfile {
	if r == nil || r.Data == nil {
		return nil
	}
	return r.Data.User
}

// Failure builds the response returned for every failed auth operation.
func Failure(msg string) AuthResponse {
	return AuthResponse{Success: false, Code: 400, Error: msg}
}
