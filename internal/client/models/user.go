package models

import (
	"encoding/json"
	"fmt"
)

// Credentials are the login form values. They are never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile is the user record returned by the login endpoint.
//
// Only Name and Email are interpreted by the client. Every other field the
// server sends is kept in Extra and written back unchanged, so the cached
// profile round-trips without loss.
type UserProfile struct {
	Name  string
	Email string
	Extra map[string]json.RawMessage
}

// IsZero reports whether the profile carries no data at all.
func (u UserProfile) IsZero() bool {
	return u.Name == "" && u.Email == "" && len(u.Extra) == 0
}

// DisplayName returns Name, falling back to Email.
func (u UserProfile) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (u UserProfile) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(u.Extra)+2)
	for k, v := range u.Extra {
		m[k] = v
	}
	if u.Name != "" {
		b, err := json.Marshal(u.Name)
		if err != nil {
			return nil, err
		}
		m["name"] = b
	}
	if u.Email != "" {
		b, err := json.Marshal(u.Email)
		if err != nil {
			return nil, err
		}
		m["email"] = b
	}
	return json.Marshal(m)
}

func (u *UserProfile) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("user profile: expected object, got %s", data)
	}

	*u = UserProfile{}
	if raw, ok := m["name"]; ok {
		if err := json.Unmarshal(raw, &u.Name); err != nil {
			return fmt.Errorf("user profile name: %w", err)
		}
		delete(m, "name")
	}
	if raw, ok := m["email"]; ok {
		if err := json.Unmarshal(raw, &u.Email); err != nil {
			return fmt.Errorf("user profile email: %w", err)
		}
		delete(m, "email")
	}
	if len(m) > 0 {
		u.Extra = m
	}
	return nil
}

// Session is an authenticated session restored from or saved to local storage.
type Session struct {
	Token string
	User  UserProfile
}
