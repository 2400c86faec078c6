// Package api defines the JSON wire types of the EXAMIA backend
package api

// SignupRequest represents a request to create a new account
type SignupRequest struct {
	Name     string `json:"name"`     // display name
	Email    string `json:"email"`    // normalized before storage
	Password string `json:"password"` // plaintext, hashed server-side, never stored
}

// LoginRequest represents an authentication request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both signup and login
type AuthResponse struct {
	Token string `json:"token"` // signed bearer token
	Role  string `json:"role"`  // user | admin
	Name  string `json:"name"`  // display name
}

// ErrorResponse represents a failure payload.
// Success and failure responses are structurally distinct.
type ErrorResponse struct {
	Error string `json:"error"` // short human-readable message
}
