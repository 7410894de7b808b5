// Package common contains constants, sentinel errors and byte helpers shared
// by the PharmaDesk client and the development API server.
package common

const (
	// AuthorizationHeader carries the bearer access token.
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the token in AuthorizationHeader.
	BearerPrefix = "Bearer "
	// RequestIDHeader correlates a client request with server logs.
	RequestIDHeader = "X-Request-ID"
)
