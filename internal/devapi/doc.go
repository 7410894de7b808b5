// Package devapi is an in-memory implementation of the catalog REST API.
//
// It serves the same contract the PharmaDesk client talks to:
//
//	POST   /api/auth/login
//	POST   /api/auth/logout
//	GET    /api/products
//	POST   /api/products
//	DELETE /api/products/{id}
//
// Every answer is wrapped in a {success, code, message|error, data} envelope.
// Users are seeded from configuration; tokens are HS256 JWTs revoked on logout.
// The server is meant for local runs and integration tests, nothing is persisted.
package devapi
