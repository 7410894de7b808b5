// Package client talks to the PharmaDesk catalog API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Login/Logout and ListProducts/CreateProduct/DeleteProduct.
//  2. A concrete REST implementation (see RESTClient) built on resty. It
//     sends the access token as "Authorization: Bearer <token>", tags every
//     request with a fresh X-Request-ID and traces calls through otelhttp.
//
// # Error Handling
//
//   - transport failures (connection refused, timeouts) wrap ErrUnavailable;
//   - non-2xx answers are returned as *APIError; 401 and 403 also match
//     ErrUnauthorized with errors.Is;
//   - bodies that cannot be decoded wrap ErrMalformedResponse.
//
// Concurrency & Contexts
//
// RESTClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and the configured timeout.
package client
