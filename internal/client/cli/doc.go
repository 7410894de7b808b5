// Package cli provides the interactive PharmaDesk command-line client.
//
// It wires configuration, local session storage, the catalog API client and
// the auth and product flows behind a small REPL. A session restored from
// disk opens straight on the products screen; otherwise the user starts on
// the login screen.
//
// Key features:
//   - Login / Logout (session kept between runs)
//   - List the catalog with totals
//   - Add products (validated locally before sending)
//   - Delete products with confirmation
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
