// Package models defines the client-side data shapes of PharmaDesk:
// credentials, the cached user profile, catalog products and the API
// response envelope.
//
// The catalog API is loosely typed. Product ids may arrive as numbers or as
// numeric strings, and prices may be numbers or strings. CoerceID and Price
// normalise both so the rest of the client deals with int64 ids and
// two-decimal prices only.
package models
