// Package models defines the core domain models for Billed.
//
// # Models
//
//   - Bill: an employee expense record with its receipt and approval status
//   - User: a registered account that can sign in
//   - SessionUser: the identity persisted in the client session
//
// Bills are owned by the remote store. The web UI only lists them and
// creates new ones, so nothing here carries mutation helpers beyond
// defaults applied on creation.
//
// # Design Principles
//
//  1. Plain structs with JSON tags: the same values travel over the bills
//     API and into the session cookie.
//  2. Enumerations are string types with constant blocks so the stored and
//     rendered values stay readable.
//  3. Relationships use ID or email strings, never pointers.
package models
