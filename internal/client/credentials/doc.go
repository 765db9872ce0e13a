// Package credentials holds the client's credential slot: one access
// credential and one refresh credential, always replaced together.
//
// # Stores
//
// Store is the persisted slot. Implementations:
//   - MemoryStore: process-local, for tests and ephemeral sessions.
//   - SQLiteStore: the metadata table of the local client database.
//   - RedisStore: shared by several client processes.
//   - SealedStore: wraps another Store and encrypts the refresh credential.
//
// Every implementation must make Load observe either the previous or the new
// pair of a concurrent Save, never a mix of both.
//
// # Expiry
//
// Access credentials are JWTs; Expired decodes the embedded exp claim without
// verifying the signature.
package credentials
