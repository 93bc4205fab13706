// Package sqlite persists the client session in a local SQLite database,
// giving CLI and desktop deployments durable logins across restarts.
//
// State lives in a single client_state table keyed by the storage names
// the mobile client has always used, so a database written by one
// version keeps working with the next. Optional at-rest encryption seals
// each value with ChaCha20-Poly1305:
//
//	store, err := sqlite.Open("huud.db", sqlite.WithEncryption(secret))
//	if err != nil { ... }
//	defer store.Close()
//
//	sessions, err := session.NewManager(ctx, store)
//
// The package uses the pure-Go modernc.org/sqlite driver, so no cgo is
// required.
package sqlite
