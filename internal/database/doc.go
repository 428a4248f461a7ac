// Package database provides the PostgreSQL pool and the user store consulted
// by the connection admission layer. Event payloads are never persisted here.
package database
