// Package db is the SQLite storage of the healer site. It implements the
// repository interfaces of the domain package with sqlx, and keeps its
// schema in goose migrations embedded in the binary.
//
// The pure Go modernc.org/sqlite driver is used by default; building with
// the cgo_sqlite tag switches to github.com/mattn/go-sqlite3.
package db
