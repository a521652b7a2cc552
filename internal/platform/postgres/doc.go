// Package postgres provides PostgreSQL implementations of the store
// interfaces. Stores share a DBTX so the same code runs against the pool
// or inside a transaction, and database errors are mapped to the store
// package's sentinel errors before they cross the boundary.
package postgres
