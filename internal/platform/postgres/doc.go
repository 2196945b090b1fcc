// Package postgres contains PostgreSQL implementations of the store
// interfaces, built on database/sql with the pgx driver. All implementations
// translate driver errors to the store error taxonomy via MapError.
package postgres
