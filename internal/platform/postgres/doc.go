// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, the connection
// setup for the pgx driver, and the embedded schema migrations.
package postgres
