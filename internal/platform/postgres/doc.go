// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. Saved layouts keep
// their selection and placement in JSONB columns; the schema is managed by
// goose migrations embedded in the binary.
package postgres
