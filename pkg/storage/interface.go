// Package storage defines the storage capability interfaces the application
// relies on. It abstracts persistence and transaction management so that
// different backends (e.g. PostgreSQL) can provide concrete implementations.
package storage

import "context"

// AllStorage is a composite interface including all domain-specific storage
// capabilities required by the application.
type AllStorage interface {
	UserStorage
	StatsStorage
}

// TxStorage is a storage handle operating within a database transaction. It
// exposes the same capabilities as AllStorage plus commit/rollback control.
// Implementations become unusable after Commit or Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage is a non-transactional storage handle with lifecycle management and
// the ability to start transactions.
type Storage interface {
	AllStorage

	// Close releases resources held by the implementation (e.g. the underlying
	// connection pool). After Close, the instance should not be used.
	Close() error

	// Begin starts a new transaction and returns a TxStorage scoped to it.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes cb with a transactional handle, and
	// commits on success or rolls back if cb returns an error.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
