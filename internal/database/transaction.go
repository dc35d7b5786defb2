package database

import (
	"context"

	"gorm.io/gorm"
)

// TxFunc is the body of a unit of work. Every statement inside must go
// through tx, never the outer pool.
type TxFunc func(tx *gorm.DB) error

// WithTransaction runs fn in a transaction scoped to ctx. It commits when fn
// returns nil and rolls back when fn returns an error or panics (the panic is
// re-raised). The connection goes back to the pool on every path.
func WithTransaction(ctx context.Context, db *gorm.DB, fn TxFunc) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}

// WithTransactionResult is WithTransaction for bodies that produce a value.
func WithTransactionResult[T any](ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) (T, error)) (T, error) {
	var result T

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		var fnErr error
		result, fnErr = fn(tx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
