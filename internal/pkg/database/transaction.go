package database

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TxFunc defines a transaction function
type TxFunc func(ctx context.Context, tx *gorm.DB) error

// Transaction executes a function within a database transaction
func (db *DB) Transaction(ctx context.Context, fn TxFunc) error {
	return db.TransactionWithOptions(ctx, &sql.TxOptions{}, fn)
}

// TransactionWithOptions executes a function within a database transaction with custom options
func (db *DB) TransactionWithOptions(ctx context.Context, opts *sql.TxOptions, fn TxFunc) error {
	db.logger.WithContext(ctx).Debug("starting database transaction")

	return db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(ctx, tx); err != nil {
			db.logger.WithContext(ctx).Error("transaction failed, rolling back",
				zap.Error(err),
			)
			return err
		}

		db.logger.WithContext(ctx).Debug("transaction committed successfully")
		return nil
	}, opts)
}

// TransactionKey is the context key for storing transaction
type TransactionKey struct{}

// ContextWithTransaction adds transaction to context
func ContextWithTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TransactionKey{}, tx)
}

// TransactionFromContext extracts transaction from context
func TransactionFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(TransactionKey{}).(*gorm.DB)
	return tx, ok
}

// GetDBFromContext returns the transaction from context if one is in flight, otherwise the base DB
func (db *DB) GetDBFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := TransactionFromContext(ctx); ok {
		return tx
	}
	return db.DB.WithContext(ctx)
}
