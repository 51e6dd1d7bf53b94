// internal/repository/repository.go
package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs multi-row operations inside a single database transaction.
// Repositories are rebound to the transaction with their WithTx methods, so
// commit-or-rollback covers everything done in the callback.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
