package data

import (
	"context"

	"github.com/jsonshare/jsonshare-backend/internal/pkg/database"
	"github.com/jsonshare/jsonshare-backend/internal/share/biz"
	"gorm.io/gorm"
)

// TxManager 事务管理器，仓储通过上下文加入同一事务
type TxManager struct {
	db *database.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *database.DB) biz.TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.Transaction(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return fn(database.ContextWithTransaction(ctx, tx))
	})
}
