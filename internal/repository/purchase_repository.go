package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

// 購入記録は作成と参照のみ（更新・削除は無い）
type PurchaseRepository interface {
	Create(ctx context.Context, p model.Purchase) (int64, error)
	FindByID(ctx context.Context, purchaseID int64) (model.Purchase, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Purchase, error)
}
