package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

type CartRepository interface {
	// 無ければ作成（冪等。同一ユーザーに2つ目は作らない）
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
}
