package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

type CartItemRepository interface {
	// id昇順（追加順）
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// チェックアウト用。行ロック付きで読む。
	ListByCartIDForUpdate(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// 同一書籍は数量加算
	UpsertByCartAndBook(ctx context.Context, cartID int64, bookID int64, addQty int64) (model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	DeleteByID(ctx context.Context, cartItemID int64) error
	// チェックアウト用。ロックして読んだ明細だけを消す
	// （同時に追加された明細は消さない）。
	DeleteByIDs(ctx context.Context, cartItemIDs []int64) error
	IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error)
}
