package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context, q string) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	// カテゴリ削除は書籍のcategory_idをNULLにする（FK SET NULL）
	Delete(ctx context.Context, id int64) error
}
