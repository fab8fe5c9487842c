package repository

import (
	"context"
	"errors"

	"bookstore/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反（ISBN・email重複）
var ErrConflict = errors.New("conflict")

// 一覧検索
type BookListQuery struct {
	Q          string
	AuthorID   *int64
	CategoryID *int64
	Sort       string
}

// 書籍の永続化（保存・取得）だけを約束。
type BookRepository interface {
	List(ctx context.Context, q BookListQuery) ([]model.Book, error)
	FindByID(ctx context.Context, id int64) (model.Book, error)
	// チェックアウト用。トランザクション内で行を共有ロックして読む。
	FindByIDForShare(ctx context.Context, id int64) (model.Book, error)

	Create(ctx context.Context, b model.Book) (model.Book, error)
	Update(ctx context.Context, b model.Book) error
	Delete(ctx context.Context, id int64) error
}
