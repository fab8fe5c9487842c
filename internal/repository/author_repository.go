package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

type AuthorListQuery struct {
	Q    string
	Sort string
}

type AuthorRepository interface {
	List(ctx context.Context, q AuthorListQuery) ([]model.Author, error)
	FindByID(ctx context.Context, id int64) (model.Author, error)
	Create(ctx context.Context, a model.Author) (model.Author, error)
	Update(ctx context.Context, a model.Author) error
	// 著者削除は紐づく書籍も消える（FK CASCADE）
	Delete(ctx context.Context, id int64) error
}
