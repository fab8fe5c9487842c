package repository

import (
	"context"
	"errors"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookGormRepository struct {
	db *gorm.DB
}

// DI
func NewBookGormRepository(db *gorm.DB) *BookGormRepository {
	return &BookGormRepository{db: db}
}

func (r *BookGormRepository) List(ctx context.Context, q repo.BookListQuery) ([]model.Book, error) {
	tx := r.db.WithContext(ctx).Model(&model.Book{})

	if q.Q != "" {
		like := "%" + q.Q + "%"
		tx = tx.Where("title ILIKE ? OR summary ILIKE ?", like, like)
	}
	if q.AuthorID != nil {
		tx = tx.Where("author_id = ?", *q.AuthorID)
	}
	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}

	switch q.Sort {
	case "new":
		tx = tx.Order("id desc")
	case "published":
		tx = tx.Order("published_date asc")
	case "title":
		tx = tx.Order("title asc")
	default:
		tx = tx.Order("id asc")
	}

	var books []model.Book
	if err := tx.Find(&books).Error; err != nil {
		return []model.Book{}, err
	}
	return books, nil
}

func (r *BookGormRepository) FindByID(ctx context.Context, id int64) (model.Book, error) {
	var b model.Book

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Book{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Book{}, err
	}
	return b, nil
}

// FOR SHAREで読む。チェックアウトのスナップショット中に価格更新が
// 割り込めないようにする（呼び出し側のトランザクション内で使う）。
func (r *BookGormRepository) FindByIDForShare(ctx context.Context, id int64) (model.Book, error) {
	var b model.Book

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id = ?", id).
		First(&b).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Book{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Book{}, err
	}
	return b, nil
}

func (r *BookGormRepository) Create(ctx context.Context, b model.Book) (model.Book, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Book{}, repo.ErrConflict
		}
		return model.Book{}, err
	}
	return b, nil
}

func (r *BookGormRepository) Update(ctx context.Context, b model.Book) error {
	res := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":          b.Title,
			"author_id":      b.AuthorID,
			"category_id":    b.CategoryID,
			"published_date": b.PublishedDate,
			"isbn":           b.ISBN,
			"summary":        b.Summary,
			"price":          b.Price,
		})

	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return repo.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BookGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
