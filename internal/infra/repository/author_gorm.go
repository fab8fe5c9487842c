package repository

import (
	"context"
	"errors"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
)

type AuthorGormRepository struct {
	db *gorm.DB
}

// DI
func NewAuthorGormRepository(db *gorm.DB) *AuthorGormRepository {
	return &AuthorGormRepository{db: db}
}

func (r *AuthorGormRepository) List(ctx context.Context, q repo.AuthorListQuery) ([]model.Author, error) {
	tx := r.db.WithContext(ctx).Model(&model.Author{})

	if q.Q != "" {
		like := "%" + q.Q + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ?", like, like)
	}

	switch q.Sort {
	case "birth":
		tx = tx.Order("date_of_birth asc nulls last")
	default:
		tx = tx.Order("id asc")
	}

	var authors []model.Author
	if err := tx.Find(&authors).Error; err != nil {
		return []model.Author{}, err
	}
	return authors, nil
}

func (r *AuthorGormRepository) FindByID(ctx context.Context, id int64) (model.Author, error) {
	var a model.Author

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Author{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Author{}, err
	}
	return a, nil
}

func (r *AuthorGormRepository) Create(ctx context.Context, a model.Author) (model.Author, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.Author{}, err
	}
	return a, nil
}

func (r *AuthorGormRepository) Update(ctx context.Context, a model.Author) error {
	res := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"first_name":    a.FirstName,
			"last_name":     a.LastName,
			"date_of_birth": a.DateOfBirth,
			"date_of_death": a.DateOfDeath,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 著者削除。紐づく書籍はFKのCASCADEで一緒に消える。
func (r *AuthorGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Author{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
