package repository

import (
	"context"
	"errors"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
)

// 購入記録。INSERTとSELECTのみ（UPDATE/DELETEは書かない）
type PurchaseGormRepository struct {
	db *gorm.DB
}

// DI
func NewPurchaseGormRepository(db *gorm.DB) *PurchaseGormRepository {
	return &PurchaseGormRepository{db: db}
}

func (r *PurchaseGormRepository) Create(ctx context.Context, p model.Purchase) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *PurchaseGormRepository) FindByID(ctx context.Context, purchaseID int64) (model.Purchase, error) {
	var p model.Purchase

	err := r.db.WithContext(ctx).
		Where("id = ?", purchaseID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Purchase{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Purchase{}, err
	}
	return p, nil
}

func (r *PurchaseGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Purchase, error) {
	var purchases []model.Purchase

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&purchases).Error; err != nil {
		return []model.Purchase{}, err
	}
	return purchases, nil
}
