package repository

import (
	"context"

	repo "bookstore/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users         repo.UserRepository
	books         repo.BookRepository
	carts         repo.CartRepository
	cartItems     repo.CartItemRepository
	purchases     repo.PurchaseRepository
	purchaseItems repo.PurchaseItemRepository
}

func (r *txReposGorm) Users() repo.UserRepository                 { return r.users }
func (r *txReposGorm) Books() repo.BookRepository                 { return r.books }
func (r *txReposGorm) Carts() repo.CartRepository                 { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository         { return r.cartItems }
func (r *txReposGorm) Purchases() repo.PurchaseRepository         { return r.purchases }
func (r *txReposGorm) PurchaseItems() repo.PurchaseItemRepository { return r.purchaseItems }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返せば全部ロールバック、nilならcommit
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:         NewUserGormRepository(tx),
			books:         NewBookGormRepository(tx),
			carts:         NewCartGormRepository(tx),
			cartItems:     NewCartGormRepository(tx),
			purchases:     NewPurchaseGormRepository(tx),
			purchaseItems: NewPurchaseItemGormRepository(tx),
		}
		return fn(r)
	})
}
