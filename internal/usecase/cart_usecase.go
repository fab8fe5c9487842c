package usecase

import (
	"context"
	"net/http"

	repo "bookstore/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart-items の業務ロジックです。
// 金額計算はここではやらない（チェックアウトに委ねる）。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	bookRepo     repo.BookRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	bookRepo repo.BookRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		bookRepo:     bookRepo,
	}
}

// priceは表示用の現在価格。購入時の確定額はチェックアウトで改めて読む。
type CartItemResponse struct {
	ID       int64           `json:"id"`
	BookID   int64           `json:"book_id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type AddCartItemInput struct {
	BookID   int64
	Quantity int64
}

// AddItem はカートに追加（同一書籍は数量加算）。
// カートが無ければ作る（登録時に作られるが、念のためここでも冪等に作成）。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartItemInput) (CartItemResponse, error) {
	if userID <= 0 {
		return CartItemResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.BookID <= 0 {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid book")
	}
	if in.Quantity < 1 {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 書籍チェック
	b, err := u.bookRepo.FindByID(ctx, in.BookID)
	if err == repo.ErrNotFound {
		return CartItemResponse{}, NewHTTPError(http.StatusNotFound, "book not found")
	}
	if err != nil {
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// カート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一書籍は加算）
	item, err := u.cartItemRepo.UpsertByCartAndBook(ctx, cart.ID, in.BookID, in.Quantity)
	if err != nil {
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartItemResponse{
		ID:       item.ID,
		BookID:   item.BookID,
		Title:    b.Title,
		Price:    b.Price,
		Quantity: item.Quantity,
	}, nil
}

// ListItems は自分のカート明細を追加順で返す。
// カートが無い・空なら空スライス（エラーにしない）。
func (u *CartUsecase) ListItems(ctx context.Context, userID int64) ([]CartItemResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return []CartItemResponse{}, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		b, err := u.bookRepo.FindByID(ctx, it.BookID)
		if err != nil {
			continue
		}
		resp = append(resp, CartItemResponse{
			ID:       it.ID,
			BookID:   it.BookID,
			Title:    b.Title,
			Price:    b.Price,
			Quantity: it.Quantity,
		})
	}
	return resp, nil
}

// RemoveItem は明細削除。
// 他人の明細は「存在しない扱い」で404（中身を推測させない）。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
