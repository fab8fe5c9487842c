package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"bookstore/internal/domain/model"
	"bookstore/internal/mail"
	repo "bookstore/internal/repository"
)

// NotificationUsecase は購入レシートを平文メールにして送る。
// 送信失敗は購入データに一切影響しない（購入は既にcommit済み）。
type NotificationUsecase struct {
	purchaseRepo     repo.PurchaseRepository
	purchaseItemRepo repo.PurchaseItemRepository
	userRepo         repo.UserRepository
	mailer           mail.Mailer
}

func NewNotificationUsecase(
	purchaseRepo repo.PurchaseRepository,
	purchaseItemRepo repo.PurchaseItemRepository,
	userRepo repo.UserRepository,
	mailer mail.Mailer,
) *NotificationUsecase {
	return &NotificationUsecase{
		purchaseRepo:     purchaseRepo,
		purchaseItemRepo: purchaseItemRepo,
		userRepo:         userRepo,
		mailer:           mailer,
	}
}

// SendReceipt は購入レシートを本人のメールアドレスへ送る。
// 他人の購入は「存在しない扱い」で404。
func (u *NotificationUsecase) SendReceipt(ctx context.Context, userID int64, purchaseID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if purchaseID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid purchase_id")
	}

	p, err := u.purchaseRepo.FindByID(ctx, purchaseID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "purchase not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "purchase not found")
	}

	items, err := u.purchaseItemRepo.ListByPurchaseID(ctx, purchaseID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	body := renderReceiptBody(p, items)

	if err := u.mailer.Send(ctx, user.Email, "Purchase Confirmation", body); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "mail error")
	}
	return nil
}

// 1行1明細「title - qty x price」、最後に合計。
func renderReceiptBody(p model.Purchase, items []model.PurchaseItem) string {
	var sb strings.Builder

	sb.WriteString("Thank you for your purchase!\n\nItems:\n")
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("%s - %d x %s\n", it.TitleSnapshot, it.Quantity, it.Price.StringFixed(2)))
	}
	sb.WriteString(fmt.Sprintf("\nTotal Amount: %s\n", p.TotalAmount.StringFixed(2)))

	return sb.String()
}
