package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newNotificationUsecase() (*usecase.NotificationUsecase, *PurchaseRepoMock, *PurchaseItemRepoMock, *UserRepoMock, *MailerMock) {
	purchaseRepo := new(PurchaseRepoMock)
	purchaseItemRepo := new(PurchaseItemRepoMock)
	userRepo := new(UserRepoMock)
	mailer := new(MailerMock)
	uc := usecase.NewNotificationUsecase(purchaseRepo, purchaseItemRepo, userRepo, mailer)
	return uc, purchaseRepo, purchaseItemRepo, userRepo, mailer
}

// Test: レシート本文は1行1明細と合計
func TestSendReceipt_BodyFormat(t *testing.T) {
	uc, purchaseRepo, purchaseItemRepo, userRepo, mailer := newNotificationUsecase()

	purchaseRepo.On("FindByID", mock.Anything, int64(55)).Return(model.Purchase{
		ID: 55, UserID: 1, TotalAmount: decimal.RequireFromString("24.48"),
	}, nil)
	purchaseItemRepo.On("ListByPurchaseID", mock.Anything, int64(55)).Return([]model.PurchaseItem{
		{PurchaseID: 55, BookID: 100, TitleSnapshot: "Dune", Quantity: 2, Price: decimal.RequireFromString("9.99")},
		{PurchaseID: 55, BookID: 200, TitleSnapshot: "Emma", Quantity: 1, Price: decimal.RequireFromString("4.50")},
	}, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(model.User{ID: 1, Email: "reader@example.com"}, nil)

	wantBody := "Thank you for your purchase!\n\nItems:\n" +
		"Dune - 2 x 9.99\n" +
		"Emma - 1 x 4.50\n" +
		"\nTotal Amount: 24.48\n"
	mailer.On("Send", mock.Anything, "reader@example.com", "Purchase Confirmation", wantBody).Return(nil)

	err := uc.SendReceipt(context.Background(), 1, 55)
	assert.NoError(t, err)

	mailer.AssertExpectations(t)
}

// Test: 他人の購入は404（存在も漏らさない）
func TestSendReceipt_OtherUsersPurchase(t *testing.T) {
	uc, purchaseRepo, _, _, mailer := newNotificationUsecase()

	purchaseRepo.On("FindByID", mock.Anything, int64(55)).Return(model.Purchase{ID: 55, UserID: 2}, nil)

	err := uc.SendReceipt(context.Background(), 1, 55)
	assertHTTPError(t, err, http.StatusNotFound)

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Test: 存在しない購入は404
func TestSendReceipt_PurchaseNotFound(t *testing.T) {
	uc, purchaseRepo, _, _, _ := newNotificationUsecase()

	purchaseRepo.On("FindByID", mock.Anything, int64(999)).Return(model.Purchase{}, repo.ErrNotFound)

	err := uc.SendReceipt(context.Background(), 1, 999)
	assertHTTPError(t, err, http.StatusNotFound)
}

// Test: SMTP失敗は500（購入データには触らない）
func TestSendReceipt_MailerFailure(t *testing.T) {
	uc, purchaseRepo, purchaseItemRepo, userRepo, mailer := newNotificationUsecase()

	purchaseRepo.On("FindByID", mock.Anything, int64(55)).Return(model.Purchase{
		ID: 55, UserID: 1, TotalAmount: decimal.RequireFromString("9.99"),
	}, nil)
	purchaseItemRepo.On("ListByPurchaseID", mock.Anything, int64(55)).Return([]model.PurchaseItem{}, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(model.User{ID: 1, Email: "reader@example.com"}, nil)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	err := uc.SendReceipt(context.Background(), 1, 55)
	assertHTTPError(t, err, http.StatusInternalServerError)
}
