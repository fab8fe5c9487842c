package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"github.com/shopspring/decimal"
)

// チェックアウト後のレシート送信の約束。
// 送信失敗は購入の成否に影響させない（呼び出し側でログするだけ）。
type ReceiptNotifier interface {
	SendReceipt(ctx context.Context, userID int64, purchaseID int64) error
}

// CheckoutUsecase はカートを不変の購入記録へ変換する。
type CheckoutUsecase struct {
	tx       repo.TransactionManager
	notifier ReceiptNotifier // nilなら送信しない
	log      *slog.Logger
}

func NewCheckoutUsecase(tx repo.TransactionManager, notifier ReceiptNotifier, log *slog.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, notifier: notifier, log: log}
}

type ReceiptItem struct {
	BookID   int64           `json:"book"`
	Title    string          `json:"title"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type PurchaseReceipt struct {
	PurchaseID  int64           `json:"purchase_id"`
	UserID      int64           `json:"user"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []ReceiptItem   `json:"items"`
}

// Checkout はカート明細を購入記録に確定して、購入した明細を消す。
//
// 全工程を1トランザクションで実行する：
//   - 明細はFOR UPDATEで読む（既存行の変更・削除はこのロックの後ろに並ぶ。
//     新規追加はロックできないので、削除は読んだ行のidに限定する）
//   - 書籍はFOR SHAREで読み、価格は1回だけ読んでスナップショットに使い回す
//   - Purchase作成・PurchaseItem作成・明細削除は全部成功か全部無しか
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64) (PurchaseReceipt, error) {
	if userID <= 0 {
		return PurchaseReceipt{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var receipt PurchaseReceipt

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// カート取得（持ったことがなければ404）
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "shopping cart not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 明細をロック付きで取得
		cartItems, err := r.CartItems().ListByCartIDForUpdate(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "no items in the cart")
		}

		// 価格スナップショットと合計
		purchaseItems := make([]model.PurchaseItem, 0, len(cartItems))
		receiptItems := make([]ReceiptItem, 0, len(cartItems))
		cartItemIDs := make([]int64, 0, len(cartItems))
		total := decimal.Zero

		now := time.Now()
		for _, ci := range cartItems {
			cartItemIDs = append(cartItemIDs, ci.ID)
			b, err := r.Books().FindByIDForShare(ctx, ci.BookID)
			if err != nil {
				// FKがあるので通常は起きない。起きたら取引ごと失敗させる。
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			// 価格はここで1回だけ読む。以降はこの値だけを使う。
			price := b.Price
			line := price.Mul(decimal.NewFromInt(ci.Quantity))
			total = total.Add(line)

			purchaseItems = append(purchaseItems, model.PurchaseItem{
				BookID:        ci.BookID,
				TitleSnapshot: b.Title,
				Quantity:      ci.Quantity,
				Price:         price,
				CreatedAt:     now,
			})
			receiptItems = append(receiptItems, ReceiptItem{
				BookID:   ci.BookID,
				Title:    b.Title,
				Quantity: ci.Quantity,
				Price:    price,
			})
		}

		// 購入作成
		purchaseID, err := r.Purchases().Create(ctx, model.Purchase{
			UserID:      userID,
			TotalAmount: total,
			CreatedAt:   now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 購入明細一括作成
		if err := r.PurchaseItems().CreateBulk(ctx, purchaseID, purchaseItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 購入した明細だけを消す（カート自体は次の購入のために残す）。
		// ロック後に追加された明細はカートに残り、次のチェックアウト対象になる。
		if err := r.CartItems().DeleteByIDs(ctx, cartItemIDs); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		receipt = PurchaseReceipt{
			PurchaseID:  purchaseID,
			UserID:      userID,
			TotalAmount: total,
			CreatedAt:   now,
			Items:       receiptItems,
		}
		return nil
	})

	if err != nil {
		return PurchaseReceipt{}, err
	}

	// レシートメールはcommit後に非同期で送る（リクエストの応答は待たせない）
	if u.notifier != nil {
		purchaseID := receipt.PurchaseID
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := u.notifier.SendReceipt(ctx, userID, purchaseID); err != nil {
				u.log.Warn("receipt mail failed",
					"user_id", userID,
					"purchase_id", purchaseID,
					"err", err,
				)
			}
		}()
	}

	return receipt, nil
}

// ListMyPurchases は自分の購入履歴（新しい順）。
func (u *CheckoutUsecase) ListMyPurchases(ctx context.Context, userID int64) ([]PurchaseReceipt, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []PurchaseReceipt

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		purchases, err := r.Purchases().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]PurchaseReceipt, 0, len(purchases))
		for _, p := range purchases {
			items, err := r.PurchaseItems().ListByPurchaseID(ctx, p.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toReceipt(p, items))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

func (u *CheckoutUsecase) GetMyPurchase(ctx context.Context, userID int64, purchaseID int64) (PurchaseReceipt, error) {
	if userID <= 0 {
		return PurchaseReceipt{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if purchaseID <= 0 {
		return PurchaseReceipt{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out PurchaseReceipt

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Purchases().FindByID(ctx, purchaseID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		// 他人の購入は「存在しない扱い」にする
		if p.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.PurchaseItems().ListByPurchaseID(ctx, purchaseID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toReceipt(p, items)
		return nil
	})

	if err != nil {
		return PurchaseReceipt{}, err
	}
	return out, nil
}

func toReceipt(p model.Purchase, items []model.PurchaseItem) PurchaseReceipt {
	receiptItems := make([]ReceiptItem, 0, len(items))
	for _, it := range items {
		receiptItems = append(receiptItems, ReceiptItem{
			BookID:   it.BookID,
			Title:    it.TitleSnapshot,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	return PurchaseReceipt{
		PurchaseID:  p.ID,
		UserID:      p.UserID,
		TotalAmount: p.TotalAmount,
		CreatedAt:   p.CreatedAt,
		Items:       receiptItems,
	}
}
