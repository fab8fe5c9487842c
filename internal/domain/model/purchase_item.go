package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 購入明細
// priceとtitleは購入時点のスナップショット。書籍側が後で変わっても更新しない。
type PurchaseItem struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PurchaseID    int64           `gorm:"not null;index" json:"purchase_id"`
	BookID        int64           `gorm:"not null;index" json:"book_id"`
	TitleSnapshot string          `gorm:"type:varchar(200);not null" json:"title_snapshot"`
	Quantity      int64           `gorm:"not null" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
