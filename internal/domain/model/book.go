package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 書籍
// 著者削除で書籍も削除（CASCADE）、カテゴリ削除は参照をNULLにする（SET NULL）
// priceは変更可。購入履歴は購入時点の価格スナップショットを持つので影響しない。
type Book struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string          `gorm:"type:varchar(200);not null" json:"title"`
	AuthorID      int64           `gorm:"not null;index" json:"author_id"`
	Author        *Author         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CategoryID    *int64          `gorm:"index" json:"category_id"`
	Category      *Category       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	PublishedDate time.Time       `gorm:"type:date;not null" json:"published_date"`
	ISBN          string          `gorm:"type:varchar(13);not null;uniqueIndex" json:"isbn"`
	Summary       string          `gorm:"type:text" json:"summary"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:9.99" json:"price"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
