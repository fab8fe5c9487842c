package model

import "time"

// カートの明細
// (cart_id, book_id) は1行まで。同じ本の追加は数量加算。
// 価格はここでは持たない（チェックアウト時点の価格でスナップショットする）
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:idx_cart_book" json:"cart_id"`
	Cart      *Cart     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BookID    int64     `gorm:"not null;uniqueIndex:idx_cart_book;index" json:"book_id"`
	Book      *Book     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
