package model

import "time"

// 著者
// 生没年は両方あるとき birth <= death（usecaseで検証）
type Author struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string     `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `gorm:"type:date" json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
