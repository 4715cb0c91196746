package model

import "time"

type Barber struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	ShopID    uint      `gorm:"not null;index" json:"shop_id"`
	Shop      *Shop     `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Barber) TableName() string {
	return "barbers"
}
