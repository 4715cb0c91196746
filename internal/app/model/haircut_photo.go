package model

import "time"

// HaircutPhoto is a gallery picture attached to a barber.
type HaircutPhoto struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	BarberID  uint      `gorm:"not null;index" json:"barber_id"`
	Photo     *string   `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Barber *Barber `gorm:"foreignKey:BarberID" json:"-"`
}

func (HaircutPhoto) TableName() string {
	return "haircut_photos"
}
