package model

import (
	"fmt"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's score for one barber. The composite unique index keeps
// a single row per (user, barber) pair; resubmissions update it in place.
type Rating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_user_barber,priority:1" json:"user_id"`
	BarberID  uint      `gorm:"not null;uniqueIndex:idx_ratings_user_barber,priority:2;index" json:"barber_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	Photo     *string   `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Barber *Barber `gorm:"foreignKey:BarberID" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}

// Aggregate is the average and count of one barber's ratings. Average is nil
// when there are no ratings.
type Aggregate struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}

// Display formats the average with one decimal, or "No ratings yet".
func (a Aggregate) Display() string {
	if a.Average == nil {
		return "No ratings yet"
	}
	return fmt.Sprintf("%.1f", *a.Average)
}
