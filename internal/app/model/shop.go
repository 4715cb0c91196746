package model

import (
	"fmt"
	"time"
)

// Shop is a barbershop. Coordinates are optional and only shops that have both
// show up in the map search.
type Shop struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Location    string    `gorm:"not null" json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Website     string    `json:"website"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	Barbers []Barber `gorm:"foreignKey:ShopID" json:"barbers,omitempty"`
}

func (Shop) TableName() string {
	return "shops"
}

// HasCoordinates reports whether both latitude and longitude are set.
func (s *Shop) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Coordinates formats the position as "lat,lon" for the map page.
func (s *Shop) Coordinates() string {
	if !s.HasCoordinates() {
		return ""
	}
	return fmt.Sprintf("%v,%v", *s.Latitude, *s.Longitude)
}

// ShopSearchResult is one entry of the map search response.
type ShopSearchResult struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}
