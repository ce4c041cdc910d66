package models

import "time"

type Item struct {
	ID          int64     `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Available   bool      `yaml:"available" json:"available"`
	OwnerID     int64     `yaml:"owner_id" json:"owner_id"`
	RequestID   int64     `yaml:"request_id" json:"request_id,omitempty"`
	CreatedAt   time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at" json:"updated_at"`
}

// ItemPatch описывает частичное обновление вещи владельцем.
// nil-поле означает "не менять".
type ItemPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// ItemDetails возвращается при просмотре вещи: сама вещь,
// отзывы и (для владельца) ближайшие бронирования.
type ItemDetails struct {
	Item        Item      `json:"item"`
	Comments    []Comment `json:"comments"`
	LastBooking *Booking  `json:"last_booking,omitempty"`
	NextBooking *Booking  `json:"next_booking,omitempty"`
}
