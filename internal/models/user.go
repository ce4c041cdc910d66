package models

import "time"

type User struct {
	ID        int64     `yaml:"id" json:"id"`
	Email     string    `yaml:"email" json:"email"`
	Name      string    `yaml:"name" json:"name"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updated_at"`
}

// UserPatch описывает частичное обновление пользователя.
type UserPatch struct {
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
}
