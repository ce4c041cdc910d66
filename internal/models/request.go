package models

import "time"

// ItemRequest — запрос вещи, которой еще нет в каталоге.
// Вещь может ссылаться на запрос через RequestID.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestor_id"`
	Created     time.Time `json:"created"`
}
