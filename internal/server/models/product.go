package models

import "time"

type Product struct {
	ID          string
	Title       string
	Description string
	Quantity    int
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
