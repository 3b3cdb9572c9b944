package models

import "time"

// Restaurant is a listing row plus the aggregate fields derived from its
// reviews. AverageRating is nil when no reviews exist.
type Restaurant struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"created_at"`
	ReviewCount   int       `json:"review_count"`
	AverageRating *float64  `json:"average_rating"`
	Reviews       []Review  `json:"reviews"`
}
