package models

import "time"

// Review is a visitor review of a restaurant. Rating is always in [1,5].
type Review struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	Review       string    `json:"review"`
	VisitorName  string    `json:"visitor_name"`
	CreatedAt    time.Time `json:"created_at"`
}
