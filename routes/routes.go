package routes

import (
	"database/sql"

	"github.com/gorilla/mux"

	"restaurant-reviews/controllers"
)

// Register wires every API route onto the router.
func Register(router *mux.Router, db *sql.DB) {
	restaurantController := controllers.NewRestaurantController(db)
	reviewController := controllers.NewReviewController(db)

	router.HandleFunc("/restaurants", restaurantController.GetRestaurants).Methods("GET")
	router.HandleFunc("/restaurants", restaurantController.CreateRestaurant).Methods("POST")
	router.HandleFunc("/restaurants/{id}", restaurantController.GetRestaurant).Methods("GET")
	router.HandleFunc("/restaurants/{id}", restaurantController.UpdateRestaurant).Methods("PUT")
	router.HandleFunc("/restaurants/{id}", restaurantController.DeleteRestaurant).Methods("DELETE")

	router.HandleFunc("/reviews", reviewController.CreateReview).Methods("POST")
	router.HandleFunc("/reviews/{id}", reviewController.UpdateReview).Methods("PUT")
	router.HandleFunc("/reviews/{id}", reviewController.DeleteReview).Methods("DELETE")
}
