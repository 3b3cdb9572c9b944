package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"restaurant-reviews/models"
	"restaurant-reviews/utils"
)

type RestaurantController struct {
	db *sql.DB
}

func NewRestaurantController(db *sql.DB) *RestaurantController {
	return &RestaurantController{db: db}
}

const restaurantAggregateQuery = `
	SELECT
		r.id,
		r.name,
		r.address,
		r.phone,
		r.created_at,
		COUNT(rv.id) AS review_count,
		ROUND(AVG(rv.rating), 1) AS average_rating
	FROM restaurants r
	LEFT JOIN reviews rv ON r.id = rv.restaurant_id`

// GetRestaurants returns every restaurant, newest first, with aggregates and
// its full review list. One grouped query for the aggregates, one batched
// query for all reviews bucketed by restaurant id.
func (rc *RestaurantController) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	rows, err := rc.db.Query(restaurantAggregateQuery + `
	GROUP BY r.id, r.name, r.address, r.phone, r.created_at
	ORDER BY r.created_at DESC, r.id DESC`)
	if err != nil {
		log.Errorf("SQL error listing restaurants: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	index := map[int]int{}
	for rows.Next() {
		var restaurant models.Restaurant
		var avg sql.NullFloat64
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.Address, &restaurant.Phone,
			&restaurant.CreatedAt, &restaurant.ReviewCount, &avg); err != nil {
			log.Errorf("SQL scan error listing restaurants: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}
		if avg.Valid {
			restaurant.AverageRating = &avg.Float64
		}
		restaurant.Reviews = []models.Review{}
		index[restaurant.ID] = len(restaurants)
		restaurants = append(restaurants, restaurant)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("SQL rows error listing restaurants: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}

	reviewRows, err := rc.db.Query(`SELECT id, restaurant_id, rating, review, visitor_name, created_at
		FROM reviews ORDER BY created_at DESC, id DESC`)
	if err != nil {
		log.Errorf("SQL error listing reviews: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	defer reviewRows.Close()

	for reviewRows.Next() {
		var review models.Review
		if err := reviewRows.Scan(&review.ID, &review.RestaurantID, &review.Rating,
			&review.Review, &review.VisitorName, &review.CreatedAt); err != nil {
			log.Errorf("SQL scan error listing reviews: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}
		if i, ok := index[review.RestaurantID]; ok {
			restaurants[i].Reviews = append(restaurants[i].Reviews, review)
		}
	}
	if err := reviewRows.Err(); err != nil {
		log.Errorf("SQL rows error listing reviews: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, models.Response{Success: true, Data: restaurants})
}

// GetRestaurant returns one restaurant with its reviews, newest first.
func (rc *RestaurantController) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := utils.StrToInt(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid restaurant ID"})
		return
	}

	var restaurant models.Restaurant
	var avg sql.NullFloat64
	err = rc.db.QueryRow(restaurantAggregateQuery+`
	WHERE r.id = ?
	GROUP BY r.id, r.name, r.address, r.phone, r.created_at`, id).Scan(
		&restaurant.ID, &restaurant.Name, &restaurant.Address, &restaurant.Phone,
		&restaurant.CreatedAt, &restaurant.ReviewCount, &avg)
	if err == sql.ErrNoRows {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Restaurant not found"})
		return
	}
	if err != nil {
		log.Errorf("SQL error fetching restaurant %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	if avg.Valid {
		restaurant.AverageRating = &avg.Float64
	}

	restaurant.Reviews = []models.Review{}
	rows, err := rc.db.Query(`SELECT id, restaurant_id, rating, review, visitor_name, created_at
		FROM reviews WHERE restaurant_id = ? ORDER BY created_at DESC, id DESC`, id)
	if err != nil {
		log.Errorf("SQL error fetching reviews for restaurant %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	defer rows.Close()

	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.RestaurantID, &review.Rating,
			&review.Review, &review.VisitorName, &review.CreatedAt); err != nil {
			log.Errorf("SQL scan error fetching reviews for restaurant %d: %v", id, err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}
		restaurant.Reviews = append(restaurant.Reviews, review)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("SQL rows error fetching reviews for restaurant %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, models.Response{Success: true, Data: restaurant})
}

// CreateRestaurant inserts a listing. Only name is required; address and
// phone default to empty strings.
func (rc *RestaurantController) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req RestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: validationMessage(err)})
		return
	}

	result, err := rc.db.Exec(`INSERT INTO restaurants (name, address, phone) VALUES (?, ?, ?)`,
		req.Name, req.Address, req.Phone)
	if err != nil {
		log.Errorf("SQL error creating restaurant: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		log.Errorf("Error getting last insert ID: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}

	utils.ResponseJSON(w, http.StatusCreated, models.Response{
		Success: true,
		Message: "Restaurant created successfully",
		Data: map[string]interface{}{
			"id":      id,
			"name":    req.Name,
			"address": req.Address,
			"phone":   req.Phone,
		},
	})
}

// UpdateRestaurant replaces name, address and phone on an existing listing.
func (rc *RestaurantController) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := utils.StrToInt(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid restaurant ID"})
		return
	}

	var req RestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: validationMessage(err)})
		return
	}

	// RowsAffected is unreliable for no-op updates, so check existence first.
	var exists bool
	if err := rc.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM restaurants WHERE id = ?)`, id).Scan(&exists); err != nil {
		log.Errorf("SQL error checking restaurant %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	if !exists {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Restaurant not found"})
		return
	}

	_, err = rc.db.Exec(`UPDATE restaurants SET name = ?, address = ?, phone = ? WHERE id = ?`,
		req.Name, req.Address, req.Phone, id)
	if err != nil {
		log.Errorf("SQL error updating restaurant %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, models.Response{Success: true, Message: "Restaurant updated successfully"})
}

// DeleteRestaurant removes a listing and all of its reviews in one
// transaction, so a failed delete never leaves orphaned reviews.
func (rc *RestaurantController) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := utils.StrToInt(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid restaurant ID"})
		return
	}

	tx, err := rc.db.Begin()
	if err != nil {
		log.Errorf("SQL error starting transaction: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}

	if _, err := tx.Exec(`DELETE FROM reviews WHERE restaurant_id = ?`, id); err != nil {
		tx.Rollback()
		log.Errorf("SQL error deleting reviews for restaurant %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}

	result, err := tx.Exec(`DELETE FROM restaurants WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		log.Errorf("SQL error deleting restaurant %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		log.Errorf("Error getting rows affected: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	if affected == 0 {
		tx.Rollback()
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Restaurant not found"})
		return
	}

	if err := tx.Commit(); err != nil {
		log.Errorf("SQL error committing restaurant delete: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, models.Response{Success: true, Message: "Restaurant deleted successfully"})
}
