package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"restaurant-reviews/models"
	"restaurant-reviews/utils"
)

type ReviewController struct {
	db *sql.DB
}

func NewReviewController(db *sql.DB) *ReviewController {
	return &ReviewController{db: db}
}

// CreateReview inserts a review for an existing restaurant. Reviews against
// unknown restaurant ids are rejected before anything is written.
func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: validationMessage(err)})
		return
	}
	if req.VisitorName == "" {
		req.VisitorName = "Anonymous"
	}

	var exists bool
	err := rc.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM restaurants WHERE id = ?)`, req.RestaurantID).Scan(&exists)
	if err != nil {
		log.Errorf("SQL error checking restaurant %d: %v", req.RestaurantID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	if !exists {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Restaurant not found"})
		return
	}

	result, err := rc.db.Exec(`INSERT INTO reviews (restaurant_id, rating, review, visitor_name) VALUES (?, ?, ?, ?)`,
		req.RestaurantID, req.Rating, req.Review, req.VisitorName)
	if err != nil {
		log.Errorf("SQL error creating review: %v", err)
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
		Message: "Review created successfully",
		Data: map[string]interface{}{
			"id":            id,
			"restaurant_id": req.RestaurantID,
			"rating":        req.Rating,
			"review":        req.Review,
			"visitor_name":  req.VisitorName,
		},
	})
}

// UpdateReview replaces rating and review text. The restaurant id and
// visitor name are immutable after creation.
func (rc *ReviewController) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := utils.StrToInt(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid review ID"})
		return
	}

	var req UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: validationMessage(err)})
		return
	}

	var exists bool
	if err := rc.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM reviews WHERE id = ?)`, id).Scan(&exists); err != nil {
		log.Errorf("SQL error checking review %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	if !exists {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Review not found"})
		return
	}

	_, err = rc.db.Exec(`UPDATE reviews SET rating = ?, review = ? WHERE id = ?`, req.Rating, req.Review, id)
	if err != nil {
		log.Errorf("SQL error updating review %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, models.Response{Success: true, Message: "Review updated successfully"})
}

func (rc *ReviewController) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := utils.StrToInt(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid review ID"})
		return
	}

	result, err := rc.db.Exec(`DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		log.Errorf("SQL error deleting review %d: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	affected, err := result.RowsAffected()
	if err != nil {
		log.Errorf("Error getting rows affected: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
		return
	}
	if affected == 0 {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Review not found"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, models.Response{Success: true, Message: "Review deleted successfully"})
}
