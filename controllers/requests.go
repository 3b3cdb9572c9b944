package controllers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json name so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RestaurantRequest is the payload for create and update; both replace all
// three fields.
type RestaurantRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type CreateReviewRequest struct {
	RestaurantID int    `json:"restaurant_id" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Review       string `json:"review" validate:"required"`
	VisitorName  string `json:"visitor_name"`
}

// UpdateReviewRequest carries only the mutable review fields; restaurant_id
// and visitor_name are immutable after creation.
type UpdateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"required"`
}

// validationMessage turns the first field error into a readable message.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid request"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s must be between %d and %d", fe.Field(), 1, 5)
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
