package recommendations

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"planwise-backend/internal/recommendations/engine"
)

// GenerateRequest is the request body for recommendation endpoints.
type GenerateRequest struct {
	Category string             `json:"category" validate:"required,plan_category"`
	Profile  engine.UserProfile `json:"profile"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// plan_category accepts the four supported service categories.
	_ = v.RegisterValidation("plan_category", func(fl validator.FieldLevel) bool {
		_, ok := engine.ParseCategory(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks the request against its declared rules.
func (r GenerateRequest) Validate() error {
	return validate.Struct(r)
}

func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, strings.ToLower(fe.Field())+" failed "+fe.Tag())
	}
	return out
}
