package common

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateAndDecode(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		NewAppError(http.StatusBadRequest, "Invalid request body", err).Send(w)
		return false
	}

	// Field-level detail stays in the logs; clients get a uniform message.
	if err := validate.Struct(payload); err != nil {
		NewAppError(http.StatusBadRequest, "Invalid request", err).Send(w)
		return false
	}

	return true
}
