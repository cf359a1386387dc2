// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"solvest-backend/internal/util"
)

// validate is the shared request validator.
var validate = validator.New()

// respondWithJSON writes a JSON response with the given status code.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps a service error to an HTTP status and a message body.
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrInsufficientBalance),
		util.IsError(err, util.ErrInvalidWalletAddress),
		util.IsError(err, util.ErrInvalidStatus),
		util.IsError(err, util.ErrNotMatured),
		util.IsError(err, util.ErrDuplicateEmail):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = err.Error()
	case util.IsError(err, util.ErrNotFound),
		util.IsError(err, util.ErrUserNotFound),
		util.IsError(err, util.ErrInvestmentNotFound),
		util.IsError(err, util.ErrWithdrawalNotFound),
		util.IsError(err, util.ErrDepositNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, map[string]string{"message": message})
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. A false return means a 400 has already been written.
func decodeAndValidate(logger *slog.Logger, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithJSON(logger, w, http.StatusBadRequest, map[string]string{"message": "Invalid input data"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				details[fe.Field()] = fmt.Sprintf("failed validation: %s", fe.Tag())
			}
			respondWithJSON(logger, w, http.StatusBadRequest, map[string]interface{}{
				"message": "Invalid input data",
				"errors":  details,
			})
			return false
		}
		respondWithJSON(logger, w, http.StatusBadRequest, map[string]string{"message": "Invalid input data"})
		return false
	}
	return true
}
