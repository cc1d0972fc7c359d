package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "pdf-ocr-converter/pkg/errors"
)

// respondError maps an application error onto the wire: AppErrors carry
// their own status code and user-facing message, anything else is a 500.
func respondError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeError(w, appErr.StatusCode, appErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
