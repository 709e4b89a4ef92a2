package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/verakita/verakita-api/internal/models"
)

func writeFailure(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.Envelope{Success: false, Error: message})
}
