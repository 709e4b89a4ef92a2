package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/verakita/verakita-api/internal/models"
)

// Fixed failure messages returned to clients.
const (
	ErrMessageInternal    = "Internal server error"
	ErrMessageInvalidJSON = "Invalid JSON body"
)

// JSONError sends a failure envelope with the given status.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeEnvelope(w, status, models.Envelope{Success: false, Error: message})
}

// JSONSuccess sends a 200 success envelope carrying data. A nil data becomes {}.
func JSONSuccess(w http.ResponseWriter, data any) {
	JSONSuccessMessage(w, "", data)
}

// JSONSuccessMessage is JSONSuccess with an informational message.
func JSONSuccessMessage(w http.ResponseWriter, message string, data any) {
	if data == nil {
		data = struct{}{}
	}
	writeEnvelope(w, http.StatusOK, models.Envelope{Success: true, Data: data, Message: message})
}

// JSONCreated sends a 201 success envelope.
func JSONCreated(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusCreated, models.Envelope{Success: true, Data: data})
}

func writeEnvelope(w http.ResponseWriter, status int, env models.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}
