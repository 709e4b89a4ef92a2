package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/verakita/verakita-api/internal/middleware"
	"github.com/verakita/verakita-api/internal/models"
)

// PlaceholderAddress is shown when the caller is not authenticated.
const PlaceholderAddress = "0x..."

// ProfileHandler serves /api/user/profile.
type ProfileHandler struct{}

// Get returns the profile stub. A valid bearer token puts its wallet address in place.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := models.Profile{
		Address: PlaceholderAddress,
		Name:    "John Doe",
		Email:   "john@example.com",
	}
	if addr, ok := middleware.Subject(r.Context()); ok {
		p.Address = addr
	}
	JSONSuccess(w, p)
}

// Update echoes the submitted name and email.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  string `json:"name,omitempty"`
		Email string `json:"email,omitempty" validate:"omitempty,email"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, "Invalid email address", http.StatusBadRequest)
		return
	}

	JSONSuccess(w, input)
}
