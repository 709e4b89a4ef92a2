package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/verakita/verakita-api/internal/apikeys"
	"github.com/verakita/verakita-api/internal/config"
	"github.com/verakita/verakita-api/internal/health"
	"github.com/verakita/verakita-api/internal/mockdata"
	"github.com/verakita/verakita-api/internal/models"
	"github.com/verakita/verakita-api/internal/sui"
	"github.com/verakita/verakita-api/internal/walrus"
)

// AdminHandler serves /api/admin. Routes are mounted behind RequireAdmin.
type AdminHandler struct {
	Logs   LogStore
	Keys   APIKeyStore
	Health HealthSource
	Config config.Config
	Log    *slog.Logger
}

// ==========================
// Logs
// ==========================

// ListLogs lists system log entries filtered by ?level=all|info|warning|error.
// Counts always cover the unfiltered set.
func (h *AdminHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	if level != "" && level != "all" && !slices.Contains(models.LogLevels, level) {
		JSONError(w, "Invalid log level", http.StatusBadRequest)
		return
	}

	entries, err := h.Logs.List(r.Context(), level)
	if err != nil {
		h.internal(w, r, "list logs", err)
		return
	}
	counts, err := h.Logs.Counts(r.Context())
	if err != nil {
		h.internal(w, r, "count logs", err)
		return
	}

	JSONSuccess(w, map[string]any{
		"logs":   entries,
		"total":  len(entries),
		"counts": counts,
	})
}

// ==========================
// API Keys
// ==========================

func (h *AdminHandler) ListKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.Keys.List(r.Context())
	if err != nil {
		h.internal(w, r, "list api keys", err)
		return
	}
	JSONSuccess(w, map[string]any{"keys": keys, "total": len(keys)})
}

// CreateKey issues a key. The plaintext secret is only ever in this response.
func (h *AdminHandler) CreateKey(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string   `json:"name" validate:"required,min=2,max=100"`
		Environment string   `json:"environment" validate:"omitempty,oneof=prod dev test"`
		Permissions []string `json:"permissions" validate:"required,min=1"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, "Name and permissions are required", http.StatusBadRequest)
		return
	}
	if !apikeys.ValidPermissions(input.Permissions) {
		JSONError(w, "Permissions must be read and/or write", http.StatusBadRequest)
		return
	}
	if input.Environment == "" {
		input.Environment = "dev"
	}

	issued, err := apikeys.Issue(input.Name, input.Environment, input.Permissions)
	if err != nil {
		h.internal(w, r, "issue api key", err)
		return
	}
	stored, err := h.Keys.Create(r.Context(), issued.APIKey)
	if err != nil {
		h.internal(w, r, "store api key", err)
		return
	}
	issued.APIKey = stored

	loggerOr(h.Log).InfoContext(r.Context(), "api key created",
		slog.Int("id", stored.ID),
		slog.String("name", stored.Name))
	JSONCreated(w, issued)
}

func (h *AdminHandler) RevokeKey(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "Invalid API key id", http.StatusBadRequest)
		return
	}

	k, err := h.Keys.Revoke(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		JSONError(w, "API key not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.internal(w, r, "revoke api key", err)
		return
	}
	JSONSuccess(w, k)
}

// ==========================
// Overview / Settings
// ==========================

func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	var snap models.HealthSnapshot
	if h.Health != nil {
		snap = h.Health.Snapshot()
	}
	JSONSuccess(w, map[string]any{
		"health":         health.Cards(snap),
		"stats":          mockdata.AdminStats(),
		"recentActivity": mockdata.RecentActivity(),
		"lastProbe":      snap,
	})
}

func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	cfg := h.Config
	s := models.Settings{
		SystemName: "Verakita Production",
		AdminEmail: "admin@verakita.com",
		Sui: models.SuiSettings{
			Network:         cfg.SuiNetwork,
			RPCURL:          cfg.SuiRPCURL,
			FaucetURL:       cfg.SuiFaucetURL,
			ReviewPackageID: cfg.ReviewPackageID,
			ReviewRegistry:  cfg.ReviewRegistryID,
		},
		Walrus: models.WalrusSettings{
			PublisherURL:   cfg.WalrusPublisherURL,
			AggregatorURL:  cfg.WalrusAggregatorURL,
			DefaultEpochs:  walrus.DefaultEpochs,
			MaxUploadBytes: cfg.WalrusMaxUploadBytes,
		},
		Features: models.FeatureFlags{
			Blockchain: cfg.EnableBlockchain,
			Walrus:     cfg.EnableWalrus,
		},
	}
	if cfg.ReviewPackageID != "" {
		s.Sui.ReviewCall = sui.ReviewMoveTarget(cfg.ReviewPackageID)
	}
	JSONSuccess(w, s)
}

func (h *AdminHandler) internal(w http.ResponseWriter, r *http.Request, op string, err error) {
	loggerOr(h.Log).ErrorContext(r.Context(), "admin: "+op, slog.String("error", err.Error()))
	JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
}
