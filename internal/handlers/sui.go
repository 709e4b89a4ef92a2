package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verakita/verakita-api/internal/sui"
)

// SuiHandler serves /api/sui.
type SuiHandler struct {
	Chain   ChainReader
	Network string
	Log     *slog.Logger
}

// ==========================
// Transaction
// ==========================

// Transaction accepts a transaction request but never builds or signs it.
func (h *SuiHandler) Transaction(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Transaction json.RawMessage `json:"transaction"`
		Sender      string          `json:"sender"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	if isFalsy(input.Transaction) || input.Sender == "" {
		JSONError(w, "Missing transaction or sender", http.StatusBadRequest)
		return
	}
	JSONSuccessMessage(w, "Transactions must be signed client-side", nil)
}

// ==========================
// Reads
// ==========================

func (h *SuiHandler) Epoch(w http.ResponseWriter, r *http.Request) {
	epoch, err := h.Chain.LatestEpoch(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to fetch epoch", err)
		return
	}
	JSONSuccess(w, map[string]string{"epoch": epoch, "network": h.Network})
}

func (h *SuiHandler) Balance(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	bal, err := h.Chain.Balance(r.Context(), address)
	if err != nil {
		h.fail(w, r, "Failed to fetch balance", err)
		return
	}
	formatted, err := sui.FormatSUI(bal.TotalBalance)
	if err != nil {
		h.fail(w, r, "Failed to fetch balance", err)
		return
	}
	JSONSuccess(w, map[string]any{
		"address":         address,
		"coinType":        bal.CoinType,
		"coinObjectCount": bal.CoinObjectCount,
		"totalBalance":    bal.TotalBalance,
		"sui":             formatted,
	})
}

func (h *SuiHandler) Objects(w http.ResponseWriter, r *http.Request) {
	page, err := h.Chain.OwnedObjects(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		h.fail(w, r, "Failed to fetch objects", err)
		return
	}
	JSONSuccess(w, page)
}

func (h *SuiHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	loggerOr(h.Log).ErrorContext(r.Context(), "sui rpc failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	JSONError(w, msg, http.StatusInternalServerError)
}
