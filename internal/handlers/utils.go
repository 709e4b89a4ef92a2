package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// DefaultLimit is the page size used when limit is absent or unusable.
const DefaultLimit = 10

// parseLimit reads ?limit=, falling back to DefaultLimit for missing,
// non-numeric or non-positive values.
func parseLimit(r *http.Request) int {
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			return val
		}
	}
	return DefaultLimit
}

// decodeJSON decodes the request body into v and reports a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		JSONError(w, ErrMessageInvalidJSON, http.StatusBadRequest)
		return false
	}
	return true
}

// isFalsy reports whether raw is absent or one of null, false, 0 and "".
func isFalsy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return true
	}
	switch string(v) {
	case "null", "false", `""`:
		return true
	}
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n == 0
	}
	return false
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
