package handlers

import (
	"net/http"
	"slices"

	"github.com/verakita/verakita-api/internal/mockdata"
	"github.com/verakita/verakita-api/internal/models"
)

// DashboardHandler serves the merchant dashboard's seeded data.
type DashboardHandler struct{}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, map[string]any{
		"stats":         mockdata.DashboardStats(),
		"recentReviews": mockdata.RecentReviews(),
	})
}

// Reviews lists dashboard reviews, optionally filtered by ?status=pending|responded.
func (h *DashboardHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != "all" && !slices.Contains(models.ReviewStatuses, status) {
		JSONError(w, "Invalid review status", http.StatusBadRequest)
		return
	}
	all := mockdata.DashboardReviews()

	list := make([]models.DashboardReview, 0, len(all))
	for _, rv := range all {
		if status == "" || status == "all" || rv.Status == status {
			list = append(list, rv)
		}
	}
	JSONSuccess(w, map[string]any{"reviews": list, "total": len(list)})
}

func (h *DashboardHandler) APIKeys(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, map[string]any{"keys": mockdata.DashboardAPIKeys()})
}

func (h *DashboardHandler) Integrations(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, map[string]any{"integrations": mockdata.Integrations()})
}

func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, map[string]any{
		"metrics":        mockdata.AnalyticsMetrics(),
		"performance":    mockdata.Performance(),
		"trafficSources": mockdata.TrafficSources(),
	})
}
