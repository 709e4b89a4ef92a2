// Package mockdata holds the seeded records behind the dashboard, marketplace and
// admin panels. Every function returns a fresh copy, so callers may mutate results.
package mockdata

import (
	"fmt"
	"time"

	"github.com/verakita/verakita-api/internal/models"
)

const reviewComment = "Excellent service and product quality. The team was very responsive and helpful throughout the entire process."

const recentComment = "Great service! Highly recommended for anyone looking for quality and reliability."

// DashboardReviews are the four reviews on the merchant reviews page.
func DashboardReviews() []models.DashboardReview {
	return []models.DashboardReview{
		{ID: 1, User: "User 1", Rating: 5, Comment: reviewComment, Platform: "Verakita", Date: "2 days ago", Status: models.ReviewPending},
		{ID: 2, User: "User 2", Rating: 5, Comment: reviewComment, Platform: "Shopify", Date: "2 days ago", Status: models.ReviewResponded},
		{ID: 3, User: "User 3", Rating: 5, Comment: reviewComment, Platform: "Google Reviews", Date: "2 days ago", Status: models.ReviewPending},
		{ID: 4, User: "User 4", Rating: 5, Comment: reviewComment, Platform: "Verakita", Date: "2 days ago", Status: models.ReviewResponded},
	}
}

// RecentReviews feed the dashboard home.
func RecentReviews() []models.DashboardReview {
	out := make([]models.DashboardReview, 0, 3)
	for i := 1; i <= 3; i++ {
		out = append(out, models.DashboardReview{
			ID:       i,
			User:     fmt.Sprintf("User %d", i),
			Rating:   5,
			Comment:  recentComment,
			Platform: "Verakita",
			Date:     "today",
			Status:   models.ReviewPending,
		})
	}
	return out
}

// DashboardStats are the merchant headline numbers.
func DashboardStats() []models.StatCard {
	return []models.StatCard{
		{Title: "Total Reviews", Value: "1,234", Change: "+12.5%", Positive: true},
		{Title: "Avg Rating", Value: "4.8", Change: "+0.3", Positive: true},
		{Title: "Active Users", Value: "856", Change: "+8.2%", Positive: true},
		{Title: "Response Rate", Value: "94%", Change: "-2.1%", Positive: false},
	}
}

// AdminStats are the admin overview headline numbers.
func AdminStats() []models.StatCard {
	return []models.StatCard{
		{Title: "Total Reviews", Value: "1,234", Change: "+12.5%", Positive: true},
		{Title: "Active Users", Value: "856", Change: "+8.2%", Positive: true},
		{Title: "API Calls", Value: "45.2K", Change: "+15.3%", Positive: true},
	}
}

// RecentActivity is the admin "Recent API Activity" list.
func RecentActivity() []models.Activity {
	return []models.Activity{
		{Endpoint: "POST /api/reviews", Status: 200, Time: "2 min ago"},
		{Endpoint: "GET /api/reviews", Status: 200, Time: "5 min ago"},
		{Endpoint: "POST /api/walrus/upload", Status: 201, Time: "8 min ago"},
		{Endpoint: "GET /api/user/profile", Status: 200, Time: "12 min ago"},
	}
}

// DashboardAPIKeys are the three keys on the merchant API page.
func DashboardAPIKeys() []models.APIKey {
	return []models.APIKey{
		{ID: 1, Name: "Production Key", MaskedKey: "vk_prod_••••••••••••3f2a", Status: models.KeyStatusActive, CreatedAt: day(2024, 1, 15)},
		{ID: 2, Name: "Development Key", MaskedKey: "vk_dev_••••••••••••7b9c", Status: models.KeyStatusActive, CreatedAt: day(2024, 1, 10)},
		{ID: 3, Name: "Test Key", MaskedKey: "vk_test_••••••••••••1d4e", Status: models.KeyStatusInactive, CreatedAt: day(2023, 12, 20)},
	}
}

// AdminAPIKeys seed the admin API key store.
func AdminAPIKeys() []models.APIKey {
	return []models.APIKey{
		{
			ID: 1, Name: "Production API Key", MaskedKey: "vk_prod_••••••••••••3f2a",
			Permissions: []string{models.PermissionRead, models.PermissionWrite},
			Status:      models.KeyStatusActive, CreatedAt: day(2024, 1, 15), LastUsed: "2 hours ago",
		},
		{
			ID: 2, Name: "Development Key", MaskedKey: "vk_dev_••••••••••••7b9c",
			Permissions: []string{models.PermissionRead},
			Status:      models.KeyStatusActive, CreatedAt: day(2024, 1, 10), LastUsed: "1 day ago",
		},
	}
}

// SystemLogs seed the admin log store.
func SystemLogs() []models.LogEntry {
	return []models.LogEntry{
		{
			ID: 1, Timestamp: at("2024-11-21 14:32:15"), Level: models.LevelInfo, Service: "API",
			Message: "Review created successfully",
			Details: map[string]any{"reviewId": "0x123", "user": "0x456"},
		},
		{
			ID: 2, Timestamp: at("2024-11-21 14:30:42"), Level: models.LevelError, Service: "Walrus",
			Message: "Failed to upload file to Walrus",
			Details: map[string]any{"error": "Network timeout", "blobId": nil},
		},
		{
			ID: 3, Timestamp: at("2024-11-21 14:28:10"), Level: models.LevelWarning, Service: "Sui",
			Message: "Transaction took longer than expected",
			Details: map[string]any{"txHash": "0xabc", "duration": "5.2s"},
		},
		{
			ID: 4, Timestamp: at("2024-11-21 14:25:33"), Level: models.LevelInfo, Service: "API",
			Message: "User profile updated",
			Details: map[string]any{"userId": "user_123"},
		},
	}
}

// Integrations are the connectable platforms.
func Integrations() []models.Integration {
	return []models.Integration{
		{Name: "Shopify", Description: "Sync reviews with your Shopify store", Icon: "🛍️", Connected: true},
		{Name: "WooCommerce", Description: "Integrate with WooCommerce products", Icon: "🛒", Connected: false},
		{Name: "Google Reviews", Description: "Import Google Business reviews", Icon: "🔍", Connected: true},
		{Name: "Trustpilot", Description: "Connect your Trustpilot account", Icon: "⭐", Connected: false},
	}
}

// Products are the marketplace simulation items.
func Products() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Wireless Headphones Pro", Description: "Premium noise-canceling headphones with 40-hour battery life", Price: 299, Image: "🎧", Seller: "0x1234...5678", Rating: 4.5, Reviews: 124},
		{ID: "2", Name: "Smart Watch Ultra", Description: "Advanced fitness tracking with health monitoring features", Price: 399, Image: "⌚", Seller: "0xabcd...efgh", Rating: 4.8, Reviews: 89},
		{ID: "3", Name: "Mechanical Keyboard RGB", Description: "Gaming keyboard with customizable RGB and hot-swappable switches", Price: 149, Image: "⌨️", Seller: "0x9876...5432", Rating: 4.7, Reviews: 203},
		{ID: "4", Name: "Portable SSD 2TB", Description: "Ultra-fast external storage with USB-C connectivity", Price: 199, Image: "💾", Seller: "0x5678...1234", Rating: 4.9, Reviews: 156},
		{ID: "5", Name: "Webcam 4K Pro", Description: "Professional streaming webcam with auto-focus and HDR", Price: 129, Image: "📹", Seller: "0xdef0...9abc", Rating: 4.6, Reviews: 78},
		{ID: "6", Name: "USB-C Hub 8-in-1", Description: "Multiport adapter with HDMI, USB 3.0, and card readers", Price: 49, Image: "🔌", Seller: "0x4321...8765", Rating: 4.4, Reviews: 312},
	}
}

// AnalyticsMetrics are the analytics page headline cards.
func AnalyticsMetrics() []models.StatCard {
	return []models.StatCard{
		{Title: "Total Revenue", Value: "$12,458", Change: "+18.2%", Positive: true},
		{Title: "Conversion Rate", Value: "3.24%", Change: "+2.1%", Positive: true},
		{Title: "Avg. Review Score", Value: "4.7/5.0", Change: "+0.3", Positive: true},
	}
}

// Performance is the analytics performance overview.
func Performance() []models.PerformanceBar {
	return []models.PerformanceBar{
		{Label: "Review Completion", Value: 87},
		{Label: "User Engagement", Value: 92},
		{Label: "Response Time", Value: 76},
		{Label: "Customer Satisfaction", Value: 94},
	}
}

// TrafficSources is the analytics referrer split.
func TrafficSources() []models.TrafficSource {
	return []models.TrafficSource{
		{Source: "Direct", Percentage: 45, Value: "1,245"},
		{Source: "Organic Search", Percentage: 30, Value: "832"},
		{Source: "Social Media", Percentage: 15, Value: "416"},
		{Source: "Referral", Percentage: 10, Value: "277"},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(s string) time.Time {
	t, err := time.Parse(time.DateTime, s)
	if err != nil {
		panic(err)
	}
	return t
}
