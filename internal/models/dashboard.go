package models

// Dashboard review statuses.
const (
	ReviewPending   = "pending"
	ReviewResponded = "responded"
)

// ReviewStatuses lists the dashboard review statuses a filter may name.
var ReviewStatuses = []string{ReviewPending, ReviewResponded}

// DashboardReview is a customer review as listed in the merchant dashboard.
type DashboardReview struct {
	ID       int    `json:"id"`
	User     string `json:"user"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Platform string `json:"platform"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}

// StatCard is a headline number with its change over the previous period.
type StatCard struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Change   string `json:"change"`
	Positive bool   `json:"positive"`
}

// Integration is a third-party platform the merchant can connect.
type Integration struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Connected   bool   `json:"connected"`
}

// Activity is one recent API call shown on the admin overview.
type Activity struct {
	Endpoint string `json:"endpoint"`
	Status   int    `json:"status"`
	Time     string `json:"time"`
}

// PerformanceBar is one percentage bar of the analytics performance overview.
type PerformanceBar struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// TrafficSource is one referrer bucket of the analytics page.
type TrafficSource struct {
	Source     string `json:"source"`
	Percentage int    `json:"percentage"`
	Value      string `json:"value"`
}
