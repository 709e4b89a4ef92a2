package models

import "time"

// Review is a review as recorded on-chain. Content lives in Walrus under WalrusBlobID.
type Review struct {
	ID           string `json:"id"`
	Author       string `json:"author"`
	Target       string `json:"target"`
	Rating       int    `json:"rating"`
	Content      string `json:"content"`
	Timestamp    int64  `json:"timestamp"`
	WalrusBlobID string `json:"walrusBlobId,omitempty"`
}

// ReviewDocument is the JSON body uploaded to Walrus for a new review.
type ReviewDocument struct {
	Target    string    `json:"target"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewReceipt is returned after a review submission.
type ReviewReceipt struct {
	ReviewID        string `json:"reviewId"`
	TransactionHash string `json:"transactionHash"`
	BlobID          string `json:"blobId"`
}

// ReviewStats summarises the reviews of one target.
type ReviewStats struct {
	TotalReviews       int         `json:"totalReviews"`
	AverageRating      float64     `json:"averageRating"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)
