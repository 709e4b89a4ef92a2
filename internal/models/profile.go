package models

// Profile is the wallet owner's public profile.
type Profile struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ReviewCount int    `json:"reviewCount"`
	Reputation  int    `json:"reputation"`
}
