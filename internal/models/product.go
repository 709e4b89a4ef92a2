package models

// Product is an item in the marketplace simulation.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	Image       string  `json:"image"`
	Seller      string  `json:"seller"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
}
