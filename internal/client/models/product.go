package models

// Product is a catalog record as held by the client.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
}

// ProductDraft is a product that has not been created yet.
type ProductDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
}
