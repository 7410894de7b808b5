package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) (*models.AuthResponse, error)
	ListProducts(ctx context.Context, token string) ([]RawProduct, error)
	CreateProduct(ctx context.Context, token string, draft models.ProductDraft) (*RawProduct, error)
	DeleteProduct(ctx context.Context, token string, id int64) error
}

// RawProduct is a product exactly as the server sent it.
// ID is left undecoded because servers send it as a number or a string.
type RawProduct struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       models.Price    `json:"price"`
}
