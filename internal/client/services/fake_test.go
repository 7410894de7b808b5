package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/pharmadesk/internal/client/client"
	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/dmitrijs2005/pharmadesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pharmadesk/internal/client/session"
)

// ---- fake client ----

// fakeClient implements client.Client for unit tests of the flows.
type fakeClient struct {
	LoginRet   *models.AuthResponse
	LoginErr   error
	LoginHook  func()
	LoginCalls int

	LogoutRet  *models.AuthResponse
	LogoutErr  error
	LastLogout string

	ListRet   []client.RawProduct
	ListErr   error
	ListHook  func(call int) ([]client.RawProduct, error)
	ListCalls int

	CreateRet   *client.RawProduct
	CreateErr   error
	CreateCalls int
	LastDraft   models.ProductDraft

	DeleteErr   error
	DeleteCalls int
	LastDelete  int64

	LastToken string
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.LoginCalls++
	if f.LoginHook != nil {
		f.LoginHook()
	}
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Logout(ctx context.Context, token string) (*models.AuthResponse, error) {
	f.LastLogout = token
	return f.LogoutRet, f.LogoutErr
}

func (f *fakeClient) ListProducts(ctx context.Context, token string) ([]client.RawProduct, error) {
	f.ListCalls++
	f.LastToken = token
	if f.ListHook != nil {
		return f.ListHook(f.ListCalls)
	}
	return f.ListRet, f.ListErr
}

func (f *fakeClient) CreateProduct(ctx context.Context, token string, draft models.ProductDraft) (*client.RawProduct, error) {
	f.CreateCalls++
	f.LastToken = token
	f.LastDraft = draft
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) DeleteProduct(ctx context.Context, token string, id int64) error {
	f.DeleteCalls++
	f.LastToken = token
	f.LastDelete = id
	return f.DeleteErr
}

// ---- helpers ----

func newStore() (*session.Store, *metadata.MemoryRepository) {
	repo := metadata.NewMemoryRepository()
	return session.NewStore(repo, nil), repo
}

func okLogin(token, email string) *models.AuthResponse {
	return &models.AuthResponse{
		Success: true,
		Code:    200,
		Data: &models.AuthData{
			Session: models.AuthSession{AccessToken: token},
			User:    &models.UserProfile{Name: "Ana", Email: email},
		},
	}
}

func raw(id string, name string, price float64) client.RawProduct {
	return client.RawProduct{ID: json.RawMessage(id), Name: name, Description: name + " desc", Price: models.Price(price)}
}
