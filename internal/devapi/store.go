package devapi

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/dmitrijs2005/pharmadesk/internal/common"
)

// User is an account known to the dev API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
}

// Product is a stored catalog record.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       models.Price
}

// Store keeps users and products in memory. Products are returned in
// insertion order and ids are never reused.
type Store struct {
	mu       sync.RWMutex
	users    map[string]User
	products []Product
	nextID   int64
	cost     int
}

// NewStore returns an empty store hashing passwords with bcrypt at cost.
// A cost of 0 selects bcrypt.DefaultCost.
func NewStore(cost int) *Store {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Store{
		users:  make(map[string]User),
		nextID: 1,
		cost:   cost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AddUser registers an account. Emails are matched case-insensitively.
func (s *Store) AddUser(name, email, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	if _, ok := s.users[key]; ok {
		return User{}, fmt.Errorf("user %s already exists", u.Email)
	}
	s.users[key] = u
	return u, nil
}

// Authenticate returns the user matching email and password,
// or common.ErrInvalidCredentials.
func (s *Store) Authenticate(email, password string) (User, error) {
	s.mu.RLock()
	u, ok := s.users[normalizeEmail(email)]
	s.mu.RUnlock()

	if !ok {
		return User{}, common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return User{}, common.ErrInvalidCredentials
	}
	return u, nil
}

// Products returns a copy of the catalog.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// CreateProduct stores d under the next id.
func (s *Store) CreateProduct(d models.ProductDraft) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:          s.nextID,
		Name:        d.Name,
		Description: d.Description,
		Price:       models.Price(models.RoundPrice(float64(d.Price))),
	}
	s.nextID++
	s.products = append(s.products, p)
	return p
}

// DeleteProduct removes the product with id, or returns common.ErrorNotFound.
func (s *Store) DeleteProduct(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// SeedCatalog adds a handful of sample products.
func (s *Store) SeedCatalog() {
	for _, d := range []models.ProductDraft{
		{Name: "Paracetamol 500mg", Description: "Analgesic, 20 tablets", Price: 3.49},
		{Name: "Ibuprofen 200mg", Description: "Anti-inflammatory, 24 tablets", Price: 4.99},
		{Name: "Cetirizine 10mg", Description: "Antihistamine, 30 tablets", Price: 7.25},
	} {
		s.CreateProduct(d)
	}
}
