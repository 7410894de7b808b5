package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/dmitrijs2005/pharmadesk/internal/client/client"
	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/dmitrijs2005/pharmadesk/internal/logging"
)

// ProductService keeps the in-memory catalog in sync with the API.
//
// Contract:
//   - Start/Load: replace the collection with the server list. Failures are
//     logged and leave an empty collection; nothing is returned.
//   - Create: validate, send, append the server record. Errors are returned.
//   - Delete: remove on the server, then locally by id. Errors are returned.
//   - Reset: forget the collection (after logout); the next Start loads again.
//   - Products: a copy of the collection in insertion order.
type ProductService interface {
	Start(ctx context.Context)
	Load(ctx context.Context)
	Reset()
	Create(ctx context.Context, draft models.ProductDraft) (models.Product, error)
	Delete(ctx context.Context, id int64) error
	Products() []models.Product
	Find(id int64) (models.Product, bool)
	Loading() bool
	Err() error
	Summary() (count int, total float64)
}

type productService struct {
	client client.Client
	store  SessionStore
	log    logging.Logger

	mu       sync.Mutex
	products []models.Product
	loading  bool
	err      error
	gen      uint64
	started  bool
}

// NewProductService constructs a ProductService. The bearer token is read
// from store on every call.
func NewProductService(c client.Client, store SessionStore, log logging.Logger) ProductService {
	if log == nil {
		log = logging.Nop()
	}
	return &productService{client: c, store: store, log: log, products: []models.Product{}}
}

// Start runs the initial load once. Later calls do nothing; use Load to refresh.
func (s *productService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.Load(ctx)
}

// Load fetches the full list. When several loads overlap, only the most
// recently started one may change the collection.
func (s *productService) Load(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.mu.Unlock()

	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug(ctx, "discarding superseded product list", "generation", gen)
		return
	}
	s.loading = false

	if err != nil {
		s.log.Error(ctx, "failed to load products", "error", err)
		s.products = []models.Product{}
		return
	}
	s.products = items
	s.log.Debug(ctx, "products loaded", "count", len(items))
}

func (s *productService) fetch(ctx context.Context) ([]models.Product, error) {
	token := s.store.Token(ctx)
	if token == "" {
		return nil, ErrNoSession
	}

	raw, err := s.client.ListProducts(ctx, token)
	if err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, len(raw))
	for _, r := range raw {
		id, err := models.CoerceID(r.ID)
		if err != nil {
			s.log.Warn(ctx, "product id is not an integer, using 0", "raw_id", string(r.ID), "name", r.Name)
			id = 0
		}
		out = append(out, models.Product{ID: id, Name: r.Name, Description: r.Description, Price: r.Price})
	}
	return out, nil
}

// Reset empties the collection and discards any load still in flight.
func (s *productService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.products = []models.Product{}
	s.loading = false
	s.err = nil
	s.started = false
}

// checkDraft repeats the form rules so Create never trusts its caller.
func checkDraft(d models.ProductDraft) (models.ProductDraft, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	price := float64(d.Price)

	switch {
	case d.Name == "":
		return d, fmt.Errorf("%w: name is required", ErrInvalidDraft)
	case d.Description == "":
		return d, fmt.Errorf("%w: description is required", ErrInvalidDraft)
	case math.IsNaN(price) || math.IsInf(price, 0):
		return d, fmt.Errorf("%w: price must be a finite number", ErrInvalidDraft)
	case models.RoundPrice(price) <= 0:
		return d, fmt.Errorf("%w: price must be greater than 0", ErrInvalidDraft)
	}

	d.Price = models.Price(models.RoundPrice(price))
	return d, nil
}

func (s *productService) Create(ctx context.Context, draft models.ProductDraft) (models.Product, error) {
	p, err := s.create(ctx, draft)
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	if err != nil {
		s.log.Error(ctx, "failed to create product", "name", draft.Name, "error", err)
	}
	return p, err
}

func (s *productService) create(ctx context.Context, draft models.ProductDraft) (models.Product, error) {
	draft, err := checkDraft(draft)
	if err != nil {
		return models.Product{}, err
	}

	token := s.store.Token(ctx)
	if token == "" {
		return models.Product{}, ErrNoSession
	}

	raw, err := s.client.CreateProduct(ctx, token, draft)
	if err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	if raw == nil {
		return models.Product{}, fmt.Errorf("create product: %w", client.ErrMalformedResponse)
	}

	id, err := models.CoerceID(raw.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidServerRecord, err)
	}

	p := models.Product{ID: id, Name: raw.Name, Description: raw.Description, Price: raw.Price}

	s.mu.Lock()
	s.products = append(s.products, p)
	s.mu.Unlock()

	s.log.Info(ctx, "product created", "id", id)
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	err := s.delete(ctx, id)
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	if err != nil {
		s.log.Error(ctx, "failed to delete product", "id", id, "error", err)
	}
	return err
}

func (s *productService) delete(ctx context.Context, id int64) error {
	token := s.store.Token(ctx)
	if token == "" {
		return ErrNoSession
	}

	if err := s.client.DeleteProduct(ctx, token, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	s.mu.Lock()
	kept := s.products[:0:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()

	s.log.Info(ctx, "product deleted", "id", id)
	return nil
}

func (s *productService) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Find returns the first product with the given id.
func (s *productService) Find(id int64) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *productService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error of the last Create or Delete, or nil.
// A failed Load never sets it.
func (s *productService) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Summary returns the number of products and the sum of their prices.
func (s *productService) Summary() (count int, total float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		total += float64(p.Price)
	}
	return len(s.products), models.RoundPrice(total)
}
