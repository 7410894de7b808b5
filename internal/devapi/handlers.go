package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/dmitrijs2005/pharmadesk/internal/common"
	"github.com/dmitrijs2005/pharmadesk/internal/logging"
)

// envelope wraps every response body.
type envelope struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type productRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       models.Price `json:"price"`
}

type productView struct {
	ID          any          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       models.Price `json:"price"`
}

type loginData struct {
	Session models.AuthSession `json:"session"`
	User    models.UserProfile `json:"user"`
}

type handlers struct {
	store        *Store
	tokens       *TokenIssuer
	log          logging.Logger
	idsAsStrings bool
}

func (h *handlers) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body envelope) {
	body.Code = status
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error(ctx, "write response", "error", err)
	}
}

func (h *handlers) fail(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	h.writeJSON(ctx, w, status, envelope{Success: false, Error: msg})
}

func (h *handlers) view(p Product) productView {
	v := productView{Name: p.Name, Description: p.Description, Price: p.Price}
	if h.idsAsStrings {
		v.ID = strconv.FormatInt(p.ID, 10)
	} else {
		v.ID = p.ID
	}
	return v
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		h.fail(ctx, w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		h.log.Info(ctx, "login rejected", "email", req.Email)
		h.fail(ctx, w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		h.log.Error(ctx, "issue token", "error", err)
		h.fail(ctx, w, http.StatusInternalServerError, "could not issue token")
		return
	}

	idRaw, _ := json.Marshal(u.ID)
	h.writeJSON(ctx, w, http.StatusOK, envelope{
		Success: true,
		Message: "logged in",
		Data: loginData{
			Session: models.AuthSession{AccessToken: token},
			User: models.UserProfile{
				Name:  u.Name,
				Email: u.Email,
				Extra: map[string]json.RawMessage{"id": idRaw},
			},
		},
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.tokens.Revoke(claimsFrom(ctx))
	h.writeJSON(ctx, w, http.StatusOK, envelope{Success: true, Message: "logged out"})
}

func (h *handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	items := h.store.Products()
	out := make([]productView, 0, len(items))
	for _, p := range items {
		out = append(out, h.view(p))
	}
	h.writeJSON(r.Context(), w, http.StatusOK, envelope{Success: true, Data: out})
}

func (h *handlers) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := models.ProductDraft{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
	}
	switch {
	case draft.Name == "":
		h.fail(ctx, w, http.StatusUnprocessableEntity, "name is required")
		return
	case draft.Description == "":
		h.fail(ctx, w, http.StatusUnprocessableEntity, "description is required")
		return
	case draft.Price <= 0:
		h.fail(ctx, w, http.StatusUnprocessableEntity, "price must be greater than 0")
		return
	}

	p := h.store.CreateProduct(draft)
	h.log.Info(ctx, "product created", "id", p.ID)
	h.writeJSON(ctx, w, http.StatusCreated, envelope{Success: true, Message: "product created", Data: h.view(p)})
}

func (h *handlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.store.DeleteProduct(id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			h.fail(ctx, w, http.StatusNotFound, "product not found")
			return
		}
		h.log.Error(ctx, "delete product", "id", id, "error", err)
		h.fail(ctx, w, http.StatusInternalServerError, "could not delete product")
		return
	}

	h.log.Info(ctx, "product deleted", "id", id)
	h.writeJSON(ctx, w, http.StatusOK, envelope{Success: true, Message: "product deleted"})
}
