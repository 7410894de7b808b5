package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRESTClient(srv.URL+"/api", 2*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds models.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana@example.com", creds.Email)
		assert.Equal(t, "secret", creds.Password)

		writeJSON(w, http.StatusOK, `{"success":true,"code":200,"data":{"session":{"access_token":"tok"},"user":{"name":"Ana","email":"ana@example.com"}}}`)
	})

	resp, err := c.Login(context.Background(), models.Credentials{Email: "ana@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "tok", resp.AccessToken())
	require.NotNil(t, resp.User())
	assert.Equal(t, "Ana", resp.User().Name)
}

func TestLogin_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"code":401,"error":"Invalid credentials"}`)
	})

	_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", ErrorMessage(err))
}

func TestLogin_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `<html>`)
	})

	_, err := c.Login(context.Background(), models.Credentials{})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestStatusError_MessagePreference(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "error wins", body: `{"error":"e","message":"m"}`, want: "e"},
		{name: "message fallback", body: `{"message":"m"}`, want: "m"},
		{name: "status text", body: `not json`, want: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, tt.body)
			})

			err := c.DeleteProduct(context.Background(), "tok", 1)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, 500, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.NotErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestLogout_SendsBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"success":true,"code":200,"message":"bye","data":"ignored"}`)
	})

	resp, err := c.Logout(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "bye", resp.Message)
}

func TestLogout_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	resp, err := c.Logout(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestListProducts(t *testing.T) {
	t.Run("mixed id types", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/products", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, `{"success":true,"data":[{"id":1,"name":"A","description":"a","price":2.5},{"id":"2","name":"B","description":"b","price":"3"}]}`)
		})

		items, err := c.ListProducts(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, json.RawMessage(`1`), items[0].ID)
		assert.Equal(t, json.RawMessage(`"2"`), items[1].ID)
		assert.Equal(t, models.Price(3), items[1].Price)
	})

	t.Run("non-array data is empty", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"items":[]}}`)
		})

		items, err := c.ListProducts(context.Background(), "tok")
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{}`)
		})

		_, err := c.ListProducts(context.Background(), "tok")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("returns server record", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.JSONEq(t, `{"name":"Aspirin","description":"Pain","price":10.00}`, string(body))
			writeJSON(w, http.StatusCreated, `{"success":true,"code":201,"data":{"id":"7","name":"Aspirin","description":"Pain","price":10}}`)
		})

		p, err := c.CreateProduct(context.Background(), "tok", models.ProductDraft{Name: "Aspirin", Description: "Pain", Price: 10})
		require.NoError(t, err)
		assert.Equal(t, json.RawMessage(`"7"`), p.ID)
		assert.Equal(t, "Aspirin", p.Name)
	})

	t.Run("missing data", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":true}`)
		})

		_, err := c.CreateProduct(context.Background(), "tok", models.ProductDraft{Name: "A", Description: "B", Price: 1})
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestDeleteProduct_Path(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/products/42", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})

	require.NoError(t, c.DeleteProduct(context.Background(), "tok", 42))
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewRESTClient(url, time.Second)

	_, err := c.ListProducts(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUnavailable)

	err = c.DeleteProduct(context.Background(), "tok", 1)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestErrorMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", ErrorMessage(errors.New("boom")))
}
