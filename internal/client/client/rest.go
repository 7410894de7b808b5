package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/dmitrijs2005/pharmadesk/internal/common"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RESTClient struct {
	http *resty.Client
}

// envelope is the common wrapper of every API answer.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// NewRESTClient creates a client for the API rooted at baseURL
// (for example http://127.0.0.1:8080/api).
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetHeader("Accept", "application/json")

	c.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader(common.RequestIDHeader, uuid.NewString())
		return nil
	})

	return &RESTClient{http: c}
}

func (c *RESTClient) request(ctx context.Context, token string) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetHeader(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	return r
}

func (c *RESTClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	resp, err := c.request(ctx, "").
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post("/auth/login")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}

	var out models.AuthResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}

func (c *RESTClient) Logout(ctx context.Context, token string) (*models.AuthResponse, error) {
	resp, err := c.request(ctx, token).Post("/auth/logout")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}

	out := &models.AuthResponse{Success: true, Code: resp.StatusCode()}
	if len(resp.Body()) == 0 {
		return out, nil
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	out.Success = env.Success
	if env.Code != 0 {
		out.Code = env.Code
	}
	out.Message = env.Message
	out.Error = env.Error
	return out, nil
}

// ListProducts returns the server collection. A body without a data array
// is treated as an empty catalog.
func (c *RESTClient) ListProducts(ctx context.Context, token string) ([]RawProduct, error) {
	resp, err := c.request(ctx, token).Get("/products")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(env.Data) == 0 || env.Data[0] != '[' {
		return []RawProduct{}, nil
	}

	var items []RawProduct
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return items, nil
}

func (c *RESTClient) CreateProduct(ctx context.Context, token string, draft models.ProductDraft) (*RawProduct, error) {
	resp, err := c.request(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		Post("/products")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("%w: response without data", ErrMalformedResponse)
	}

	var p RawProduct
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &p, nil
}

func (c *RESTClient) DeleteProduct(ctx context.Context, token string, id int64) error {
	resp, err := c.request(ctx, token).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/products/{id}")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return statusError(resp)
	}
	return nil
}

// statusError builds an *APIError from a non-2xx response. The message is
// taken from the body's "error" field, then "message", then the status text.
func statusError(resp *resty.Response) error {
	msg := ""
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err == nil {
		msg = env.Error
		if msg == "" {
			msg = env.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	if msg == "" {
		msg = fmt.Sprintf("status %d", resp.StatusCode())
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}
