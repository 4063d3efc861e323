// Package shopclient типизированный клиент HTTP API LlantaBox. Базовый URL
// берётся из config.ResolvedClient; вызовы ограничены его таймаутом и не
// повторяются.
package shopclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/BearBump/LlantaBox/config"
	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/pkg/errors"
)

var (
	ErrTimeout = errors.New("shop api request timed out")
	ErrNotJSON = errors.New("shop api response is not json")
)

// APIError ответ API с кодом не 2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("shop api http %d", e.StatusCode)
	}
	return fmt.Sprintf("shop api http %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(cfg config.ResolvedClient) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, config.ErrBaseURLRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

type Health struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Count   int    `json:"count"`
	Data    T      `json:"data"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

func (c *Client) ListTires(ctx context.Context, f models.TireFilter) ([]*models.Tire, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Brand != "" {
		q.Set("brand", f.Brand)
	}
	if f.Size != "" {
		q.Set("size", f.Size)
	}
	var out envelope[[]*models.Tire]
	if err := c.do(ctx, http.MethodGet, "/api/tires", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetTire(ctx context.Context, id string) (*models.Tire, error) {
	var out envelope[*models.Tire]
	if err := c.do(ctx, http.MethodGet, "/api/tires/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out envelope[[]string]
	if err := c.do(ctx, http.MethodGet, "/api/tires/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Brands(ctx context.Context) ([]string, error) {
	var out envelope[[]string]
	if err := c.do(ctx, http.MethodGet, "/api/tires/brands", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

type contactBody struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Message string  `json:"message"`
}

func (c *Client) SubmitContact(ctx context.Context, in models.ContactInput) (*models.ContactReceipt, error) {
	body := contactBody{Name: in.Name, Email: in.Email, Phone: in.Phone, Message: in.Message}
	var out envelope[*models.ContactReceipt]
	if err := c.do(ctx, http.MethodPost, "/api/contact", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Subscribe возвращает квитанцию и сообщение сервера; по сообщению
// различаются исходы подписки.
func (c *Client) Subscribe(ctx context.Context, email string) (*models.SubscriptionReceipt, string, error) {
	var out envelope[*models.SubscriptionReceipt]
	if err := c.do(ctx, http.MethodPost, "/api/newsletter/subscribe", nil, map[string]string{"email": email}, &out); err != nil {
		return nil, "", err
	}
	return out.Data, out.Message, nil
}

func (c *Client) Unsubscribe(ctx context.Context, email string) error {
	var out envelope[json.RawMessage]
	return c.do(ctx, http.MethodPost, "/api/newsletter/unsubscribe", nil, map[string]string{"email": email}, &out)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return errors.Wrapf(ErrTimeout, "%s %s", method, path)
		}
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	mt, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	isJSON := mt == "application/json"

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if isJSON {
			var e struct {
				Error string `json:"error"`
			}
			if json.NewDecoder(resp.Body).Decode(&e) == nil {
				apiErr.Message = e.Error
			}
		}
		return apiErr
	}
	if !isJSON {
		return errors.Wrapf(ErrNotJSON, "%s %s: content-type %q", method, path, resp.Header.Get("Content-Type"))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode")
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
