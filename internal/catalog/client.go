// Package catalog talks to the external catalog service and
// normalizes its records into the internal product shape.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cenkalti/backoff/v4"

	"github.com/raditya/storefront/internal/domain"
)

// ErrNotFound marks a product id unknown to the catalog. Callers
// render a fallback instead of treating it as a transport failure.
var ErrNotFound = errors.New("product not found")

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
}

type Option func(*Client)

// WithMaxRetries overrides how many times transient fetch failures
// are retried before surfacing the error.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

func NewClient(baseURL string, httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		maxRetries: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type productsResponse struct {
	Products []rawProduct `json:"products"`
}

// FetchProducts returns up to limit products. Transient failures
// (network errors, 5xx) are retried with exponential backoff under
// ctx; the last error is returned wrapped, never swallowed.
func (c *Client) FetchProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	url := c.baseURL + "/products"
	if limit > 0 {
		url += "?limit=" + strconv.Itoa(limit)
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	var resp productsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	products := make([]domain.Product, 0, len(resp.Products))
	for _, raw := range resp.Products {
		products = append(products, Convert(raw))
	}
	return products, nil
}

// FetchProduct returns the product for id, or ErrNotFound when the
// catalog has no such id.
func (c *Client) FetchProduct(ctx context.Context, id string) (domain.Product, error) {
	body, err := c.get(ctx, c.baseURL+"/products/"+id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Product{}, ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("fetch product %s: %w", id, err)
	}

	var raw rawProduct
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.Product{}, fmt.Errorf("decode product response: %w", err)
	}
	return Convert(raw), nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case resp.StatusCode >= 500:
			return fmt.Errorf("catalog returned status %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("catalog returned status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return nil, err
	}
	return body, nil
}
