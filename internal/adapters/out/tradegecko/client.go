// Package tradegecko calls the TradeGecko ERP REST API.
package tradegecko

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client implements ports.TradeGeckoClient over HTTP.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

var _ ports.TradeGeckoClient = (*Client)(nil)

// StatusError is returned for a non 2xx answer that has no domain meaning.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tradegecko returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// NewClient creates a client. A nil httpClient gets a traced client bounded
// by config.Timeout.
func NewClient(config Config, httpClient *http.Client) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{baseURL: baseURL, token: config.Token, http: httpClient}, nil
}

func (c *Client) ListOrders(ctx context.Context, page ports.TradeGeckoPage) ([]ports.TradeGeckoOrder, error) {
	query := url.Values{}
	if page.Limit > 0 {
		query.Set("limit", strconv.Itoa(page.Limit))
	}
	if page.Page > 0 {
		query.Set("page", strconv.Itoa(page.Page))
	}

	var out ordersEnvelope
	if err := c.do(ctx, http.MethodGet, "/orders", query, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list tradegecko orders: %w", err)
	}

	orders := make([]ports.TradeGeckoOrder, 0, len(out.Orders))
	for _, dto := range out.Orders {
		orders = append(orders, dto.toPort())
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (ports.TradeGeckoOrder, error) {
	var out orderEnvelope
	err := c.do(ctx, http.MethodGet, orderPath(id), nil, nil, &out)
	if isNotFound(err) {
		return ports.TradeGeckoOrder{}, errs.NewObjectNotFoundError("tradeGeckoOrder", id)
	}
	if err != nil {
		return ports.TradeGeckoOrder{}, fmt.Errorf("failed to get tradegecko order %d: %w", id, err)
	}
	return out.Order.toPort(), nil
}

func (c *Client) CreateOrder(ctx context.Context, order ports.TradeGeckoOrder) (ports.TradeGeckoOrder, error) {
	var out orderEnvelope
	if err := c.do(ctx, http.MethodPost, "/orders", nil, orderEnvelope{Order: fromPort(order)}, &out); err != nil {
		return ports.TradeGeckoOrder{}, fmt.Errorf("failed to create tradegecko order: %w", err)
	}
	return out.Order.toPort(), nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, paymentStatus, fulfillmentStatus string) error {
	body := statusEnvelope{Order: statusDTO{PaymentStatus: paymentStatus, FulfillmentStatus: fulfillmentStatus}}

	err := c.do(ctx, http.MethodPut, orderPath(id), nil, body, nil)
	if isNotFound(err) {
		return errs.NewObjectNotFoundError("tradeGeckoOrder", id)
	}
	if err != nil {
		return fmt.Errorf("failed to update tradegecko order %d: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL.JoinPath(path)
	target.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func orderPath(id int64) string {
	return "/orders/" + strconv.FormatInt(id, 10)
}

func isNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
