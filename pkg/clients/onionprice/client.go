package onionprice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/onionprice/internal/domain/models"
)

// ErrNotFound is returned by Delete when the index is outside the history.
var ErrNotFound = errors.New("history entry not found")

// Client exposes the onionprice HTTP API.
type Client interface {
	Calculate(ctx context.Context, req models.CalculationRequest) (*models.CalculationResponse, error)
	Save(ctx context.Context, result models.CalculationResult) error
	List(ctx context.Context) (*models.HistoryResponse, error)
	Delete(ctx context.Context, index int) error
	Clear(ctx context.Context) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a client for the server at baseURL.
func NewClient(baseURL string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")+"/api").
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("onionprice api error: code=%d, message=%s", e.StatusCode, e.Message)
}

// Calculate asks the server to compute a result without saving it.
func (c *APIClient) Calculate(ctx context.Context, req models.CalculationRequest) (*models.CalculationResponse, error) {
	result := new(models.CalculationResponse)
	resp, err := c.request(ctx).SetBody(req).SetResult(result).Post("calculations")
	if err := check(resp, err, "calculate"); err != nil {
		return nil, err
	}
	return result, nil
}

// Save stores a computed result.
func (c *APIClient) Save(ctx context.Context, result models.CalculationResult) error {
	resp, err := c.request(ctx).SetBody(result).Post("history")
	return check(resp, err, "save result")
}

// List returns the saved results, newest first.
func (c *APIClient) List(ctx context.Context) (*models.HistoryResponse, error) {
	result := new(models.HistoryResponse)
	resp, err := c.request(ctx).SetResult(result).Get("history")
	if err := check(resp, err, "list history"); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the entry at index of the newest-first list. Callers must have obtained
// the operator's confirmation already.
func (c *APIClient) Delete(ctx context.Context, index int) error {
	resp, err := c.request(ctx).
		SetPathParam("index", fmt.Sprint(index)).
		SetQueryParam("confirm", "true").
		Delete("history/{index}")
	if err == nil && resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	return check(resp, err, "delete history entry")
}

// Clear removes every saved result. Callers must have obtained the operator's confirmation.
func (c *APIClient) Clear(ctx context.Context) error {
	resp, err := c.request(ctx).SetQueryParam("confirm", "true").Delete("history")
	return check(resp, err, "clear history")
}

func (c *APIClient) request(ctx context.Context) *resty.Request {
	return c.httpClient.R().SetContext(ctx).SetError(new(models.ErrorResponse))
}

func check(resp *resty.Response, err error, action string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		if apiErr, ok := resp.Error().(*models.ErrorResponse); ok && apiErr != nil {
			message = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: message}
	}
	return nil
}
