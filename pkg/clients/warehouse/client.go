package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/service/reporting"
)

// ErrNotLoggedIn is returned by calls that need a session when none exists.
var ErrNotLoggedIn = errors.New("not logged in")

// APIClient is a resty-backed client for the warehouse HTTP API.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an API client for baseURL, e.g. http://localhost:8080.
func NewClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/") + "/api").
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

// apiError mirrors the {message} body the server returns on failure.
type apiError struct {
	Message string `json:"message"`
}

// StatusError is a non-2xx API response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("warehouse api error: code=%d, message=%s", e.Code, e.Message)
}

// Login authenticates and returns a new session.
func (c *APIClient) Login(ctx context.Context, username, password string) (Session, error) {
	var result struct {
		Token    string      `json:"token"`
		Username string      `json:"username"`
		Role     models.Role `json:"role"`
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/auth/login")
	if err := checkResponse(resp, err, "login"); err != nil {
		return Session{}, err
	}

	return Session{Token: result.Token, Username: result.Username, Role: result.Role}, nil
}

// Dashboard fetches the month dashboard.
func (c *APIClient) Dashboard(ctx context.Context, s Session, period models.Period) (reporting.Dashboard, error) {
	var out reporting.Dashboard
	err := c.getReport(ctx, s, "/reports/dashboard", periodQuery(period), &out)
	return out, err
}

// WarehouseLog fetches the month labor log.
func (c *APIClient) WarehouseLog(ctx context.Context, s Session, period models.Period) (reporting.WarehouseLog, error) {
	var out reporting.WarehouseLog
	err := c.getReport(ctx, s, "/reports/warehouse", periodQuery(period), &out)
	return out, err
}

// Deliveries fetches the month delivery report for source.
func (c *APIClient) Deliveries(ctx context.Context, s Session, period models.Period, source reporting.Source) (reporting.DeliveryReport, error) {
	query := periodQuery(period)
	if source != "" {
		query["source"] = string(source)
	}

	var out reporting.DeliveryReport
	err := c.getReport(ctx, s, "/reports/deliveries", query, &out)
	return out, err
}

func (c *APIClient) getReport(ctx context.Context, s Session, path string, query map[string]string, out any) error {
	if !s.Valid() {
		return ErrNotLoggedIn
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(s.Token).
		SetQueryParams(query).
		SetResult(out).
		SetError(&apiError{}).
		Get(path)
	return checkResponse(resp, err, "get "+path)
}

func checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		message := http.StatusText(resp.StatusCode())
		if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
			message = apiErr.Message
		}
		return fmt.Errorf("%s: %w", op, &StatusError{Code: resp.StatusCode(), Message: message})
	}
	return nil
}

func periodQuery(p models.Period) map[string]string {
	return map[string]string{
		"year":  strconv.Itoa(p.Start.Year()),
		"month": strconv.Itoa(int(p.Start.Month())),
	}
}
