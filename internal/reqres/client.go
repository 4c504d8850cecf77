package reqres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/avatardeck/internal/avatar"
)

const (
	// DefaultBaseURL is the public demo API.
	DefaultBaseURL = "https://reqres.in"
	// MaxLimit caps how many users of a page become avatars.
	MaxLimit = 3
)

var ErrMissingData = errors.New("reqres: response has no data array")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("reqres: http %d", e.Code)
	}
	return fmt.Sprintf("reqres: http %d: %s", e.Code, e.Body)
}

// User mirrors one element of the users page.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

type usersPage struct {
	Page int     `json:"page"`
	Data *[]User `json:"data"`
}

// Client reads user pages. It never writes.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchUsers issues GET /api/users?page=N and decodes the data array.
func (c *Client) FetchUsers(ctx context.Context, page int) ([]User, error) {
	reqID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", reqID), zap.Int("page", page))

	endpoint := c.baseURL + "/api/users?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("reqres: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("fetch users failed", zap.Error(err))
		return nil, fmt.Errorf("reqres: get users: %w", err)
	}
	defer resp.Body.Close()
	log.Debug("fetch users", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out usersPage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("reqres: decode users: %w", err)
	}
	if out.Data == nil {
		return nil, ErrMissingData
	}
	return *out.Data, nil
}

// FetchAvatars fetches a page and keeps the first limit users in source order.
// Limits outside 1..MaxLimit are treated as MaxLimit.
func (c *Client) FetchAvatars(ctx context.Context, page, limit int) ([]avatar.Record, error) {
	if limit < 1 || limit > MaxLimit {
		limit = MaxLimit
	}
	users, err := c.FetchUsers(ctx, page)
	if err != nil {
		return nil, err
	}
	if len(users) > limit {
		users = users[:limit]
	}
	records := make([]avatar.Record, 0, len(users))
	for _, u := range users {
		records = append(records, u.Record())
	}
	return records, nil
}

// Record maps the source field names onto an avatar record.
func (u User) Record() avatar.Record {
	return avatar.Record{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.Avatar,
	}
}
