package gmaps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL       = "https://maps.googleapis.com"
	DefaultValidationURL = "https://addressvalidation.googleapis.com"
)

var (
	ErrQuotaExceeded = errors.New("maps quota exceeded")
	ErrRequestDenied = errors.New("maps request denied")
	ErrZeroResults   = errors.New("maps returned zero results")
	ErrNoRoute       = errors.New("no driving route")
	ErrPayloadTooBig = errors.New("payload too large")
)

type Options struct {
	BaseURL        string
	ValidationURL  string
	Timeout        time.Duration
	RetryMax       int
	RequestsPerSec float64
}

type Client struct {
	key           string
	baseURL       string
	validationURL string
	http          *retryablehttp.Client
	limiter       *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return NewClientWithOptions(apiKey, Options{})
}

func NewClientWithOptions(apiKey string, o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.ValidationURL == "" {
		o.ValidationURL = DefaultValidationURL
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	if o.RetryMax < 0 {
		o.RetryMax = 0
	}
	if o.RequestsPerSec <= 0 {
		o.RequestsPerSec = 10
	}

	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = o.RetryMax
	rc.HTTPClient.Timeout = o.Timeout
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		key:           apiKey,
		baseURL:       strings.TrimRight(o.BaseURL, "/"),
		validationURL: strings.TrimRight(o.ValidationURL, "/"),
		http:          rc,
		limiter:       rate.NewLimiter(rate.Limit(o.RequestsPerSec), 1),
	}
}

// Geocode looks up a free-text address.
// Docs: GET /maps/api/geocode/json?address=...
func (c *Client) Geocode(ctx context.Context, address string) ([]byte, error) {
	q := url.Values{}
	q.Set("address", address)
	return c.get(ctx, "/maps/api/geocode/json", q)
}

// ReverseGeocode maps a point to the nearest addresses.
// Docs: GET /maps/api/geocode/json?latlng=lat,lng
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) ([]byte, error) {
	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%.6f,%.6f", lat, lng))
	return c.get(ctx, "/maps/api/geocode/json", q)
}

// DistanceMatrix requests a single origin/destination driving element.
// origin and destination are "lat,lng" or "place_id:..." strings.
func (c *Client) DistanceMatrix(ctx context.Context, origin, destination string) ([]byte, error) {
	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("mode", "driving")
	q.Set("units", "metric")
	return c.get(ctx, "/maps/api/distancematrix/json", q)
}

// Elevations samples elevation for up to a few hundred points in one call.
func (c *Client) Elevations(ctx context.Context, points [][2]float64) ([]byte, error) {
	locs := make([]string, 0, len(points))
	for _, p := range points {
		locs = append(locs, fmt.Sprintf("%.6f,%.6f", p[0], p[1]))
	}
	q := url.Values{}
	q.Set("locations", strings.Join(locs, "|"))
	return c.get(ctx, "/maps/api/elevation/json", q)
}

// ValidateAddress calls the Address Validation API.
// Docs: POST /v1:validateAddress
func (c *Client) ValidateAddress(ctx context.Context, address string) ([]byte, error) {
	body, _ := json.Marshal(map[string]any{
		"address": map[string]any{"addressLines": []string{address}},
	})
	u := fmt.Sprintf("%s/v1:validateAddress?key=%s", c.validationURL, url.QueryEscape(c.key))
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	q.Set("key", c.key)
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, q.Encode())
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *retryablehttp.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrQuotaExceeded
	}
	if resp.StatusCode >= 400 {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("maps error %d: %v", resp.StatusCode, body)
	}
	return ioReadAllLimit(resp.Body, 4<<20) // 4MB guard
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, ErrPayloadTooBig
	}
	return b, nil
}

// statusError turns a Maps web-service status into an error; OK yields nil.
func statusError(status, message string) error {
	switch status {
	case "OK", "":
		return nil
	case "ZERO_RESULTS":
		return ErrZeroResults
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return ErrQuotaExceeded
	case "REQUEST_DENIED":
		if message != "" {
			return fmt.Errorf("%w: %s", ErrRequestDenied, message)
		}
		return ErrRequestDenied
	default:
		if message != "" {
			return fmt.Errorf("maps status %s: %s", status, message)
		}
		return fmt.Errorf("maps status %s", status)
	}
}
