package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"tripcrew/internal/config"
	"tripcrew/pkg/utils"
)

const amadeusTokenPath = "/v1/security/oauth2/token"

var errMissingCredentials = errors.New("amadeus credentials not configured")

// AmadeusClient issues authenticated GETs against the Amadeus self-service API.
// A fresh token is requested for every search.
type AmadeusClient struct {
	baseURL string
	http    *http.Client
	creds   *clientcredentials.Config
}

func NewAmadeusClient(cfg config.AmadeusConfig, httpClient *http.Client) *AmadeusClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 45 * time.Second}
	}
	c := &AmadeusClient{baseURL: cfg.BaseURL, http: httpClient}
	if cfg.APIKey != "" && cfg.APISecret != "" {
		c.creds = &clientcredentials.Config{
			ClientID:     cfg.APIKey,
			ClientSecret: cfg.APISecret,
			TokenURL:     cfg.BaseURL + amadeusTokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		}
	}
	return c
}

func (c *AmadeusClient) accessToken(ctx context.Context) (string, error) {
	if c.creds == nil {
		return "", errMissingCredentials
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.creds.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("amadeus token: %w", err)
	}
	return tok.AccessToken, nil
}

// get sends one authenticated request. The caller owns the response body.
func (c *AmadeusClient) get(ctx context.Context, token, path string, q url.Values, timeout time.Duration) (*http.Response, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return resp, cancel, nil
}

// getJSON performs get and decodes a 2xx body into out.
func (c *AmadeusClient) getJSON(ctx context.Context, token, path string, q url.Values, timeout time.Duration, out any) error {
	resp, cancel, err := c.get(ctx, token, path, q, timeout)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("GET %s: %w: status %d: %s", path, utils.ErrProviderResponse, resp.StatusCode, amadeusErrorDetail(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// amadeusErrorDetail pulls errors[0].detail out of an error body, or the
// first 100 bytes when the body is not the documented shape.
func amadeusErrorDetail(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))
	var parsed struct {
		Errors []struct {
			Detail string `json:"detail"`
			Title  string `json:"title"`
		} `json:"errors"`
	}
	if json.Unmarshal(raw, &parsed) == nil && len(parsed.Errors) > 0 {
		if parsed.Errors[0].Detail != "" {
			return parsed.Errors[0].Detail
		}
		return parsed.Errors[0].Title
	}
	if len(raw) > 100 {
		raw = raw[:100]
	}
	return string(raw)
}

// parseAmount reads the decimal strings Amadeus uses for prices. Empty means 0.
func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", utils.ErrProviderResponse, s)
	}
	return v, nil
}
