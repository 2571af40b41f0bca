// Package restcountries is a thin client for the restcountries.com v3.1 API.
package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kartografi-service/internal/domain"
)

const DefaultBaseURL = "https://restcountries.com/v3.1"

// bulkFields is the field selection for the cached bulk listing. Alternate
// spellings are deliberately absent; evaluators fetch those per country.
const bulkFields = "name,capital,languages,flags,cca3"

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client. An empty baseURL falls back to the public API and a
// zero timeout to 10s; failed requests are not retried.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// All fetches the full country dataset with the bulk field selection.
func (c *Client) All(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	if err := c.getJSON(ctx, "/all?fields="+bulkFields, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// ByLanguage fetches every country that lists the given language code.
func (c *Client) ByLanguage(ctx context.Context, code string) ([]domain.Country, error) {
	var countries []domain.Country
	if err := c.getJSON(ctx, "/lang/"+url.PathEscape(code), &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// ByCode fetches a single country by its cca3 code, restricted to the given
// fields. The API answers with either an object or a one-element array
// depending on deployment, so both shapes are accepted.
func (c *Client) ByCode(ctx context.Context, cca3 string, fields ...string) (domain.Country, error) {
	path := "/alpha/" + url.PathEscape(cca3)
	if len(fields) > 0 {
		path += "?fields=" + strings.Join(fields, ",")
	}

	var raw json.RawMessage
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return domain.Country{}, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var countries []domain.Country
		if err := json.Unmarshal(raw, &countries); err != nil {
			return domain.Country{}, fmt.Errorf("%w: decode %s: %v", domain.ErrUpstream, path, err)
		}
		if len(countries) == 0 {
			return domain.Country{}, fmt.Errorf("%w: %s returned no countries", domain.ErrUpstream, path)
		}
		return countries[0], nil
	}

	var country domain.Country
	if err := json.Unmarshal(raw, &country); err != nil {
		return domain.Country{}, fmt.Errorf("%w: decode %s: %v", domain.ErrUpstream, path, err)
	}
	return country, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request %s: %v", domain.ErrUpstream, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned %d: %s", domain.ErrUpstream, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrUpstream, path, err)
	}
	return nil
}
