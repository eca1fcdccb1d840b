package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Client issues authenticated GET requests against the remote inventory
// HTTP+JSON API. It holds no business-level error formatting: the exact
// diagnostic wording ("Unable to fetch parts", "Error updating category
// list", ...) is a property of the caller, since the same client method is
// reused during connect and during query execution with different wording.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient returns a Client targeting baseURL that sends every request
// through httpClient; httpClient's Timeout applies per request.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// SetToken installs a pre-issued API token, bypassing FetchToken.
func (c *Client) SetToken(token string) {
	c.token = token
}

// tokenResponse is the shape of GET /api/user/token.
type tokenResponse struct {
	Token string `json:"token"`
}

// FetchToken performs HTTP Basic auth against /api/user/token and installs
// the returned token for subsequent requests.
func (c *Client) FetchToken(ctx context.Context, username, password string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/user/token", nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(username, password)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}
	c.token = tr.Token
	return nil
}

// get issues an authenticated GET against path (optionally with a query
// string) and decodes the JSON response body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// FetchCategories retrieves the full category list.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/api/part/category/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchParts retrieves the part list, optionally filtered by category.
func (c *Client) FetchParts(ctx context.Context, categoryPK *int64) ([]Part, error) {
	var q url.Values
	if categoryPK != nil {
		q = url.Values{"category": {strconv.FormatInt(*categoryPK, 10)}}
	}
	var parts []Part
	if err := c.get(ctx, "/api/part/", q, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// FetchPart retrieves a single part by primary key.
func (c *Client) FetchPart(ctx context.Context, pk int64) (Part, error) {
	var part Part
	path := fmt.Sprintf("/api/part/%d/", pk)
	if err := c.get(ctx, path, nil, &part); err != nil {
		return nil, err
	}
	return part, nil
}

// FetchPartMetadata retrieves {"metadata": {...}} for a single part.
func (c *Client) FetchPartMetadata(ctx context.Context, pk int64) (map[string]any, error) {
	var resp struct {
		Metadata map[string]any `json:"metadata"`
	}
	path := fmt.Sprintf("/api/part/%d/metadata/", pk)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Metadata, nil
}

// FetchPartParameters retrieves the parameter list for a single part.
func (c *Client) FetchPartParameters(ctx context.Context, pk int64) ([]Parameter, error) {
	q := url.Values{"part": {strconv.FormatInt(pk, 10)}}
	var params []Parameter
	if err := c.get(ctx, "/api/part/parameter/", q, &params); err != nil {
		return nil, err
	}
	return params, nil
}
