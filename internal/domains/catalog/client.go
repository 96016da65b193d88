package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"library-backend/internal/config"
)

// Document is the raw response of the Open Library books API: a mapping
// from bib keys ("ISBN:<isbn>") to not-yet-decoded records. An ISBN with
// no record yields an empty document, not an HTTP error.
type Document map[string]json.RawMessage

// Client fetches bibliographic documents from the external catalog.
type Client interface {
	FetchByISBN(ctx context.Context, isbn string) (Document, error)
}

type httpClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewHTTPClient(cfg config.OpenLibraryConfig) Client {
	return &httpClient{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchByISBN issues a single synchronous request using the "data" command
// format. No retries: a failure here is terminal for the request.
func (c *httpClient) FetchByISBN(ctx context.Context, isbn string) (Document, error) {
	u := fmt.Sprintf("%s/api/books?bibkeys=%s&format=json&jscmd=data",
		c.baseURL, url.QueryEscape("ISBN:"+isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog response decode failed: %w", err)
	}
	return doc, nil
}
