package dictionaryapi

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

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the english dictionary endpoint
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// ErrNotFound is returned when API has no entries for the word
var ErrNotFound = errors.New("word not found")

// Client implements integration with DictionaryAPI
// docs: https://dictionaryapi.dev/
type Client struct {
	baseURL string
	client  *http.Client
}

// Lookup returns the first dictionary entry for the word
func (c Client) Lookup(ctx context.Context, word string) (*WordResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(word), nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionaryapi.dev: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		log.Error().
			Str("status", resp.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from dictionaryapi")
		return nil, fmt.Errorf("unsuccessful API response %v", resp.StatusCode)
	}
	// anything but an array means "no entries"
	if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		return nil, ErrNotFound
	}
	var items []WordResponse
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

// NewClient creates Client for given base URL, empty URL means DefaultBaseURL
func NewClient(baseURL string, timeout time.Duration) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}
