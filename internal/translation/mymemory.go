package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultMyMemoryURL is the MyMemory lookup endpoint.
const DefaultMyMemoryURL = "https://api.mymemory.translated.net/get"

// MyMemory queries the MyMemory translation memory.
type MyMemory struct {
	url    string
	email  string
	client *http.Client
}

// NewMyMemory creates a provider. A contact email raises the daily quota.
func NewMyMemory(endpoint, email string) *MyMemory {
	if endpoint == "" {
		endpoint = DefaultMyMemoryURL
	}
	return &MyMemory{
		url:    endpoint,
		email:  email,
		client: newHTTPClient(),
	}
}

func (m *MyMemory) Name() string { return ProviderMyMemory }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  json.RawMessage `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
}

// status decodes responseStatus, which is a number on success and
// sometimes a quoted string on error.
func (r myMemoryResponse) status() int {
	raw := strings.Trim(string(r.ResponseStatus), `"`)
	status, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return status
}

func (m *MyMemory) Translate(ctx context.Context, word, source, target string) Outcome {
	query := url.Values{}
	query.Set("q", word)
	query.Set("langpair", source+"|"+target)
	if m.email != "" {
		query.Set("de", m.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url+"?"+query.Encode(), nil)
	if err != nil {
		return TransportError(m.Name(), err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return TransportError(m.Name(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return TransportError(m.Name(), fmt.Errorf("status %d", resp.StatusCode))
	}

	var result myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return TransportError(m.Name(), fmt.Errorf("decode response: %w", err))
	}

	if status := result.status(); status != http.StatusOK {
		return TransportError(m.Name(), fmt.Errorf("response status %d: %s", status, result.ResponseDetails))
	}

	if strings.TrimSpace(result.ResponseData.TranslatedText) == "" {
		return NotFound(m.Name(), word)
	}
	return OK(result.ResponseData.TranslatedText)
}
