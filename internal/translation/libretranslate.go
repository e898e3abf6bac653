package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultLibreTranslateURL is the public LibreTranslate instance.
const DefaultLibreTranslateURL = "https://libretranslate.com"

// libreAlternatives is how many extra candidates are requested per word.
const libreAlternatives = 3

// LibreTranslate calls a LibreTranslate server.
type LibreTranslate struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewLibreTranslate creates a provider for the server at baseURL.
func NewLibreTranslate(baseURL, apiKey string) *LibreTranslate {
	if baseURL == "" {
		baseURL = DefaultLibreTranslateURL
	}
	return &LibreTranslate{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  newHTTPClient(),
	}
}

func (l *LibreTranslate) Name() string { return ProviderLibreTranslate }

type libreRequest struct {
	Q            string `json:"q"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	Format       string `json:"format"`
	Alternatives int    `json:"alternatives,omitempty"`
	APIKey       string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string   `json:"translatedText"`
	Alternatives   []string `json:"alternatives"`
	Error          string   `json:"error"`
}

func (l *LibreTranslate) Translate(ctx context.Context, word, source, target string) Outcome {
	payload, err := json.Marshal(libreRequest{
		Q:            word,
		Source:       source,
		Target:       target,
		Format:       "text",
		Alternatives: libreAlternatives,
		APIKey:       l.apiKey,
	})
	if err != nil {
		return TransportError(l.Name(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return TransportError(l.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return TransportError(l.Name(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result libreResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode != http.StatusOK {
		msg := result.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return TransportError(l.Name(), fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}
	if decodeErr != nil {
		return TransportError(l.Name(), fmt.Errorf("decode response: %w", decodeErr))
	}

	if strings.TrimSpace(result.TranslatedText) == "" {
		return NotFound(l.Name(), word)
	}
	// Servers without alternatives support leave the list empty
	return OK(append([]string{result.TranslatedText}, result.Alternatives...)...)
}
