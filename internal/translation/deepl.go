package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	deepLFreeURL = "https://api-free.deepl.com/v2/translate"
	deepLProURL  = "https://api.deepl.com/v2/translate"
)

// DeepL calls the DeepL v2 translate endpoint.
type DeepL struct {
	authKey string
	url     string
	client  *http.Client
}

// NewDeepL creates a DeepL provider. An empty endpoint selects the free or
// pro API from the key suffix.
func NewDeepL(authKey, endpoint string) *DeepL {
	if endpoint == "" {
		endpoint = deepLProURL
		if strings.HasSuffix(authKey, ":fx") {
			endpoint = deepLFreeURL
		}
	}
	return &DeepL{
		authKey: authKey,
		url:     endpoint,
		client:  newHTTPClient(),
	}
}

func (d *DeepL) Name() string { return ProviderDeepL }

type deepLResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// Translate sends one word and returns the first translation.
func (d *DeepL) Translate(ctx context.Context, word, source, target string) Outcome {
	form := url.Values{}
	form.Set("text", word)
	form.Set("source_lang", deepLLanguage(source, false))
	form.Set("target_lang", deepLLanguage(target, true))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, strings.NewReader(form.Encode()))
	if err != nil {
		return TransportError(d.Name(), err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.authKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return TransportError(d.Name(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return TransportError(d.Name(), fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var result deepLResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return TransportError(d.Name(), fmt.Errorf("decode response: %w", err))
	}

	if len(result.Translations) == 0 || strings.TrimSpace(result.Translations[0].Text) == "" {
		return NotFound(d.Name(), word)
	}

	return OK(result.Translations[0].Text)
}

// deepLLanguage maps a two letter code to DeepL's codes. English targets
// must name a variant.
func deepLLanguage(code string, target bool) string {
	code = strings.ToUpper(code)
	if target && code == "EN" {
		return "EN-US"
	}
	return code
}
