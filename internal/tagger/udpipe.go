package tagger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultUDPipeURL   = "https://lindat.mff.cuni.cz/services/udpipe/api/process"
	DefaultUDPipeModel = "spanish"
	udpipeTimeout      = 30 * time.Second
)

// UDPipe tags words with a UDPipe REST service.
type UDPipe struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

type udpipeResponse struct {
	Model  string `json:"model"`
	Result string `json:"result"`
}

// NewUDPipe creates a UDPipe client. Empty arguments select the defaults.
func NewUDPipe(endpoint, model string) *UDPipe {
	if endpoint == "" {
		endpoint = DefaultUDPipeURL
	}
	if model == "" {
		model = DefaultUDPipeModel
	}
	return &UDPipe{
		endpoint: endpoint,
		model:    model,
		httpClient: &http.Client{
			Timeout: udpipeTimeout,
		},
	}
}

// Name returns the tagger name
func (u *UDPipe) Name() string {
	return "udpipe"
}

// Analyze tokenizes and tags word
func (u *UDPipe) Analyze(ctx context.Context, word string) ([]Token, error) {
	form := url.Values{}
	form.Set("model", u.model)
	form.Set("tokenizer", "")
	form.Set("tagger", "")
	form.Set("data", word)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("udpipe: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: udpipe request: %v", ErrTagger, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: udpipe read body: %v", ErrTagger, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: udpipe status %d: %s", ErrTagger, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed udpipeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: udpipe decode json: %v", ErrTagger, err)
	}

	tokens, err := ParseCoNLLU(strings.NewReader(parsed.Result))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTagger, err)
	}
	return tokens, nil
}
