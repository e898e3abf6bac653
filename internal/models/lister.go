package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister lists the OpenAI models usable for translation and tagging
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// NewListerWithConfig creates a lister against a custom endpoint
func NewListerWithConfig(config openai.ClientConfig, apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// ChatModels returns the sorted IDs of the chat completion models
func (l *Lister) ChatModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .palabras.yaml")
	}

	list, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var chat []string
	for _, model := range list.Models {
		id := model.ID
		// Audio, realtime and search variants cannot answer plain chat prompts
		if strings.Contains(id, "audio") || strings.Contains(id, "realtime") ||
			strings.Contains(id, "tts") || strings.Contains(id, "search") {
			continue
		}
		if strings.HasPrefix(id, "gpt") || strings.HasPrefix(id, "o1") ||
			strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4") || strings.Contains(id, "chat") {
			chat = append(chat, id)
		}
	}

	sort.Strings(chat)
	return chat, nil
}

// ListAvailableModels prints the chat models to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	chat, err := l.ChatModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Chat models (for --openai-model, used by the openai translator and tagger):")
	if len(chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, id := range chat {
		fmt.Fprintf(w, "  %s\n", id)
	}
	return nil
}
