// Package models lists the OpenAI chat models available to the configured
// API key, so a model can be picked for the openai translator and tagger.
package models
