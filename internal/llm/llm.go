// Package llm runs an optional first pass over OCR text: a chat model is asked
// to pull out the verses verbatim, chunk by chunk, before the rule-based
// pipeline cleans its answer. The model is any langchaingo llms.Model.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/gptpoet/qasida/internal/config"
)

const systemPrompt = `You are a poetry expert. Extract only the poetic lines from the given text. Do not translate or change any of them, just extract what you think is poetry.`

const userPrefix = "Extract only the poetry from the following text:\n\n"

// ErrEmptyResponse is returned when the model answers with no choices.
var ErrEmptyResponse = errors.New("llm: empty response")

// Extractor sends text to a chat model in chunks.
type Extractor struct {
	model     llms.Model
	maxTokens int
	chunkSize int
}

// New wraps model. chunkSize is in characters.
func New(model llms.Model, maxTokens, chunkSize int) *Extractor {
	return &Extractor{model: model, maxTokens: maxTokens, chunkSize: chunkSize}
}

// NewOpenAI builds an Extractor on an OpenAI-compatible endpoint.
func NewOpenAI(cfg config.LLMCfg) (*Extractor, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: client: %w", err)
	}
	return New(model, cfg.MaxTokens, cfg.ChunkSize), nil
}

// Extract returns the model's answers for every chunk of text, joined by a
// blank line. Chunks that fail are logged and skipped; an error is returned
// only when every chunk failed.
func (e *Extractor) Extract(ctx context.Context, text string) (string, error) {
	chunks := SplitText(text, e.chunkSize)
	var (
		out     []string
		lastErr error
		failed  int
	)
	for i, chunk := range chunks {
		slog.Info("llm: processing chunk", "chunk", i+1, "of", len(chunks))
		answer, err := e.extractChunk(ctx, chunk)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			slog.Warn("llm: chunk failed", "chunk", i+1, "err", err)
			lastErr = err
			failed++
			continue
		}
		if answer != "" {
			out = append(out, answer)
		}
	}
	if len(chunks) > 0 && failed == len(chunks) {
		return "", lastErr
	}
	return strings.Join(out, "\n\n"), nil
}

func (e *Extractor) extractChunk(ctx context.Context, chunk string) (string, error) {
	var opts []llms.CallOption
	if e.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(e.maxTokens))
	}
	resp, err := e.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrefix+chunk),
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("llm: generate: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// SplitText packs whitespace-separated words into chunks of at most size
// characters, joined by single spaces. A word longer than size gets a chunk
// of its own.
func SplitText(text string, size int) []string {
	var (
		chunks []string
		cur    []string
		curLen int
	)
	for _, w := range strings.Fields(text) {
		n := utf8.RuneCountInString(w)
		if curLen+n+1 > size {
			if len(cur) > 0 {
				chunks = append(chunks, strings.Join(cur, " "))
			}
			cur = []string{w}
			curLen = n
			continue
		}
		cur = append(cur, w)
		curLen += n + 1
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, " "))
	}
	return chunks
}
