package gemini

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/manualdex/manualdex"
	"google.golang.org/genai"
)

// Retry policy defaults. Backoff grows strictly with the attempt number so
// total wall-clock exposure stays bounded by MaxAttempts.
const (
	defaultMaxAttempts = 4
	defaultBaseDelay   = 2 * time.Second
	defaultRetryDelay  = 1 * time.Second
)

// GenerateContentFunc is the raw model invocation signature. It is a
// struct field rather than a method call so tests can exercise the retry
// policy without a live client.
type GenerateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Ensure Generator implements manualdex.Generator at compile time.
var _ manualdex.Generator = (*Generator)(nil)

// Generator implements manualdex.Generator using Gemini, wrapping the call
// with bounded retries that distinguish transient failures (rate limiting,
// retried with increasing backoff) from content blocks (one fallback retry
// with attachments stripped to the essential ones) and terminal errors.
type Generator struct {
	model string

	// MaxAttempts bounds the total number of calls per Generate.
	MaxAttempts int

	// BaseDelay is multiplied by the attempt number for transient-failure
	// backoff.
	BaseDelay time.Duration

	// RetryDelay is the short fixed delay before retrying an
	// unclassified error on a non-final attempt.
	RetryDelay time.Duration

	// GenerateContent performs one model call. Set by NewGenerator;
	// overridable in tests.
	GenerateContent GenerateContentFunc

	// Sleep waits between attempts. Set by NewGenerator; overridable in
	// tests to avoid real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		model:       model,
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBaseDelay,
		RetryDelay:  defaultRetryDelay,
		GenerateContent: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return client.Models.GenerateContent(ctx, model, contents, config)
		},
		Sleep: sleepContext,
	}
}

// Generate produces an answer, retrying per the generator's policy. An
// exhausted retry budget surfaces as ERATELIMIT (when the last failure was
// throttling) or EUNAVAILABLE; a repeated safety refusal as EBLOCKED. It
// never reports an empty answer as success.
func (g *Generator) Generate(ctx context.Context, req manualdex.GenerateRequest) (string, error) {
	if req.Prompt == "" {
		return "", manualdex.Errorf(manualdex.EINVALID, "prompt required")
	}

	contents := buildContents(req, false)
	reduced := false

	for attempt := 1; attempt <= g.MaxAttempts; attempt++ {
		resp, err := g.GenerateContent(ctx, g.model, contents, buildConfig())

		switch {
		case err == nil:
			if text := responseText(resp); text != "" {
				return text, nil
			}
			// No usable candidate: the safety filter withheld the
			// output. Retry once with only essential attachments; a
			// degraded answer beats none.
			if !reduced && hasReducible(req.Attachments) {
				reduced = true
				contents = buildContents(req, true)
				continue
			}
			return "", manualdex.Errorf(manualdex.EBLOCKED, "response blocked: %s", blockReason(resp))

		case isTransient(err):
			if attempt == g.MaxAttempts {
				return "", manualdex.Errorf(manualdex.ERATELIMIT, "rate limited after %d attempts: %v", attempt, err)
			}
			if serr := g.Sleep(ctx, g.BaseDelay*time.Duration(attempt)); serr != nil {
				return "", serr
			}

		default:
			if attempt == g.MaxAttempts {
				return "", err
			}
			if serr := g.Sleep(ctx, g.RetryDelay); serr != nil {
				return "", serr
			}
		}
	}

	return "", manualdex.Errorf(manualdex.EUNAVAILABLE, "generation failed after %d attempts", g.MaxAttempts)
}

// buildContents assembles the request contents: prior turns first, then the
// prompt with attachment parts. When reducedOnly is set, non-essential
// attachments are dropped.
func buildContents(req manualdex.GenerateRequest, reducedOnly bool) []*genai.Content {
	var contents []*genai.Content
	for _, msg := range req.History {
		var role genai.Role = genai.RoleUser
		if msg.Role == manualdex.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, a := range req.Attachments {
		if reducedOnly && !a.Essential {
			continue
		}
		parts = append(parts, genai.NewPartFromBytes(a.Data, a.MIMEType))
	}
	return append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
}

func buildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an experienced HVAC service technician. Answer briefly and technically. When a manual is attached, ground your answer in it. For fault codes, list probable causes and fixes.",
			}},
		},
		Temperature: &temp,
	}
}

// responseText returns the first candidate's text, or "" when the response
// carries no usable answer.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	return resp.Text()
}

// blockReason describes why a response carried no candidate output.
func blockReason(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return "no response"
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return string(resp.PromptFeedback.BlockReason)
	}
	for _, cand := range resp.Candidates {
		if cand.FinishReason == genai.FinishReasonSafety {
			return string(genai.FinishReasonSafety)
		}
	}
	return "no candidates returned"
}

// isTransient reports whether an error is retryable throttling rather than
// a terminal failure.
func isTransient(err error) bool {
	if manualdex.ErrorCode(err) == manualdex.ERATELIMIT {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code == http.StatusServiceUnavailable
	}
	return false
}

// hasReducible reports whether dropping non-essential attachments would
// change the request at all.
func hasReducible(atts []manualdex.Attachment) bool {
	for _, a := range atts {
		if !a.Essential {
			return true
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
