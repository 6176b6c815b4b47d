package manualdex

import "context"

// Attachment is a binary payload included with a generation request.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte

	// Essential attachments survive the content-block fallback: when the
	// inference service refuses to answer because attached content tripped
	// a safety filter, the request is retried once with only the essential
	// attachments. A fetched manual is not essential; a live-captured
	// photo of the fault is.
	Essential bool
}

// GenerateRequest describes a single generation call.
type GenerateRequest struct {
	Prompt      string
	Attachments []Attachment
	History     []Message
}

// Generator produces an answer from a prompt, attachments, and conversation
// history.
type Generator interface {
	// Generate returns the generated answer text. It never returns an
	// empty answer as success: exhausted retries surface as EUNAVAILABLE
	// or ERATELIMIT and a safety refusal as EBLOCKED.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
