// Package gemini provides Google Gemini implementations of the manualdex
// classification and generation interfaces.
package gemini

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/manualdex/manualdex"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured explicitly.
const DefaultModel = "gemini-2.5-flash"

// extractionPrompt instructs the model to return a small structured record
// and nothing else. The response is still parsed permissively because
// generation output is not guaranteed to be pure JSON.
const extractionPrompt = `Read the first pages of the attached technical document.
Respond with a single JSON object and nothing else, in this exact shape:
{"brand": "...", "model": "...", "doc_type": "service_manual|user_manual|spare_parts|unknown", "device_category": "..."}
Use "unknown" for any field that cannot be determined from the document.`

// Ensure Classifier implements manualdex.Classifier at compile time.
var _ manualdex.Classifier = (*Classifier)(nil)

// Classifier derives catalog entries from document content using Gemini.
type Classifier struct {
	client *genai.Client
	source manualdex.ManualSource
	model  string

	// Upload polling knobs, overridable in tests.
	pollDelay time.Duration
	maxPolls  int
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client, source manualdex.ManualSource, model string) *Classifier {
	if model == "" {
		model = DefaultModel
	}
	return &Classifier{
		client:    client,
		source:    source,
		model:     model,
		pollDelay: 500 * time.Millisecond,
		maxPolls:  60,
	}
}

// Classify fetches the document's bytes, uploads them to the Gemini Files
// API, and extracts structured metadata from the content. A response that
// cannot be parsed as JSON degrades to a free-text fallback entry.
func (c *Classifier) Classify(ctx context.Context, id, displayName string) (*manualdex.Manual, error) {
	if id == "" {
		return nil, manualdex.Errorf(manualdex.EINVALID, "manual ID required")
	}

	data, err := c.source.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	file, err := c.upload(ctx, displayName, data)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromText(extractionPrompt),
				genai.NewPartFromURI(file.URI, file.MIMEType),
			}, genai.RoleUser),
		},
		nil,
	)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, manualdex.Errorf(manualdex.EINTERNAL, "gemini returned nil result")
	}

	return &manualdex.Manual{
		ID:          id,
		DisplayName: displayName,
		Metadata:    ParseMetadata(resp.Text()),
		ContentHash: hashContent(data),
		IndexedAt:   time.Now().UTC(),
	}, nil
}

// upload sends the document bytes to the Files API and polls until the file
// leaves the processing state.
func (c *Classifier) upload(ctx context.Context, displayName string, data []byte) (*genai.File, error) {
	file, err := c.client.Files.Upload(ctx, bytes.NewReader(data), &genai.UploadFileConfig{
		DisplayName: displayName,
		MIMEType:    MIMETypeForName(displayName),
	})
	if err != nil {
		return nil, err
	}

	for polls := 0; file.State == genai.FileStateProcessing; polls++ {
		if polls >= c.maxPolls {
			return nil, manualdex.Errorf(manualdex.EUNAVAILABLE, "file %q still processing after %d polls", displayName, c.maxPolls)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollDelay):
		}
		if file, err = c.client.Files.Get(ctx, file.Name, nil); err != nil {
			return nil, err
		}
	}

	if file.State == genai.FileStateFailed {
		return nil, manualdex.Errorf(manualdex.EINTERNAL, "file %q failed remote processing", displayName)
	}
	return file, nil
}

// metadataWire is the JSON shape the extraction prompt asks for.
type metadataWire struct {
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	DocType        string `json:"doc_type"`
	DeviceCategory string `json:"device_category"`
}

// ParseMetadata extracts structured metadata from an extraction response.
// It decodes the first balanced JSON object found anywhere in the text;
// if none parses, the raw text becomes the free-text Description fallback
// so the extraction work is never discarded.
func ParseMetadata(text string) manualdex.Metadata {
	if raw, ok := firstJSONObject(text); ok {
		var wire metadataWire
		if err := json.Unmarshal([]byte(raw), &wire); err == nil {
			return manualdex.Metadata{
				Brand:          strings.TrimSpace(wire.Brand),
				Model:          strings.TrimSpace(wire.Model),
				DocType:        NormalizeDocType(wire.DocType),
				DeviceCategory: strings.TrimSpace(wire.DeviceCategory),
			}
		}
	}
	return manualdex.Metadata{
		DocType:     manualdex.DocTypeUnknown,
		Description: strings.TrimSpace(text),
	}
}

// firstJSONObject returns the first balanced {...} span in text.
func firstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// NormalizeDocType maps an extraction response's doc_type value onto the
// controlled DocType set.
func NormalizeDocType(s string) manualdex.DocType {
	switch manualdex.DocType(strings.ToLower(strings.TrimSpace(s))) {
	case manualdex.DocTypeServiceManual:
		return manualdex.DocTypeServiceManual
	case manualdex.DocTypeUserManual:
		return manualdex.DocTypeUserManual
	case manualdex.DocTypeSpareParts:
		return manualdex.DocTypeSpareParts
	default:
		return manualdex.DocTypeUnknown
	}
}

// MIMETypeForName guesses a document's MIME type from its name. The remote
// store holds scanned manuals: PDFs and photographed pages.
func MIMETypeForName(name string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(strings.ToLower(name), ".png"):
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(data []byte) string {
	h := xxhash.Sum64(data)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
