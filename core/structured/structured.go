// Package structured implements the prompt contract for machine-readable
// agent output: the provider is instructed to wrap structured data in a
// fenced block labeled json, and the parser here extracts and decodes the
// first such block. Absence or malformed content is a recoverable
// FormatError, never a panic.
package structured

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	openFence  = "```json"
	closeFence = "```"
)

// ErrNoBlock indicates the response contained no fenced json block.
var ErrNoBlock = errors.New("no structured block in response")

// FormatError is the typed failure payload for structured extraction. Its
// Payload field carries the canonical error shape expected by hosts.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response format: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid response format: %s", e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Payload returns the error as the wire shape hosts render to users.
func (e *FormatError) Payload() map[string]string {
	return map[string]string{"error": "invalid response format"}
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// Instruction returns the prompt suffix that requests a fenced json block
// containing the described shape. Appended verbatim to extraction prompts.
func Instruction(shape string) string {
	return fmt.Sprintf("Réponds uniquement avec un bloc %s contenant %s, fermé par %s.",
		openFence, shape, closeFence)
}

// ExtractBlock returns the contents of the first fenced json block in text.
// The scan tolerates leading prose and trailing commentary around the fence.
func ExtractBlock(text string) (string, error) {
	start := strings.Index(text, openFence)
	if start == -1 {
		return "", &FormatError{Reason: "missing fence", Err: ErrNoBlock}
	}

	rest := text[start+len(openFence):]
	end := strings.Index(rest, closeFence)
	if end == -1 {
		return "", &FormatError{Reason: "unterminated fence", Err: ErrNoBlock}
	}

	block := strings.TrimSpace(rest[:end])
	if block == "" {
		return "", &FormatError{Reason: "empty block", Err: ErrNoBlock}
	}
	return block, nil
}

// Decode extracts the first fenced json block from text and unmarshals it
// into T. Parse failures are returned as a FormatError so callers can treat
// provider and format failures uniformly.
func Decode[T any](text string) (T, error) {
	var out T

	block, err := ExtractBlock(text)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal([]byte(block), &out); err != nil {
		return out, &FormatError{Reason: "malformed json", Err: err}
	}
	return out, nil
}

// Serialize renders v as indented JSON for embedding in a prompt section.
// Marshal failures degrade to a placeholder rather than aborting the prompt.
func Serialize(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "(données indisponibles)"
	}
	return string(data)
}
