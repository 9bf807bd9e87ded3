// Package extract parses free-form model output into a single candidate
// source file.
package extract

import (
	"errors"
	"strings"
)

// ErrEmptyCandidate indicates the model output contained no usable code.
var ErrEmptyCandidate = errors.New("empty candidate")

// Extract returns the candidate source text from raw model output.
//
// Models wrap the rewritten file in a fenced code block, surround it with
// prose, or occasionally return it bare. The first fenced block wins when
// several exist; later blocks are assumed to be explanation. Without any
// fence the entire trimmed output is the candidate.
func Extract(raw string) (string, error) {
	candidate, fenced := firstFencedBlock(raw)
	if !fenced {
		candidate = strings.TrimSpace(raw)
	}
	if candidate == "" {
		return "", ErrEmptyCandidate
	}
	return candidate, nil
}

// firstFencedBlock returns the trimmed content of the first ``` fence.
// The opening fence line may carry a language tag, which is discarded.
// An unterminated fence runs to the end of the output, since responses
// can be cut off mid-stream at the token limit.
func firstFencedBlock(raw string) (string, bool) {
	open := strings.Index(raw, "```")
	if open == -1 {
		return "", false
	}

	rest := raw[open+3:]
	nl := strings.IndexByte(rest, '\n')
	if nl == -1 {
		return "", true
	}
	body := rest[nl+1:]

	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}
