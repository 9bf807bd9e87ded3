// Package prompt holds the built-in debloating prompts and resolves
// user-supplied prompt identifiers or literal prompt text.
package prompt

import (
	"errors"
	"strings"
)

// ErrUnknownPrompt indicates that no prompt identifier or literal text was
// supplied.
var ErrUnknownPrompt = errors.New("unknown prompt")

// Prompt is a named piece of prompt text sent ahead of the source code.
type Prompt struct {
	ID   string
	Text string
}

// CustomID is the identifier recorded for literal prompt text.
const CustomID = "custom"

const detailedText = `Goal
You are an experienced software engineer. Please debloat the code in this file while maintaining its functional correctness. Simplify logic, remove redundancies, and optimize for readability and maintainability without introducing new bugs.

IMPORTANT
1. All rewritten code must remain within the file it originated from.
2. No new files or services may be introduced as part of the solution.
3. Adding helper methods within the file is allowed but must not break functional correctness.
4. Do not modify OR remove comments, as they do not count as code. Imports also do not count as code.

Context
Software bloat refers to unnecessary or inefficient code that increases a program's size or reduces its performance without contributing meaningful functionality.`

const minimalText = `Debloat this file while maintaining functional correctness.`

// builtins maps every recognized identifier to its prompt. The numeric
// identifiers are kept for compatibility with older batch manifests.
var builtins = map[string]Prompt{
	"1":        {ID: "1", Text: detailedText},
	"detailed": {ID: "1", Text: detailedText},
	"2":        {ID: "2", Text: minimalText},
	"minimal":  {ID: "2", Text: minimalText},
}

// Resolve maps an identifier to its built-in prompt. Anything that is not a
// recognized identifier is treated as literal prompt text and used verbatim.
// Only an empty input fails: the caller must supply one or the other.
func Resolve(idOrText string) (Prompt, error) {
	if strings.TrimSpace(idOrText) == "" {
		return Prompt{}, ErrUnknownPrompt
	}
	if p, ok := builtins[idOrText]; ok {
		return p, nil
	}
	return Prompt{ID: CustomID, Text: idOrText}, nil
}

// Builtin returns the built-in prompts in a stable order for listing.
func Builtin() []Prompt {
	return []Prompt{
		{ID: "1", Text: detailedText},
		{ID: "2", Text: minimalText},
	}
}
