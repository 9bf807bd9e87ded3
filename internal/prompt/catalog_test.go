package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantID  string
		wantErr bool
		literal bool
	}{
		{name: "numeric detailed", in: "1", wantID: "1"},
		{name: "numeric minimal", in: "2", wantID: "2"},
		{name: "alias detailed", in: "detailed", wantID: "1"},
		{name: "alias minimal", in: "minimal", wantID: "2"},
		{name: "literal text", in: "Remove all dead code from this file.", wantID: CustomID, literal: true},
		{name: "unknown id becomes literal", in: "3", wantID: CustomID, literal: true},
		{name: "empty fails", in: "", wantErr: true},
		{name: "whitespace fails", in: "   \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPrompt) {
					t.Fatalf("Resolve(%q) error = %v, want ErrUnknownPrompt", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.in, err)
			}
			if p.ID != tt.wantID {
				t.Errorf("Resolve(%q).ID = %q, want %q", tt.in, p.ID, tt.wantID)
			}
			if tt.literal && p.Text != tt.in {
				t.Errorf("literal prompt text = %q, want verbatim %q", p.Text, tt.in)
			}
			if !tt.literal && p.Text == "" {
				t.Errorf("builtin prompt %q has empty text", tt.wantID)
			}
		})
	}
}

func TestAliasesShareText(t *testing.T) {
	byID, _ := Resolve("1")
	byAlias, _ := Resolve("detailed")
	if byID.Text != byAlias.Text {
		t.Error("alias and numeric id resolved to different text")
	}
}

func TestBuiltinListing(t *testing.T) {
	prompts := Builtin()
	if len(prompts) != 2 {
		t.Fatalf("Builtin() returned %d prompts, want 2", len(prompts))
	}
	if prompts[0].ID != "1" || prompts[1].ID != "2" {
		t.Errorf("Builtin() order = %s, %s; want 1, 2", prompts[0].ID, prompts[1].ID)
	}
	if len(prompts[0].Text) <= len(prompts[1].Text) {
		t.Error("detailed prompt should be longer than minimal prompt")
	}
	if !strings.Contains(prompts[0].Text, "functional correctness") {
		t.Error("detailed prompt missing correctness constraint")
	}
}
