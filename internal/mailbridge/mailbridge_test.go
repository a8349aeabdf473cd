package mailbridge

import (
	"context"
	"testing"
	"time"
)

func TestNew_DefaultTimeout(t *testing.T) {
	if got := New(0).timeout; got != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", got)
	}
	if got := New(-time.Second).timeout; got != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", got)
	}
	if got := New(5 * time.Second).timeout; got != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", got)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"12345", true},
		{"0", true},
		{"", false},
		{"12a45", false},
		{"-1", false},
		{"1; delete every message", false},
		{`123" & (do shell script "true") & "`, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := validID(tt.input); got != tt.want {
				t.Errorf("validID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBridge_RejectsNonNumericID(t *testing.T) {
	b := New(time.Second)
	ctx := context.Background()

	id := `123" & (do shell script "true") & "`
	if b.MarkRead(ctx, id) {
		t.Error("MarkRead must refuse a non-numeric id")
	}
	if b.MarkReadAndMove(ctx, id, "EECC") {
		t.Error("MarkReadAndMove must refuse a non-numeric id")
	}
	if b.Flag(ctx, id, FlagRed) {
		t.Error("Flag must refuse a non-numeric id")
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"EECC", "EECC"},
		{`Folder "A"`, `Folder \"A\"`},
		{`back\slash`, `back\\slash`},
		{`both \"`, `both \\\"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escape(tt.input); got != tt.want {
				t.Errorf("escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
