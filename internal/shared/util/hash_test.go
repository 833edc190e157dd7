package util

import (
	"strings"
	"testing"
)

func TestContentETag(t *testing.T) {
	body := []byte("%PDF-1.4 sample report")
	got := ContentETag(body)
	if got != ContentETag(body) {
		t.Fatalf("expected stable etag, got %s", got)
	}
	if !strings.HasPrefix(got, `"`) || !strings.HasSuffix(got, `"`) {
		t.Fatalf("expected quoted etag, got %s", got)
	}
	inner := strings.Trim(got, `"`)
	if len(inner) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(inner))
	}
	for _, ch := range inner {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("etag contains non-hex character: %c", ch)
		}
	}
	if ContentETag([]byte("other")) == got {
		t.Fatalf("expected different bodies to hash differently")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: " resume final.pdf ", want: "resume final.pdf"},
		{in: "a/b\\c.pdf", want: "a_b_c.pdf"},
		{in: "../../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
