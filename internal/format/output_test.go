package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWrite_Envelope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, []string{"a"}, nil, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"data\":[\"a\"]}\n" {
		t.Fatalf("unexpected output %q", got)
	}

	buf.Reset()
	if err := Write(&buf, map[string]int{"x": 1}, map[string]int{"count": 1}, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"meta\": {\n    \"count\": 1\n  }") {
		t.Fatalf("expected indented meta, got:\n%s", buf.String())
	}
}
