package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestBarGrowsCeilingOnOverrun(t *testing.T) {
	var out bytes.Buffer
	b := New(&out)

	b.Start(1000)
	if err := b.Update(500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Total() != 1000 {
		t.Fatalf("expected total 1000, got %d", b.Total())
	}

	if err := b.Update(2500); err != nil {
		t.Fatalf("overrun must not fail: %v", err)
	}
	if b.Total() != 2501 {
		t.Fatalf("expected ceiling to grow to 2501, got %d", b.Total())
	}

	// A second overrun keeps growing from the new ceiling.
	if err := b.Update(4000); err != nil {
		t.Fatalf("overrun must not fail: %v", err)
	}
	if b.Total() != 4001 {
		t.Fatalf("expected ceiling to grow to 4001, got %d", b.Total())
	}
	b.Finish()

	s := out.String()
	if !strings.Contains(s, "downloading") {
		t.Fatalf("expected the bar to be rendered, got %q", s)
	}
	if !strings.HasSuffix(s, "\n") {
		t.Fatalf("expected the final frame to end the line, got %q", s)
	}
}

func TestBarIgnoresUpdatesBeforeStart(t *testing.T) {
	var out bytes.Buffer
	b := New(&out)

	if err := b.Update(10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Finish()
	if b.Total() != 0 || out.Len() != 0 {
		t.Fatalf("expected nothing rendered, got total %d and %q", b.Total(), out.String())
	}
}
