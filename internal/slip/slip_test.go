package slip

import (
	"bytes"
	"testing"
	"time"
)

func TestPDF_HasHeader(t *testing.T) {
	b, err := PDF(Info{
		Tenant:     "dropshipping",
		Code:       "AbCd1234",
		PlayerName: "Amélie",
		Line:       12,
		Total:      40,
		SavedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("output is not a PDF (missing %PDF header)")
	}
	if len(b) < 500 {
		t.Errorf("PDF too short: %d bytes", len(b))
	}
}

func TestPDF_MinimalInfo(t *testing.T) {
	b, err := PDF(Info{Code: "AbCd1234"})
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestPDF_RequiresCode(t *testing.T) {
	if _, err := PDF(Info{Tenant: "x"}); err == nil {
		t.Error("Expected error for missing code")
	}
}

func TestFilenames(t *testing.T) {
	if got := Filename("dropshipping"); got != "save_dropshipping.txt" {
		t.Errorf("Expected save_dropshipping.txt, got %q", got)
	}
	if got := PDFFilename("a/b c"); got != "save_a_b_c.pdf" {
		t.Errorf("Expected sanitized name, got %q", got)
	}
	if got := Filename(""); got != "save_game.txt" {
		t.Errorf("Expected fallback name, got %q", got)
	}
}

func TestText(t *testing.T) {
	if got := string(Text("AbCd1234")); got != "AbCd1234" {
		t.Errorf("Expected code only, got %q", got)
	}
}

func TestNotchedRect(t *testing.T) {
	pts := notchedRect(0, 0, 100, 50, 10)
	if len(pts) != 28 {
		t.Fatalf("Expected 28 points, got %d", len(pts))
	}
	for _, p := range pts {
		if p.X < -0.001 || p.X > 100.001 || p.Y < -0.001 || p.Y > 50.001 {
			t.Errorf("Point %+v outside the card", p)
		}
	}
}
