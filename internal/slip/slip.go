// Package slip renders a save code as a downloadable keepsake: a printable
// PDF card or the plain-text file the player client offers.
package slip

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pageW     = 420
	pageH     = 260
	margin    = 24
	titleSize = 18
	codeSize  = 30
	bodySize  = 10
	noteSize  = 7
)

// Info is what a slip shows.
type Info struct {
	Tenant     string
	Code       string
	PlayerName string
	Line       int
	// Total is the scenario length; zero hides the progress bar.
	Total   int
	SavedAt time.Time
}

// Filename is the download name of the text slip for a tenant.
func Filename(tenant string) string {
	return "save_" + sanitize(tenant) + ".txt"
}

// PDFFilename is the download name of the PDF slip for a tenant.
func PDFFilename(tenant string) string {
	return "save_" + sanitize(tenant) + ".pdf"
}

// Text returns the text slip contents: the code alone.
func Text(code string) []byte {
	return []byte(code)
}

// PDF renders a wide card with the code in large type.
func PDF(info Info) ([]byte, error) {
	if info.Code == "" {
		return nil, fmt.Errorf("save code is required")
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Save slip "+info.Code, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFillColor(250, 246, 236)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawTicketEdge(pdf)

	pdf.SetTextColor(60, 40, 30)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+8, margin+10)
	pdf.CellFormat(pageW-2*margin-16, 20, "Save Slip", "", 0, "L", false, 0, "")

	if info.Tenant != "" {
		pdf.SetFont("Helvetica", "", bodySize)
		pdf.SetXY(margin+8, margin+10)
		pdf.CellFormat(pageW-2*margin-16, 20, tr(info.Tenant), "", 0, "R", false, 0, "")
	}

	pdf.SetFont("Courier", "B", codeSize)
	pdf.SetTextColor(150, 30, 40)
	pdf.SetXY(margin, pageH/2-30)
	pdf.CellFormat(pageW-2*margin, 36, spaced(info.Code), "", 0, "C", false, 0, "")

	pdf.SetTextColor(60, 40, 30)
	pdf.SetFont("Helvetica", "", bodySize)
	y := pageH/2 + 14.0
	if info.PlayerName != "" {
		pdf.SetXY(margin+8, y)
		pdf.CellFormat(pageW-2*margin-16, 14, tr("Player: "+info.PlayerName), "", 0, "L", false, 0, "")
	}
	pdf.SetXY(margin+8, y)
	pdf.CellFormat(pageW-2*margin-16, 14, fmt.Sprintf("Line %d", info.Line), "", 0, "R", false, 0, "")

	if info.Total > 0 {
		drawProgress(pdf, margin+8, y+22, pageW-2*margin-16, float64(info.Line)/float64(info.Total))
	}

	pdf.SetFont("Helvetica", "I", noteSize)
	pdf.SetXY(margin+8, pageH-margin-18)
	note := "Enter this code on the title screen to continue."
	if !info.SavedAt.IsZero() {
		note = "Saved " + info.SavedAt.UTC().Format("2006-01-02 15:04 MST") + ". " + note
	}
	pdf.CellFormat(pageW-2*margin-16, 10, note, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawTicketEdge outlines the card with notched corners like a ticket stub.
func drawTicketEdge(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(120, 90, 60)
	pdf.SetLineWidth(1.5)
	pdf.SetDashPattern([]float64{6, 3}, 0)
	pdf.Polygon(notchedRect(margin, margin, pageW-2*margin, pageH-2*margin, 10), "D")
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetLineWidth(1)
}

// notchedRect returns a rectangle outline whose corners are cut inward by
// quarter circles of radius r.
func notchedRect(x, y, w, h, r float64) []gofpdf.PointType {
	const steps = 6
	corners := []struct {
		cx, cy, from float64
	}{
		{x + w, y, math.Pi},
		{x + w, y + h, 3 * math.Pi / 2},
		{x, y + h, 0},
		{x, y, math.Pi / 2},
	}
	pts := make([]gofpdf.PointType, 0, 4*(steps+1))
	for _, c := range corners {
		for i := 0; i <= steps; i++ {
			a := c.from - float64(i)*(math.Pi/2)/steps
			pts = append(pts, gofpdf.PointType{X: c.cx + r*math.Cos(a), Y: c.cy + r*math.Sin(a)})
		}
	}
	return pts
}

func drawProgress(pdf *gofpdf.Fpdf, x, y, w, frac float64) {
	frac = math.Max(0, math.Min(1, frac))
	pdf.SetDrawColor(120, 90, 60)
	pdf.SetFillColor(230, 220, 200)
	pdf.Rect(x, y, w, 6, "FD")
	if frac > 0 {
		pdf.SetFillColor(150, 30, 40)
		pdf.Rect(x, y, w*frac, 6, "F")
	}
}

// spaced splits a code into groups of four for reading aloud.
func spaced(code string) string {
	if len(code) <= 4 {
		return code
	}
	return code[:4] + " " + code[4:]
}

func sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "game"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
