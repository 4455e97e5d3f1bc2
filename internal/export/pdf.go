package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PillBoard/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	footerHeight = 28.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	summaryQR    = 24.0
	pillAlpha    = 0.55
	rowsPerTable = 24
)

// BoardSummary is the payload of the QR code printed on the board page.
type BoardSummary struct {
	Session  string  `json:"session"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Pills    int     `json:"pills"`
	Coverage float64 `json:"coverage_pct"`
}

// ExportPDF generates a PDF with the board drawn to scale on the first page,
// followed by a table listing every pill.
func ExportPDF(path string, doc Document) error {
	if err := doc.check(); err != nil {
		return err
	}
	pdf, err := buildPDF(doc)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

func buildPDF(doc Document) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	if err := renderBoardPage(pdf, doc); err != nil {
		return nil, err
	}

	for start := 0; start < len(doc.Pills); start += rowsPerTable {
		end := start + rowsPerTable
		if end > len(doc.Pills) {
			end = len(doc.Pills)
		}
		pdf.AddPage()
		renderPillTable(pdf, doc, doc.Pills[start:end], start == 0)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf, nil
}

// renderBoardPage draws the board with every pill on the current page.
func renderBoardPage(pdf *fpdf.Fpdf, doc Document) error {
	stats := doc.Stats()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("PillBoard %s (%.0f x %.0f px)", doc.Session, doc.Board.Width, doc.Board.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Pills: %d | Rounded corners: %d | Pill area: %.0f px² | Coverage: %.1f%%",
		stats.Count, stats.RoundedCorners, stats.PillArea, stats.Coverage())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - footerHeight
	scale := math.Min(drawWidth/doc.Board.Width, drawHeight/doc.Board.Height)

	canvasW := doc.Board.Width * scale
	canvasH := doc.Board.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(248, 248, 248)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range doc.Pills {
		drawPill(pdf, p, scale, offsetX, offsetY)
	}

	drawDimensionAnnotations(pdf, doc.Board, offsetX, offsetY, canvasW, canvasH)

	summary := BoardSummary{
		Session:  doc.Session,
		Width:    doc.Board.Width,
		Height:   doc.Board.Height,
		Pills:    stats.Count,
		Coverage: math.Round(stats.Coverage()*10) / 10,
	}
	qrData, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal board summary: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	imgName := "summary_" + doc.Session
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-summaryQR, pageHeight-marginBottom-summaryQR, summaryQR, summaryQR, false, opts, 0, "")

	drawFooter(pdf)
	return nil
}

// drawPill renders one pill, translucent so overlapping pills stay visible.
func drawPill(pdf *fpdf.Fpdf, p model.Pill, scale, offsetX, offsetY float64) {
	x := offsetX + p.Rect.X*scale
	y := offsetY + p.Rect.Y*scale
	w := p.Rect.Width * scale
	h := p.Rect.Height * scale
	r, g, b := p.Color.RGB()

	pdf.SetFillColor(int(r), int(g), int(b))
	pdf.SetDrawColor(int(r)/2, int(g)/2, int(b)/2)
	pdf.SetLineWidth(0.3)

	pdf.SetAlpha(pillAlpha, "Normal")
	pillPath(pdf, p, x, y, w, h, scale, "F")
	pdf.SetAlpha(1, "Normal")
	pillPath(pdf, p, x, y, w, h, scale, "D")

	if w > 8 && h > 5 {
		label := fmt.Sprintf("#%d", p.ID)
		pdf.SetFont("Helvetica", "", labelFontSize(w, h))
		pdf.SetTextColor(0, 0, 0)
		labelW := pdf.GetStringWidth(label)
		if labelW < w-2 {
			pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}
}

// pillPath draws the pill outline with style "F" or "D". Corner numbers follow
// fpdf: 1 top-left, 2 top-right, 3 bottom-right, 4 bottom-left.
func pillPath(pdf *fpdf.Fpdf, p model.Pill, x, y, w, h, scale float64, style string) {
	tl, tr, br, bl := p.Radii()
	if tl+tr+br+bl == 0 {
		pdf.Rect(x, y, w, h, style)
		return
	}
	pdf.RoundedRectExt(x, y, w, h, tl*scale, tr*scale, br*scale, bl*scale, style)
}

// fpdfCorners returns the fpdf corner selector for the pill's rounded corners.
func fpdfCorners(c model.Corners) string {
	s := ""
	if c.TL {
		s += "1"
	}
	if c.TR {
		s += "2"
	}
	if c.BR {
		s += "3"
	}
	if c.BL {
		s += "4"
	}
	return s
}

// drawDimensionAnnotations adds width and height labels outside the board.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, board model.Board, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f px", board.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f px", board.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderPillTable lists pills with their geometry, color and corner flags.
func renderPillTable(pdf *fpdf.Fpdf, doc Document, pills []model.Pill, first bool) {
	title := "Pills"
	if !first {
		title = "Pills (continued)"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	colWidths := []float64{20, 30, 30, 30, 30, 15, 50, 40}
	headers := []string{"ID", "X", "Y", "Width", "Height", "", "Color", "Rounded"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range pills {
		rowData := []string{
			fmt.Sprintf("%d", p.ID),
			fmt.Sprintf("%.0f", p.Rect.X),
			fmt.Sprintf("%.0f", p.Rect.Y),
			fmt.Sprintf("%.0f", p.Rect.Width),
			fmt.Sprintf("%.0f", p.Rect.Height),
			"",
			p.Color.String(),
			p.Corners.String(),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}

		// Color swatch in the blank column
		swatchX := marginLeft + colWidths[0] + colWidths[1] + colWidths[2] + colWidths[3] + colWidths[4]
		r, g, b := p.Color.RGB()
		pdf.SetFillColor(int(r), int(g), int(b))
		pdf.RoundedRect(swatchX+3, y+1, colWidths[5]-6, 4, 1.5, fpdfCorners(p.Corners), "F")
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, y+4)
	pdf.CellFormat(100, 4, "Session "+doc.Session, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	drawFooter(pdf)
}

func drawFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-summaryQR, 4, "Generated by PillBoard", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
