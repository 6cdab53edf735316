package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamily = "Storyboard"

	titleSize   = 16
	captionSize = 12
	lineHeight  = 16
	titleHeight = 22

	// Image bounding box, matching the historical 7x7 inch export layout.
	imageMaxWidth  = 7 * 72
	imageMaxHeight = 7 * 72

	imageSpacing = 6
	blockSpacing = 24

	pageMargin = 40
)

// Block is one non-splittable unit of the exported document: the caption
// lines of a single frame plus its optional fitted image.
type Block struct {
	Description   string
	CharacterName string
	ShootTime     string
	Location      string
	ImagePath     string // absolute path of the stored image, empty when none
}

// Composer builds storyboard PDF documents.
type Composer struct {
	// FontPath optionally names a Unicode-capable TTF font to embed. When
	// empty the built-in Helvetica is used with cp1252 translation.
	FontPath string
}

// Compose renders a title block followed by one atomic block per frame onto
// A4 pages. A block that does not fit the remaining page space moves whole
// to the next page. Per-frame image failures degrade to a placeholder
// caption line; they never fail the export.
func (c *Composer) Compose(projectName string, blocks []Block) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	translate := func(s string) string { return s }
	if c.FontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", c.FontPath)
		pdf.SetFont(fontFamily, "", captionSize)
	} else {
		pdf.SetFont("Helvetica", "", captionSize)
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	}
	if pdf.Err() {
		return nil, fmt.Errorf("failed to set up document font: %v", pdf.Error())
	}

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin
	bottom := pageH - pageMargin

	pdf.AddPage()
	c.writeLine(pdf, translate(fmt.Sprintf("Project: %s", projectName)), titleSize, titleHeight, contentW)
	pdf.Ln(12)

	for _, block := range blocks {
		lines := block.captionLines()

		imgW, imgH, imgErr := measureImage(block.ImagePath)
		if block.ImagePath != "" && imgErr != nil {
			// Localized failure: replace the image with a visible note.
			log.Printf("Export: image unavailable for block, using placeholder: %v", imgErr)
			lines = append(lines, fmt.Sprintf("[image unavailable: %s]", filepath.Base(block.ImagePath)))
			imgW, imgH = 0, 0
		}

		blockH := float64(len(lines)) * lineHeight
		if imgH > 0 {
			blockH += imageSpacing + imgH
		}

		// The whole block moves to the next page rather than splitting.
		// A block taller than a full page is drawn anyway.
		if pdf.GetY()+blockH > bottom && blockH <= bottom-pageMargin {
			pdf.AddPage()
		}

		for _, line := range lines {
			c.writeLine(pdf, translate(line), captionSize, lineHeight, contentW)
		}

		if imgH > 0 {
			pdf.Ln(imageSpacing)
			y := pdf.GetY()
			pdf.ImageOptions(block.ImagePath, pageMargin, y, imgW, imgH, false,
				gofpdf.ImageOptions{ReadDpi: false}, 0, "")
			if pdf.Err() {
				// The file measured fine but gofpdf rejected it; keep the
				// document alive and note the failure in place.
				log.Printf("Export: failed to embed %s: %v", block.ImagePath, pdf.Error())
				pdf.ClearError()
				c.writeLine(pdf, translate(fmt.Sprintf("[image unavailable: %s]", filepath.Base(block.ImagePath))), captionSize, lineHeight, contentW)
			} else {
				pdf.SetY(y + imgH)
			}
		}

		pdf.Ln(blockSpacing)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Composer) writeLine(pdf *gofpdf.Fpdf, text string, size, height, width float64) {
	family := fontFamily
	if c.FontPath == "" {
		family = "Helvetica"
	}
	pdf.SetFont(family, "", size)
	pdf.CellFormat(width, height, text, "", 1, "L", false, 0, "")
}

// captionLines returns the text lines of the block: the description always,
// the optional fields only when non-empty.
func (b *Block) captionLines() []string {
	lines := []string{fmt.Sprintf("Frame: %s", b.Description)}
	if b.CharacterName != "" {
		lines = append(lines, fmt.Sprintf("Character: %s", b.CharacterName))
	}
	if b.ShootTime != "" {
		lines = append(lines, fmt.Sprintf("Time: %s", b.ShootTime))
	}
	if b.Location != "" {
		lines = append(lines, fmt.Sprintf("Location: %s", b.Location))
	}
	return lines
}

// measureImage returns the draw dimensions for the image at path, fitted
// into the export bounding box. An empty path means no image was attached.
func measureImage(path string) (float64, float64, error) {
	if path == "" {
		return 0, 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("missing image file: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("undecodable image file %s: %w", filepath.Base(path), err)
	}

	return FitToBox(float64(cfg.Width), float64(cfg.Height))
}

// FitToBox fits the given dimensions into the standard export bounding box.
func FitToBox(origW, origH float64) (float64, float64, error) {
	return Fit(origW, origH, imageMaxWidth, imageMaxHeight)
}
