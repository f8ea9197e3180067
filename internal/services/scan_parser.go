package services

import (
	"regexp"
	"strings"

	"github.com/calloway/larder/internal/engine"
	"github.com/calloway/larder/internal/models"
)

// ScanParser turns OCR text from a pantry scan (shelf photo, receipt)
// into candidate pantry items
type ScanParser struct {
	lineParser      *IngredientParser
	excludePatterns []*regexp.Regexp
	trailingPrice   *regexp.Regexp
	upcPattern      *regexp.Regexp
}

// NewScanParser creates a new scan parser
func NewScanParser() *ScanParser {
	return &ScanParser{
		lineParser: NewIngredientParser(),
		excludePatterns: []*regexp.Regexp{
			// Receipt bookkeeping lines carry no items
			regexp.MustCompile(`(?i)^\s*(TAX|SUBTOTAL|SUB\s*TOTAL|TOTAL|GRAND\s*TOTAL|BALANCE|CHANGE|CASH|CREDIT|DEBIT|CARD|VISA|MASTERCARD|AMEX|DISCOVER|SAVINGS|DISCOUNT|COUPON|MEMBER|LOYALTY|POINTS|REWARD|THANK\s*YOU|HAVE\s*A|STORE\s*#|CASHIER|TRANS|REG|DATE|TIME|TEL|PHONE|ADDRESS|RECEIPT|RETURN|REFUND|VOID|PAID|PURCHASE)\b`),
			// Separator lines
			regexp.MustCompile(`^\s*[-=*]+\s*$`),
			// Bare dates and times
			regexp.MustCompile(`^\s*\d{2}[/-]\d{2}[/-]\d{2,4}\s*$`),
			regexp.MustCompile(`^\s*\d{1,2}:\d{2}\s*(AM|PM)?\s*$`),
			// Weight/price detail lines: "2.96 lb @ $0.99 / lb"
			regexp.MustCompile(`^\s*\d+\.?\d*\s*(lb|oz|kg|g)?\s*@\s*\$?\d+\.\d{2}`),
		},
		trailingPrice: regexp.MustCompile(`\s+\$?\d{1,3}\.\d{2}\s*[FNT]?\s*$`),
		upcPattern:    regexp.MustCompile(`\b\d{11,14}\b`),
	}
}

// Parse extracts candidate items from OCR text. Every accepted line
// becomes a ScannedItem with a medium confidence; the caller runs the
// result through deduplication before anything touches the pantry.
func (p *ScanParser) Parse(ocrText string) []models.ScannedItem {
	lines := strings.Split(ocrText, "\n")
	var items []models.ScannedItem

	for _, line := range lines {
		line = p.cleanLine(line)
		if line == "" || p.shouldExclude(line) {
			continue
		}

		// Drop prices and UPC codes, keep the name portion
		line = p.trailingPrice.ReplaceAllString(line, "")
		line = p.upcPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ing := p.lineParser.parseLine(line)
		if len(ing.Name) < 2 {
			continue
		}

		quantity := 1.0
		if ing.Quantity != nil {
			quantity = *ing.Quantity
		}

		items = append(items, models.ScannedItem{
			Name:       ing.Name,
			Quantity:   quantity,
			Unit:       ing.Unit,
			Category:   engine.Categorize(ing.Name),
			Confidence: 0.7,
		})
	}

	return items
}

// shouldExclude checks if a line should be excluded
func (p *ScanParser) shouldExclude(line string) bool {
	for _, pattern := range p.excludePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// cleanLine removes common OCR artifacts
func (p *ScanParser) cleanLine(line string) string {
	line = strings.ReplaceAll(line, "|", "")
	line = strings.ReplaceAll(line, "\\", "")

	spaceRe := regexp.MustCompile(`\s+`)
	line = spaceRe.ReplaceAllString(line, " ")

	return strings.TrimSpace(line)
}
