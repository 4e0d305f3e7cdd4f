package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
)

var totalDuePattern = regexp.MustCompile(`Total Due USD\s+([\d,]+\.\d{2})`)

// ExtractInvoiceAmount reads the first page of the invoice PDF and pulls
// the amount from its "Total Due USD" line.
func ExtractInvoiceAmount(pdfPath string) (decimal.Decimal, error) {
	blob, err := os.ReadFile(pdfPath)
	if err != nil {
		return decimal.Zero, err
	}

	r, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("open pdf %s: %w", pdfPath, err)
	}
	if r.NumPage() < 1 {
		return decimal.Zero, fmt.Errorf("pdf %s has no pages", pdfPath)
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return decimal.Zero, fmt.Errorf("pdf %s first page is not readable", pdfPath)
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("extract text from %s: %w", pdfPath, err)
	}

	return findTotalDue(text)
}

func findTotalDue(text string) (decimal.Decimal, error) {
	match := totalDuePattern.FindStringSubmatch(text)
	if match == nil {
		return decimal.Zero, fmt.Errorf("total due amount not found in pdf text, sample: %s", textSample(text, 500))
	}
	return decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
}

func textSample(text string, max int) string {
	compact := strings.TrimSpace(text)
	if len(compact) <= max {
		return compact
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(compact[cut]) {
		cut--
	}
	return compact[:cut] + "..."
}
