package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFindTotalDue(t *testing.T) {
	text := "ACME Corp Invoice 2026-0142\nBill To: Example LLC\nTotal Due USD 12,345.67\nThank you\n"
	amount, err := findTotalDue(text)
	if err != nil {
		t.Fatal(err)
	}
	if amount.StringFixed(2) != "12345.67" {
		t.Fatalf("amount = %s", amount)
	}
}

func TestFindTotalDueWithoutSeparators(t *testing.T) {
	amount, err := findTotalDue("Total Due USD 999.10")
	if err != nil {
		t.Fatal(err)
	}
	if amount.StringFixed(2) != "999.10" {
		t.Fatalf("amount = %s", amount)
	}
}

func TestFindTotalDueMissing(t *testing.T) {
	_, err := findTotalDue("Subtotal USD 10.00\nTax USD 1.00\n")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "sample") {
		t.Fatalf("error should carry a text sample: %v", err)
	}
}

func TestFindTotalDueRequiresTwoDecimals(t *testing.T) {
	if _, err := findTotalDue("Total Due USD 1234"); err == nil {
		t.Fatal("expected error for amount without cents")
	}
}

func TestTextSampleTruncates(t *testing.T) {
	long := strings.Repeat("x", 900)
	sample := textSample(long, 500)
	if len(sample) != 503 {
		t.Fatalf("len=%d", len(sample))
	}
	if !strings.HasSuffix(sample, "...") {
		t.Fatalf("sample = %q", sample[490:])
	}
}

func TestTextSampleKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("x", 499) + "é" + strings.Repeat("y", 100)
	sample := textSample(long, 500)
	if !utf8.ValidString(sample) {
		t.Fatalf("sample is not valid utf-8: %q", sample)
	}
	if !strings.HasSuffix(sample, "x...") {
		t.Fatalf("sample = %q", sample[490:])
	}
}
