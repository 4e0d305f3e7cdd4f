package util

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"invoice.xlsx":       "invoice.xlsx",
		"my invoice.xlsx":    "my_invoice.xlsx",
		"../../etc/passwd":   "passwd",
		`inv<oice>:2026.pdf`: "inv_oice__2026.pdf",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
}

func TestReplaceExt(t *testing.T) {
	if got := ReplaceExt("/data/input/invoice.xlsx", ".pdf"); got != "/data/input/invoice.pdf" {
		t.Fatalf("got %q", got)
	}
	if got := ReplaceExt("invoice.xlsx", ".csv"); got != "invoice.csv" {
		t.Fatalf("got %q", got)
	}
}
