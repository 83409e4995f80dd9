package classify_test

import (
	"strings"
	"testing"

	"cellsort/internal/classify"
)

func TestExtractDate(t *testing.T) {
	cases := []struct {
		name    string
		subject classify.Subject
		want    string
	}{
		{
			name:    "filename run beats content",
			subject: classify.Subject{Filename: "b3_redox_iv_25c_20230601.csv", Content: "Date: 03-15-2024", Readable: true},
			want:    "20230601",
		},
		{
			name:    "filename run is not calendar checked",
			subject: classify.Subject{Filename: "sh1_12345678.csv"},
			want:    "12345678",
		},
		{
			name:    "dotted filename date",
			subject: classify.Subject{Filename: "sh12_2024.03.15_eis.csv"},
			want:    "20240315",
		},
		{
			name:    "content date",
			subject: classify.Subject{Filename: "sh12_eis.csv", Content: "Header\nDate: 03-15-2024\nTime,V\n", Readable: true},
			want:    "20240315",
		},
		{
			name:    "content date without space",
			subject: classify.Subject{Filename: "sh12_eis.csv", Content: "Date:03-15-2024", Readable: true},
			want:    "20240315",
		},
		{
			name:    "unmatched marker line is skipped",
			subject: classify.Subject{Filename: "sh12_eis.csv", Content: "Date: March 3\nDate:\t12-01-2023\n", Readable: true},
			want:    "20231201",
		},
		{
			name:    "impossible calendar date",
			subject: classify.Subject{Filename: "sh12_eis.csv", Content: "Date: 02-30-2024\nDate: 03-01-2024\n", Readable: true},
			want:    "",
		},
		{
			name:    "unreadable content",
			subject: classify.Subject{Filename: "sh12_eis.csv", Content: "Date: 03-15-2024", Readable: false},
			want:    "",
		},
		{
			name:    "nothing anywhere",
			subject: classify.Subject{Filename: "sh12_eis.csv", Content: "Time,V\n", Readable: true},
			want:    "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classify.ExtractDate(tc.subject); got != tc.want {
				t.Fatalf("ExtractDate = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDateFromFilenameIgnoresExtension(t *testing.T) {
	if got := classify.DateFromFilename("sh12_eis"); got != "" {
		t.Fatalf("expected no date, got %q", got)
	}
}

func TestDateFromContentReadsPastLongLines(t *testing.T) {
	content := strings.Repeat("0.1,", 512*1024) + "\nDate: 03-15-2024\n"
	if got := classify.DateFromContent(content); got != "20240315" {
		t.Fatalf("DateFromContent = %q, want 20240315", got)
	}
}
