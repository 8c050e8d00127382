package formatting_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/reviewguard/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"512", 512, false},
		{"64KB", 64 * 1024, false},
		{"1 MB", 1024 * 1024, false},
		{"1.5mb", 1024 * 1024 * 3 / 2, false},
		{"2GB", 2 << 30, false},
		{"", 0, true},
		{"MB", 0, true},
		{"10 parsecs", 0, true},
		{"1.2.3KB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 1, "0 B"},
		{1023, 2, "1023 B"},
		{1536, 1, "1.5 KB"},
		{1024 * 1024, 0, "1 MB"},
		{-2048, 0, "-2 KB"},
		{5 << 30, -3, "5 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []int64{1024, 64 * 1024, 3 << 20} {
		got, err := formatting.ParseBytes(formatting.FormatBytes(n, 0))
		if err != nil || got != n {
			t.Errorf("round trip %d = %d, %v", n, got, err)
		}
	}
}

type verdict struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    verdict
		wantErr bool
	}{
		{"plain", `{"prediction":"Fake","confidence":0.9}`, verdict{"Fake", 0.9}, false},
		{"padded", "\n  {\"prediction\":\"Real\",\"confidence\":0.2}  \n", verdict{"Real", 0.2}, false},
		{"fenced", "Result:\n```json\n{\"prediction\":\"Fake\",\"confidence\":0.7}\n```", verdict{"Fake", 0.7}, false},
		{"bare fence", "```\n{\"prediction\":\"Real\",\"confidence\":0.1}\n```", verdict{"Real", 0.1}, false},
		{
			"logged preamble",
			"loading model...\nwarming up\n{\"prediction\":\"Fake\",\"confidence\":0.55}\n",
			verdict{"Fake", 0.55},
			false,
		},
		{"not json", "model crashed", verdict{}, true},
		{"empty", "", verdict{}, true},
		{"broken fence", "```json\n{broken\n```", verdict{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[verdict](tt.content)
			if tt.wantErr {
				if !errors.Is(err, formatting.ErrParseFailed) {
					t.Fatalf("error = %v, want ErrParseFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseTruncatesErrorContent(t *testing.T) {
	_, err := formatting.Parse[verdict](strings.Repeat("x", 1000))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 300 {
		t.Errorf("error length = %d, want truncated", len(err.Error()))
	}
}
