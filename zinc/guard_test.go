package zinc

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckEligibilityAccepts(t *testing.T) {
	inputs := map[string]string{
		"simple": "ver:\"3.0\"\na,b\n1,2\n",
		"meta and refs": "ver:\"3.0\" site dis:\"HQ\"\nid,dis,area unit:\"ft²\"\n" +
			"@p:a \"A\",\"Alpha\",1200ft²\n@p:b,\"Beta\",N\n",
		"special numbers": "ver:\"3.0\"\nv\nINF\n-INF\nNaN\nNA\n",
		"xstr and coord":  "ver:\"3.0\"\nx,y\nSpan(\"today\"),C(1,2)\n",
		"datetime zone in row": "ver:\"3.0\"\nts\n2020-01-15T10:30:00-05:00 New_York\n",
		"list far from header": "ver:\"3.0\"\nv\n" + strings.Repeat("\"padding padding\"\n", 20) + "\"[not a list]\"\n",
		"blank lines":          "ver:\"3.0\"\na\n\n1\n\n",
	}

	for name, text := range inputs {
		t.Run(name, func(t *testing.T) {
			if err := CheckEligibility(text); err != nil {
				t.Errorf("CheckEligibility error: %v", err)
			}
			if !IsFastPathEligible(text) {
				t.Error("IsFastPathEligible = false, want true")
			}
		})
	}
}

func TestCheckEligibilityRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"nested grid", "ver:\"3.0\"\nv\n<<\nver:\"3.0\"\nx\n1\n>>\n"},
		{"dict", "ver:\"3.0\"\nv\n{a:1}\n"},
		{"dict inside string", "ver:\"3.0\"\nv\n\"{\"\n"},
		{"list in header", "ver:\"3.0\" tags:[1,2]\nv\n1\n"},
		{"list in first row", "ver:\"3.0\"\nv\n[1,2]\n"},
		{"offset and zone in metadata", "ver:\"3.0\" ts:2020-01-15T10:30:00-05:00 New_York\nv\n1\n"},
		{"escaped backtick in first line", "ver:\"3.0\" u:`a\\`b`\nv\n1\n"},
		{"escaped backtick in row", "ver:\"3.0\"\nv\n`a\\`b`\n"},
		{"uppercase column meta", "ver:\"3.0\"\nv DIS\n1\n"},
		{"bare word in row", "ver:\"3.0\"\na,b\n1,xyz\n"},
		{"unicode bare word", "ver:\"3.0\"\na\nélan\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEligibility(tt.text)
			if err == nil {
				t.Fatal("CheckEligibility succeeded, want rejection")
			}
			if !errors.Is(err, ErrRejected) {
				t.Errorf("error %v is not ErrRejected", err)
			}
			if IsFastPathEligible(tt.text) {
				t.Error("IsFastPathEligible = true, want false")
			}
		})
	}
}

func TestCheckEligibilityReportsRowLine(t *testing.T) {
	err := CheckEligibility("ver:\"3.0\"\na\n1\n2\nxyz\n")
	var ze *Error
	if !errors.As(err, &ze) {
		t.Fatalf("error %v is not *Error", err)
	}
	if ze.Line != 5 || ze.Token != "xyz" {
		t.Errorf("line/token = %d/%q, want 5/\"xyz\"", ze.Line, ze.Token)
	}
}

func TestSampleCountsCharacters(t *testing.T) {
	s := strings.Repeat("é", 300)
	got := sample(s, headerSample)
	if n := len([]rune(got)); n != headerSample {
		t.Errorf("sample has %d characters, want %d", n, headerSample)
	}
	if sample("short", headerSample) != "short" {
		t.Error("sample of short input changed it")
	}
}
