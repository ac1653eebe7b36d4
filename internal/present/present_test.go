package present

import (
	"bytes"
	"strings"
	"testing"

	"cac-decision/internal/scoring"
)

func TestTreatment(t *testing.T) {
	tests := []struct {
		level scoring.RiskLevel
		tone  Tone
	}{
		{scoring.RiskLow, ToneGreen},
		{scoring.RiskMild, ToneBlue},
		{scoring.RiskModerate, ToneOrange},
		{scoring.RiskHigh, ToneRed},
		{"", ToneGray},
	}
	for _, tc := range tests {
		if got := Treatment(tc.level); got != tc.tone {
			t.Fatalf("level %q: expected %s got %s", tc.level, tc.tone, got)
		}
	}
}

func TestRenderOmitsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	rec := scoring.Evaluate(scoring.PatientInput{CACScore: 50, Age: 60})
	if err := Render(&buf, rec, Options{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Risk Category", scoring.CategoryMild, "Statin Therapy", "Follow-up"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"Aspirin Therapy", "Clinical Notes", Disclaimer, "\x1b["} {
		if strings.Contains(out, unwanted) {
			t.Fatalf("did not expect %q in output:\n%s", unwanted, out)
		}
	}
}

func TestRenderSevereWithColor(t *testing.T) {
	var buf bytes.Buffer
	rec := scoring.Evaluate(scoring.PatientInput{CACScore: 800, Age: 72})
	if err := Render(&buf, rec, Options{Color: true, Disclaimer: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Aspirin Therapy", "Clinical Notes", scoring.FollowUpCardiology, Disclaimer, "\x1b["} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestDetectOptionsNonTerminal(t *testing.T) {
	if opts := DetectOptions(&bytes.Buffer{}); opts.Color {
		t.Fatalf("buffer should not enable colour")
	}
}

func TestReference(t *testing.T) {
	sheet := Reference()
	if len(sheet.Bands) != 4 {
		t.Fatalf("expected 4 bands got %d", len(sheet.Bands))
	}
	ranges := []string{"0", "1-99", "100-399", ">=400"}
	for i, want := range ranges {
		if sheet.Bands[i].Range != want {
			t.Fatalf("band %d: expected %s got %s", i, want, sheet.Bands[i].Range)
		}
	}

	var buf bytes.Buffer
	if err := RenderReference(&buf, sheet, Options{}); err != nil {
		t.Fatalf("render reference: %v", err)
	}
	if !strings.Contains(buf.String(), "Severe disease") {
		t.Fatalf("unexpected reference output:\n%s", buf.String())
	}
	if !strings.HasSuffix(buf.String(), Disclaimer+"\n") {
		t.Fatalf("expected reference to end with the disclaimer:\n%s", buf.String())
	}
}
