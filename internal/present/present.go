// Package present turns recommendations into something a person can read. Nothing here
// affects the recommendation itself.
package present

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"cac-decision/internal/scoring"
)

// Tone is the display treatment for a risk level.
type Tone string

const (
	ToneGreen  Tone = "green"
	ToneBlue   Tone = "blue"
	ToneOrange Tone = "orange"
	ToneRed    Tone = "red"
	ToneGray   Tone = "gray"
)

// AwaitingInput is shown until a valid calculation has produced a result.
const AwaitingInput = "Enter patient information and calculate to see recommendations"

// Disclaimer accompanies every rendered result.
const Disclaimer = "This tool provides evidence-based recommendations. Clinical judgment should always be applied in individual patient care."

// Treatment maps a risk level to its tone.
func Treatment(level scoring.RiskLevel) Tone {
	switch level {
	case scoring.RiskLow:
		return ToneGreen
	case scoring.RiskMild:
		return ToneBlue
	case scoring.RiskModerate:
		return ToneOrange
	case scoring.RiskHigh:
		return ToneRed
	default:
		return ToneGray
	}
}

// Options controls terminal rendering.
type Options struct {
	Color      bool
	Disclaimer bool
}

// DetectOptions enables colour when w is a terminal.
func DetectOptions(w io.Writer) Options {
	opts := Options{Disclaimer: true}
	if f, ok := w.(*os.File); ok {
		opts.Color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return opts
}

// Render writes a recommendation card. Optional sections are omitted when empty.
func Render(w io.Writer, rec scoring.Recommendation, opts Options) error {
	heading := palette(color.Bold, opts.Color)
	tone := toneColor(Treatment(rec.RiskLevel), opts.Color)
	notes := palette(color.FgYellow, opts.Color)

	lines := []struct {
		title string
		body  string
		style *color.Color
	}{
		{"Risk Category", rec.RiskCategory, tone},
		{"Statin Therapy", rec.StatinRecommendation, nil},
		{"Aspirin Therapy", rec.AspirinRecommendation, nil},
		{"Follow-up", rec.FollowUp, nil},
		{"Clinical Notes", rec.AdditionalNotes, notes},
	}

	for _, line := range lines {
		if line.body == "" {
			continue
		}
		if _, err := heading.Fprintf(w, "%s\n", line.title); err != nil {
			return err
		}
		body := line.body
		if line.style != nil {
			body = line.style.Sprint(body)
		}
		if _, err := fmt.Fprintf(w, "  %s\n", body); err != nil {
			return err
		}
	}
	if opts.Disclaimer {
		if _, err := fmt.Fprintf(w, "\n%s\n", Disclaimer); err != nil {
			return err
		}
	}
	return nil
}

func toneColor(t Tone, enabled bool) *color.Color {
	switch t {
	case ToneGreen:
		return palette(color.FgGreen, enabled)
	case ToneBlue:
		return palette(color.FgBlue, enabled)
	case ToneOrange:
		// Terminals have no orange; yellow is the closest standard attribute.
		return palette(color.FgHiYellow, enabled)
	case ToneRed:
		return palette(color.FgRed, enabled)
	default:
		return palette(color.FgWhite, enabled)
	}
}

func palette(attr color.Attribute, enabled bool) *color.Color {
	c := color.New(attr)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
