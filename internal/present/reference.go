package present

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"cac-decision/internal/scoring"
)

// ReferenceBand is one row of the score reference table.
type ReferenceBand struct {
	Range string            `json:"range"`
	Label string            `json:"label"`
	Level scoring.RiskLevel `json:"level"`
	Tone  Tone              `json:"tone"`
}

// ReferenceSheet is the static guidance shown next to the calculator.
type ReferenceSheet struct {
	Bands        []ReferenceBand `json:"bands"`
	EvidenceBase []string        `json:"evidenceBase"`
	ClinicalRole []string        `json:"clinicalRole"`
	Disclaimer   string          `json:"disclaimer"`
}

var shortLabels = map[scoring.RiskLevel]string{
	scoring.RiskLow:      "No identifiable disease",
	scoring.RiskMild:     "Mild disease",
	scoring.RiskModerate: "Moderate disease",
	scoring.RiskHigh:     "Severe disease",
}

// Reference builds the reference sheet from the engine's band table.
func Reference() ReferenceSheet {
	var rows []ReferenceBand
	for _, b := range scoring.Bands() {
		rows = append(rows, ReferenceBand{
			Range: bandRange(b),
			Label: shortLabels[b.Level],
			Level: b.Level,
			Tone:  Treatment(b.Level),
		})
	}
	return ReferenceSheet{
		Bands: rows,
		EvidenceBase: []string{
			"Based on 2018 ACC/AHA Cholesterol Guidelines",
			"CAC independently predicts future MACE",
			"CAC score of 0 has high negative predictive value",
			"Serial CAC testing not recommended for treatment monitoring",
		},
		ClinicalRole: []string{
			"Adding CAC to Framingham risk factors leads to improved prediction of MACE",
			"Noninvasive assessment of CAC is reasonable in asymptomatic individuals with intermediate risk",
			"CAC testing is most valuable for risk reclassification in patients with intermediate (10-20%) 10-year cardiovascular risk",
		},
		Disclaimer: Disclaimer,
	}
}

// RenderReference writes the reference sheet as plain text.
func RenderReference(w io.Writer, sheet ReferenceSheet, opts Options) error {
	heading := palette(color.Bold, opts.Color)
	if _, err := heading.Fprintln(w, "CAC Score Reference"); err != nil {
		return err
	}
	for _, row := range sheet.Bands {
		label := toneColor(row.Tone, opts.Color).Sprint(row.Label)
		if _, err := fmt.Fprintf(w, "  %-8s %s\n", row.Range+":", label); err != nil {
			return err
		}
	}
	sections := []struct {
		title string
		items []string
	}{
		{"Evidence Base", sheet.EvidenceBase},
		{"Role of CAC in Risk Assessment", sheet.ClinicalRole},
	}
	for _, section := range sections {
		if _, err := heading.Fprintf(w, "\n%s\n", section.title); err != nil {
			return err
		}
		for _, item := range section.items {
			if _, err := fmt.Fprintf(w, "  - %s\n", item); err != nil {
				return err
			}
		}
	}
	if sheet.Disclaimer != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", sheet.Disclaimer); err != nil {
			return err
		}
	}
	return nil
}

func bandRange(b scoring.Band) string {
	switch {
	case b.Max < 0:
		return fmt.Sprintf(">=%d", b.Min)
	case b.Min == b.Max:
		return fmt.Sprintf("%d", b.Min)
	default:
		return fmt.Sprintf("%d-%d", b.Min, b.Max)
	}
}
