package scoring

// RiskLevel is the coarse band used by callers to pick a display treatment.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMild     RiskLevel = "mild"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Valid reports whether the level is one of the four known bands.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMild, RiskModerate, RiskHigh:
		return true
	default:
		return false
	}
}

// PatientInput is the validated input to Evaluate. CACScore must be >= 0 and Age > 0.
type PatientInput struct {
	CACScore      int  `json:"cacScore"`
	Age           int  `json:"age"`
	HasDiabetes   bool `json:"hasDiabetes"`
	IsSmoker      bool `json:"isSmoker"`
	FamilyHistory bool `json:"familyHistory"`
}

// HasRiskFactor reports whether any of the three boolean risk factors is set.
func (p PatientInput) HasRiskFactor() bool {
	return p.HasDiabetes || p.IsSmoker || p.FamilyHistory
}

// Recommendation is the full result of one evaluation. Unassigned fields are empty strings.
type Recommendation struct {
	RiskCategory          string    `json:"riskCategory"`
	RiskLevel             RiskLevel `json:"riskLevel"`
	StatinRecommendation  string    `json:"statinRecommendation"`
	AspirinRecommendation string    `json:"aspirinRecommendation"`
	FollowUp              string    `json:"followUp"`
	AdditionalNotes       string    `json:"additionalNotes"`

	// Notes holds the clinical note fragments in the order they were added.
	Notes []string `json:"-"`
}
