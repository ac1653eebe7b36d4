package scoring

// Risk category labels.
const (
	CategoryNone     = "No identifiable coronary disease"
	CategoryMild     = "Mild coronary disease"
	CategoryModerate = "Moderate coronary disease"
	CategorySevere   = "Severe coronary disease"
)

// Therapy and follow-up wording.
const (
	StatinConsiderRiskFactors = "Consider statin therapy due to additional risk factors"
	StatinNotIndicated        = "No statin therapy indicated"
	StatinInitiateIIa         = "Initiate statin therapy (Class IIa recommendation)"
	StatinWithhold            = "Statin therapy may be withheld - reassess in 3-5 years"
	StatinStrongClassI        = "Strongly recommend statin therapy (Class I recommendation)"

	AspirinConsider       = "Consider aspirin for primary prevention (if bleeding risk acceptable)"
	AspirinNotRecommended = "Aspirin not routinely recommended due to increased bleeding risk with age"

	FollowUpReevaluate = "Re-evaluate CAC scoring in 3-5 years"
	FollowUpCardiology = "Consider cardiology referral for further risk stratification and management"
	FollowUpStandard   = "Standard cardiovascular risk factor management and monitoring"

	NoteZeroWithRiskFactors = "Despite CAC score of 0, presence of diabetes, smoking, or family history may warrant statin consideration."
	NoteSevere              = "Severe calcification associated with advanced obstructive coronary disease. May require additional cardiac testing."
	NoteZeroScore           = "Extremely low risk of cardiovascular events. CAC score of 0 has high negative predictive value."
)

// Score and age thresholds.
const (
	ModerateThreshold = 100
	SevereThreshold   = 400
	StatinAgeCutoff   = 55
	AspirinAgeCutoff  = 70
)

// Band describes one CAC score range. Max of -1 means unbounded.
type Band struct {
	Min      int       `json:"min"`
	Max      int       `json:"max"`
	Category string    `json:"category"`
	Level    RiskLevel `json:"level"`
}

var bands = []Band{
	{Min: 0, Max: 0, Category: CategoryNone, Level: RiskLow},
	{Min: 1, Max: ModerateThreshold - 1, Category: CategoryMild, Level: RiskMild},
	{Min: ModerateThreshold, Max: SevereThreshold - 1, Category: CategoryModerate, Level: RiskModerate},
	{Min: SevereThreshold, Max: -1, Category: CategorySevere, Level: RiskHigh},
}

// Bands returns a copy of the score band table in ascending order.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Contains reports whether score falls inside the band.
func (b Band) Contains(score int) bool {
	if score < b.Min {
		return false
	}
	return b.Max < 0 || score <= b.Max
}

// Classify returns the risk category and level for a CAC score.
func Classify(score int) (string, RiskLevel) {
	for _, b := range bands {
		if b.Contains(score) {
			return b.Category, b.Level
		}
	}
	// Negative scores are outside the input domain; report the lowest band.
	return CategoryNone, RiskLow
}

// Evaluate derives the recommendation for a validated patient input. The stages run in a
// fixed order (category, statin, aspirin, follow-up) and each only reads what earlier
// stages produced; the note ordering in AdditionalNotes depends on it.
func Evaluate(in PatientInput) Recommendation {
	var (
		rec   Recommendation
		notes noteLog
	)
	score := in.CACScore

	rec.RiskCategory, rec.RiskLevel = Classify(score)

	switch {
	case score == 0:
		if in.HasRiskFactor() {
			rec.StatinRecommendation = StatinConsiderRiskFactors
			notes.set(NoteZeroWithRiskFactors)
		} else {
			rec.StatinRecommendation = StatinNotIndicated
		}
	case score < ModerateThreshold:
		if in.Age >= StatinAgeCutoff {
			rec.StatinRecommendation = StatinInitiateIIa
		} else {
			rec.StatinRecommendation = StatinWithhold
			rec.FollowUp = FollowUpReevaluate
		}
	default:
		rec.StatinRecommendation = StatinStrongClassI
		rec.AspirinRecommendation = aspirinFor(in.Age)
	}

	if score >= SevereThreshold {
		rec.FollowUp = FollowUpCardiology
		notes.add(NoteSevere)
	}
	if rec.FollowUp == "" && score > 0 {
		rec.FollowUp = FollowUpStandard
	}
	if score == 0 {
		notes.add(NoteZeroScore)
	}

	rec.AdditionalNotes = notes.String()
	rec.Notes = notes.fragments()
	return rec
}

func aspirinFor(age int) string {
	if age < AspirinAgeCutoff {
		return AspirinConsider
	}
	return AspirinNotRecommended
}
