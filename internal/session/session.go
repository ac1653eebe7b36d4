package session

import (
	"sync"

	"github.com/sirupsen/logrus"

	"cac-decision/internal/intake"
	"cac-decision/internal/scoring"
)

// State is the phase of an input session.
type State string

const (
	StateIdle   State = "idle"
	StateInput  State = "input"
	StateResult State = "result"
)

// Session holds the form state for one user and the result of the last calculation.
// Any edit discards the previous result so a stale recommendation is never shown.
type Session struct {
	mu     sync.Mutex
	state  State
	form   intake.Form
	result scoring.Recommendation
}

// New returns an idle session with an empty form.
func New() *Session {
	return &Session{state: StateIdle}
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Form returns a copy of the current form values.
func (s *Session) Form() intake.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetScore stores the raw CAC score text.
func (s *Session) SetScore(v string) {
	s.edit(func(f *intake.Form) { f.CACScore = v })
}

// SetAge stores the raw age text.
func (s *Session) SetAge(v string) {
	s.edit(func(f *intake.Form) { f.Age = v })
}

// SetDiabetes toggles diabetes mellitus.
func (s *Session) SetDiabetes(v bool) {
	s.edit(func(f *intake.Form) { f.HasDiabetes = v })
}

// SetSmoker toggles current or former smoker.
func (s *Session) SetSmoker(v bool) {
	s.edit(func(f *intake.Form) { f.IsSmoker = v })
}

// SetFamilyHistory toggles family history of premature CAD.
func (s *Session) SetFamilyHistory(v bool) {
	s.edit(func(f *intake.Form) { f.FamilyHistory = v })
}

// CanCalculate reports whether the current form would pass validation.
func (s *Session) CanCalculate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return intake.Valid(s.form)
}

// Calculate validates the form and evaluates it. Invalid input leaves the session in
// the input state without a result.
func (s *Session) Calculate() (scoring.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := intake.Parse(s.form)
	if err != nil {
		s.result = scoring.Recommendation{}
		if s.state == StateResult {
			s.state = StateInput
		}
		return scoring.Recommendation{}, err
	}
	s.result = scoring.Evaluate(in)
	s.state = StateResult
	logrus.WithFields(logrus.Fields{
		"cac_score":  in.CACScore,
		"risk_level": s.result.RiskLevel,
	}).Debug("session calculated recommendation")
	return s.result, nil
}

// Result returns the last recommendation when the session is showing one.
func (s *Session) Result() (scoring.Recommendation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResult {
		return scoring.Recommendation{}, false
	}
	return s.result, true
}

// Reset clears the form and any result.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = intake.Form{}
	s.result = scoring.Recommendation{}
	s.state = StateIdle
}

func (s *Session) edit(apply func(*intake.Form)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.form)
	s.result = scoring.Recommendation{}
	s.state = StateInput
}
