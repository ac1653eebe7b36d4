package session

import (
	"errors"
	"sync"
	"testing"

	"cac-decision/internal/intake"
	"cac-decision/internal/scoring"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()
	if s.State() != StateIdle {
		t.Fatalf("expected idle got %s", s.State())
	}
	if _, ok := s.Result(); ok {
		t.Fatalf("idle session should not have a result")
	}

	s.SetScore("500")
	if s.State() != StateInput {
		t.Fatalf("expected input got %s", s.State())
	}
	if s.CanCalculate() {
		t.Fatalf("age missing, should not be calculable")
	}

	s.SetAge("75")
	rec, err := s.Calculate()
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if rec.RiskLevel != scoring.RiskHigh {
		t.Fatalf("expected high risk got %s", rec.RiskLevel)
	}
	if s.State() != StateResult {
		t.Fatalf("expected result got %s", s.State())
	}
	shown, ok := s.Result()
	if !ok || shown.FollowUp != scoring.FollowUpCardiology {
		t.Fatalf("unexpected shown result %+v", shown)
	}

	s.SetSmoker(true)
	if _, ok := s.Result(); ok {
		t.Fatalf("editing should discard the previous result")
	}
	if s.State() != StateInput {
		t.Fatalf("expected input after edit got %s", s.State())
	}

	s.Reset()
	if s.State() != StateIdle {
		t.Fatalf("expected idle after reset got %s", s.State())
	}
	if s.Form() != (intake.Form{}) {
		t.Fatalf("expected empty form after reset got %+v", s.Form())
	}
}

func TestSessionCalculateInvalid(t *testing.T) {
	s := New()
	s.SetScore("-3")
	s.SetAge("40")
	_, err := s.Calculate()
	if !errors.Is(err, intake.ErrInvalidInput) {
		t.Fatalf("expected invalid input error got %v", err)
	}
	if s.State() != StateInput {
		t.Fatalf("expected input state got %s", s.State())
	}
	if _, ok := s.Result(); ok {
		t.Fatalf("invalid calculation should not produce a result")
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := New()
	s.SetScore("0")
	s.SetAge("40")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetDiabetes(i%2 == 0)
			_, _ = s.Calculate()
			_, _ = s.Result()
		}(i)
	}
	wg.Wait()

	if _, err := s.Calculate(); err != nil {
		t.Fatalf("calculate: %v", err)
	}
}
