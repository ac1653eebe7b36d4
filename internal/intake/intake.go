package intake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cac-decision/internal/scoring"
)

// ErrInvalidInput is wrapped by every validation failure returned from Parse.
var ErrInvalidInput = errors.New("invalid input")

// Field names as they appear on the input form.
const (
	FieldCACScore = "cacScore"
	FieldAge      = "age"
)

// MaxPlausibleAge is the upper bound offered by the input form. It is not enforced.
const MaxPlausibleAge = 120

// Form is the raw, unvalidated input as collected from a user.
type Form struct {
	CACScore      string
	Age           string
	HasDiabetes   bool
	IsSmoker      bool
	FamilyHistory bool
}

// FieldError describes why a single form field was rejected.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

// Parse validates the form and converts it into engine input. All field problems are
// reported together.
func Parse(form Form) (scoring.PatientInput, error) {
	var errs []error

	score, err := parseInt(FieldCACScore, form.CACScore)
	if err != nil {
		errs = append(errs, err)
	} else if score < 0 {
		errs = append(errs, &FieldError{Field: FieldCACScore, Value: form.CACScore, Reason: "must be zero or greater"})
	}

	age, err := parseInt(FieldAge, form.Age)
	if err != nil {
		errs = append(errs, err)
	} else if age <= 0 {
		errs = append(errs, &FieldError{Field: FieldAge, Value: form.Age, Reason: "must be a positive integer"})
	}

	if len(errs) > 0 {
		return scoring.PatientInput{}, errors.Join(errs...)
	}
	return scoring.PatientInput{
		CACScore:      score,
		Age:           age,
		HasDiabetes:   form.HasDiabetes,
		IsSmoker:      form.IsSmoker,
		FamilyHistory: form.FamilyHistory,
	}, nil
}

// Valid reports whether Parse would accept the form.
func Valid(form Form) bool {
	_, err := Parse(form)
	return err == nil
}

// FieldErrors flattens an error returned by Parse into its field errors.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}

// Warnings lists advisory notes about accepted but unusual input.
func Warnings(in scoring.PatientInput) []string {
	var out []string
	if in.Age > MaxPlausibleAge {
		out = append(out, fmt.Sprintf("age %d exceeds the expected maximum of %d", in.Age, MaxPlausibleAge))
	}
	return out
}

func parseInt(field, raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, &FieldError{Field: field, Reason: "is required"}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, &FieldError{Field: field, Value: raw, Reason: "is out of range"}
		}
		return 0, &FieldError{Field: field, Value: raw, Reason: "must be a whole number"}
	}
	return n, nil
}
