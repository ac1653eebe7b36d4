package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cac-decision/internal/intake"
	"cac-decision/internal/present"
	"cac-decision/internal/scoring"
)

// FormValue accepts either a JSON string or a JSON number and keeps its text so the
// intake rules decide what is a valid integer.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected number or string, got %s", string(data))
	}
	*v = FormValue(n.String())
	return nil
}

// EvaluateRequest is the JSON body for POST /api/evaluate.
type EvaluateRequest struct {
	CACScore      FormValue `json:"cacScore" binding:"required"`
	Age           FormValue `json:"age" binding:"required"`
	HasDiabetes   bool      `json:"hasDiabetes"`
	IsSmoker      bool      `json:"isSmoker"`
	FamilyHistory bool      `json:"familyHistory"`
}

// Form converts the request into an intake form.
func (r EvaluateRequest) Form() intake.Form {
	return intake.Form{
		CACScore:      string(r.CACScore),
		Age:           string(r.Age),
		HasDiabetes:   r.HasDiabetes,
		IsSmoker:      r.IsSmoker,
		FamilyHistory: r.FamilyHistory,
	}
}

// EvaluationResponse is returned for a successful evaluation.
type EvaluationResponse struct {
	RequestID      string                 `json:"requestId"`
	Input          scoring.PatientInput   `json:"input"`
	Recommendation scoring.Recommendation `json:"recommendation"`
	Tone           present.Tone           `json:"tone"`
	Notes          []string               `json:"notes"`
	Warnings       []string               `json:"warnings,omitempty"`
}

// FieldErrorDTO reports one rejected input field.
type FieldErrorDTO struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrorResponse is returned with 400 for invalid patient input.
type ValidationErrorResponse struct {
	Error  string          `json:"error"`
	Fields []FieldErrorDTO `json:"fields"`
}

// ConfigResponse exposes the thresholds the engine applies.
type ConfigResponse struct {
	Bands            []scoring.Band `json:"bands"`
	StatinAgeCutoff  int            `json:"statinAgeCutoff"`
	AspirinAgeCutoff int            `json:"aspirinAgeCutoff"`
	MaxPlausibleAge  int            `json:"maxPlausibleAge"`
	AllowedOrigins   []string       `json:"allowedOrigins"`
}

func newEvaluationResponse(requestID string, in scoring.PatientInput, rec scoring.Recommendation) EvaluationResponse {
	notes := rec.Notes
	if notes == nil {
		notes = []string{}
	}
	return EvaluationResponse{
		RequestID:      requestID,
		Input:          in,
		Recommendation: rec,
		Tone:           present.Treatment(rec.RiskLevel),
		Notes:          notes,
		Warnings:       intake.Warnings(in),
	}
}
