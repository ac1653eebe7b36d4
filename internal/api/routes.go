package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/metric"

	"cac-decision/internal/intake"
	"cac-decision/internal/present"
	"cac-decision/internal/scoring"
)

const riskLevelKey = "riskLevel"

// Config defines server dependencies.
type Config struct {
	AllowedOrigins []string
	// Meter overrides the global OpenTelemetry meter.
	Meter metric.Meter
}

// Server wires HTTP handlers to the recommendation engine.
type Server struct {
	allowedOrigins []string
	metrics        *evaluationMetrics
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	metrics, err := newEvaluationMetrics(cfg.Meter)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	logrus.WithField("allowed_origins", cfg.AllowedOrigins).Info("api server configured")
	return &Server{
		allowedOrigins: cfg.AllowedOrigins,
		metrics:        metrics,
	}, nil
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	corsCfg := cors.DefaultConfig()
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsCfg.ExposeHeaders = []string{requestIDHeader}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/api/healthz", s.handleHealth)
	r.GET("/api/config", s.handleConfig)

	api := r.Group("/api")
	{
		api.GET("/reference", s.handleReference)
		api.POST("/evaluate", s.handleEvaluate)
		api.GET("/evaluate", s.handleEvaluateQuery)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		Bands:            scoring.Bands(),
		StatinAgeCutoff:  scoring.StatinAgeCutoff,
		AspirinAgeCutoff: scoring.AspirinAgeCutoff,
		MaxPlausibleAge:  intake.MaxPlausibleAge,
		AllowedOrigins:   s.allowedOrigins,
	})
}

func (s *Server) handleReference(c *gin.Context) {
	c.JSON(http.StatusOK, present.Reference())
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			s.metrics.recordRejected(c.Request.Context(), "missing_field")
			s.renderBindingErrors(c, verrs)
			return
		}
		s.metrics.recordRejected(c.Request.Context(), "malformed_body")
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	s.evaluate(c, req.Form())
}

func (s *Server) handleEvaluateQuery(c *gin.Context) {
	form := intake.Form{
		CACScore: c.Query("cacScore"),
		Age:      c.Query("age"),
	}
	flags := []struct {
		name string
		dst  *bool
	}{
		{"diabetes", &form.HasDiabetes},
		{"smoker", &form.IsSmoker},
		{"familyHistory", &form.FamilyHistory},
	}
	for _, f := range flags {
		raw := strings.TrimSpace(c.Query(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.metrics.recordRejected(c.Request.Context(), "malformed_flag")
			s.renderError(c, http.StatusBadRequest, fmt.Errorf("%s: expected boolean, got %q", f.name, raw))
			return
		}
		*f.dst = v
	}
	s.evaluate(c, form)
}

func (s *Server) evaluate(c *gin.Context, form intake.Form) {
	start := time.Now()
	in, err := intake.Parse(form)
	if err != nil {
		s.metrics.recordRejected(c.Request.Context(), "invalid_input")
		s.renderValidationError(c, err)
		return
	}

	rec := scoring.Evaluate(in)
	s.metrics.recordEvaluation(c.Request.Context(), rec.RiskLevel, time.Since(start))
	c.Set(riskLevelKey, string(rec.RiskLevel))

	c.JSON(http.StatusOK, newEvaluationResponse(requestIDFrom(c), in, rec))
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) renderValidationError(c *gin.Context, err error) {
	_ = c.Error(err)
	resp := ValidationErrorResponse{Error: intake.ErrInvalidInput.Error()}
	for _, fe := range intake.FieldErrors(err) {
		resp.Fields = append(resp.Fields, FieldErrorDTO{Field: fe.Field, Reason: fe.Reason})
	}
	c.JSON(http.StatusBadRequest, resp)
}

var bindingFieldNames = map[string]string{
	"CACScore": intake.FieldCACScore,
	"Age":      intake.FieldAge,
}

func (s *Server) renderBindingErrors(c *gin.Context, verrs validator.ValidationErrors) {
	_ = c.Error(verrs)
	resp := ValidationErrorResponse{Error: intake.ErrInvalidInput.Error()}
	for _, fe := range verrs {
		name, ok := bindingFieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		reason := "is invalid"
		if fe.Tag() == "required" {
			reason = "is required"
		}
		resp.Fields = append(resp.Fields, FieldErrorDTO{Field: name, Reason: reason})
	}
	c.JSON(http.StatusBadRequest, resp)
}
