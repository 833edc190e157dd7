package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/shared/metrics"
	"ats-analyzer/internal/shared/telemetry"
)

// OCR abstracts document text recognition.
type OCR interface {
	Text(ctx context.Context, data []byte, mimeType, fileName string) (string, error)
}

// Service runs the analysis pipeline and holds results for the session.
type Service struct {
	Repo Repo
	OCR  OCR
	LLM  llm.Client
}

// Input carries one run's raw inputs.
type Input struct {
	FileName       string
	FileData       []byte
	MimeType       string
	JobDescription string
}

// Run executes the pipeline for one document: text recognition, then four
// sequential model calls, then rating. The chain is strictly ordered and
// never retried; the first model failure aborts the run. Unparseable
// structured output degrades to an empty record instead of failing.
func (s *Service) Run(ctx context.Context, in Input) (Analysis, error) {
	if len(in.FileData) == 0 || strings.TrimSpace(in.JobDescription) == "" {
		return Analysis{}, ErrMissingInput
	}

	metrics.IncAnalysisStarted()
	started := time.Now()

	resumeText, err := s.OCR.Text(ctx, in.FileData, in.MimeType, in.FileName)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, fmt.Errorf("recognize document: %w", err)
	}
	if strings.TrimSpace(resumeText) == "" {
		metrics.IncAnalysisFailed()
		return Analysis{}, ErrEmptyDocument
	}

	analysis := Analysis{
		ID:             uuid.NewString(),
		FileName:       in.FileName,
		ResumeText:     resumeText,
		JobDescription: in.JobDescription,
		CreatedAt:      time.Now().UTC(),
	}

	raw, err := s.complete(ctx, "full_analysis", FullAnalysisRequest(resumeText, in.JobDescription))
	if err != nil {
		return Analysis{}, err
	}
	result, ok := DecodeAnalysisResult(raw)
	if !ok {
		telemetry.Info("analysis.result_empty", map[string]any{"analysis_id": analysis.ID})
	}
	analysis.Result = result
	analysis.ATSScore = ClampScore(result.ATSScore)
	analysis.Rating = RatingFor(result.ATSScore)

	analysis.ScoreExplanation, err = s.complete(ctx, "score_explanation",
		ScoreExplanationRequest(resumeText, in.JobDescription, analysis.ATSScore))
	if err != nil {
		return Analysis{}, err
	}

	analysis.MatchSummary, err = s.complete(ctx, "match_summary",
		MatchSummaryRequest(resumeText, in.JobDescription))
	if err != nil {
		return Analysis{}, err
	}

	careerRaw, err := s.complete(ctx, "career_advice", CareerAdviceRequest(resumeText, in.JobDescription))
	if err != nil {
		return Analysis{}, err
	}
	career, ok := DecodeCareerRecommendation(careerRaw)
	if !ok {
		telemetry.Info("analysis.career_empty", map[string]any{"analysis_id": analysis.ID})
	}
	analysis.Career = career

	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, fmt.Errorf("store analysis: %w", err)
	}

	durationMs := float64(time.Since(started).Microseconds()) / 1000.0
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs)
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id": analysis.ID,
		"file_name":   analysis.FileName,
		"ats_score":   analysis.ATSScore,
		"rating":      analysis.Rating,
		"duration_ms": durationMs,
	})
	return analysis, nil
}

func (s *Service) complete(ctx context.Context, op string, req llm.Request) (string, error) {
	raw, err := s.LLM.Complete(ctx, req)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.llm_failed", map[string]any{
			"op":    op,
			"error": sanitizeError(err),
		})
		return "", &LLMError{Op: op, Err: err}
	}
	return raw, nil
}

// Get returns a stored analysis by ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	return s.Repo.GetByID(ctx, analysisID)
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	if len(msg) > 500 {
		msg = msg[:500]
	}
	return msg
}
