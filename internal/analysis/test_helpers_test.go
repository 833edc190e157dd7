package analysis

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/gin-gonic/gin"

	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/shared/telemetry"
)

type stubOCR struct {
	text string
	err  error
}

func (s stubOCR) Text(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	return s.text, s.err
}

type stubFetcher struct {
	text string
	err  error
}

func (s stubFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	return s.text, s.err
}

// scriptedLLM replays canned responses in call order.
type scriptedLLM struct {
	responses []string
	failAt    int // 1-based index of the call that fails, 0 for none
	failErr   error
	calls     []llm.Request
}

func (s *scriptedLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.calls = append(s.calls, req)
	n := len(s.calls)
	if s.failAt != 0 && n == s.failAt {
		return "", s.failErr
	}
	if n <= len(s.responses) {
		return s.responses[n-1], nil
	}
	return "", nil
}

const fullAnalysisResponse = `{"ats_score": 72, "ats_summary": "Good fit.", "improvements": ["Quantify impact"], "skills_found": ["Go", "SQL"], "skills_missing": ["Kubernetes"], "strengths": ["Ownership"], "weaknesses": ["Brevity"], "resume_rewrite": "JANE DOE\nSenior Engineer"}`

const careerResponse = `{"recommended_roles": ["Platform Engineer"], "why_fit": "Systems background.", "skills_to_improve": ["Kubernetes"], "resume_upgrade_tips": ["Lead with impact"]}`

func happyPathResponses() []string {
	return []string{
		fullAnalysisResponse,
		"The resume covers most core requirements.",
		"Strong overlap on backend skills.",
		careerResponse,
	}
}

func quietTelemetry(t *testing.T) {
	t.Helper()
	prev := telemetry.SetOutput(io.Discard)
	t.Cleanup(func() { telemetry.SetOutput(prev) })
}

func newTestService(ocrText string, client llm.Client) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo(10)
	svc := &Service{Repo: repo, OCR: stubOCR{text: ocrText}, LLM: client}
	return svc, repo
}

func newAnalysisRouter(t *testing.T, handler *Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router
}

func multipartBody(t *testing.T, fileField, fileName string, fileData []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileField != "" {
		fw, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fileData); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}
