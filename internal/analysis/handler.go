package analysis

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/report"
	"ats-analyzer/internal/shared/metrics"
	"ats-analyzer/internal/shared/server/respond"
	"ats-analyzer/internal/shared/util"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// JobPostFetcher resolves a job-posting URL to its text.
type JobPostFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc            *Service
	Fetcher        JobPostFetcher
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, fetcher JobPostFetcher, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{Svc: svc, Fetcher: fetcher, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group. Extra
// middleware applies to the create route only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, createMiddleware ...gin.HandlerFunc) {
	rg.POST("/analyses", append(createMiddleware, h.create)...)
	rg.GET("/analyses/:id", h.get)
	rg.GET("/analyses/:id/report.pdf", h.downloadReport)
	rg.GET("/analyses/:id/rewrite.txt", h.downloadRewriteText)
	rg.GET("/analyses/:id/rewrite.docx", h.downloadRewriteDocx)
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	jobDescription := strings.TrimSpace(c.PostForm("job_description"))
	jobURL := strings.TrimSpace(c.PostForm("job_url"))
	if jobDescription == "" && jobURL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job description or posting url is required", nil)
		return
	}
	if jobDescription == "" {
		if h.Fetcher == nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "job posting fetch is not available", nil)
			return
		}
		fetched, err := h.Fetcher.Fetch(c.Request.Context(), jobURL)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to fetch job posting", gin.H{"url": jobURL})
			return
		}
		jobDescription = fetched
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	analysis, err := h.Svc.Run(c.Request.Context(), Input{
		FileName:       fileName,
		FileData:       data,
		MimeType:       fileHeader.Header.Get("Content-Type"),
		JobDescription: jobDescription,
	})
	if err != nil {
		var llmErr *LLMError
		switch {
		case errors.Is(err, ErrMissingInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Please upload resume and job description", nil)
		case errors.Is(err, ErrEmptyDocument):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_error", "no text could be recognized in the document", nil)
		case errors.As(err, &llmErr):
			msg := "analysis backend request failed"
			if errors.Is(err, llm.ErrNotConfigured) {
				msg = "analysis backend is not configured"
			}
			respond.Error(c, http.StatusBadGateway, "llm_error", msg, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze resume", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	respond.OK(c, analysis)
}

func (h *Handler) get(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) downloadReport(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}
	data, err := report.BuildPDF(report.Data{
		ATSScore:      analysis.ATSScore,
		SkillsFound:   analysis.Result.SkillsFound,
		SkillsMissing: analysis.Result.SkillsMissing,
		Strengths:     analysis.Result.Strengths,
		Weaknesses:    analysis.Result.Weaknesses,
		Improvements:  analysis.Result.Improvements,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render report", nil)
		return
	}
	metrics.IncDownload()
	respond.Blob(c, mimePDF, "ATS_Report.pdf", data)
}

func (h *Handler) downloadRewriteText(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}
	if strings.TrimSpace(analysis.Result.ResumeRewrite) == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "no rewritten resume for this analysis", nil)
		return
	}
	metrics.IncDownload()
	respond.Blob(c, "text/plain; charset=utf-8", "rewritten_resume.txt", []byte(analysis.Result.ResumeRewrite))
}

func (h *Handler) downloadRewriteDocx(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}
	if strings.TrimSpace(analysis.Result.ResumeRewrite) == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "no rewritten resume for this analysis", nil)
		return
	}
	data, err := report.BuildDocx("Rewritten Resume", analysis.Result.ResumeRewrite)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render document", nil)
		return
	}
	metrics.IncDownload()
	respond.Blob(c, mimeDocx, "rewritten_resume.docx", data)
}

func (h *Handler) loadAnalysis(c *gin.Context) (Analysis, bool) {
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return Analysis{}, false
	}
	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return Analysis{}, false
	}
	return analysis, true
}
