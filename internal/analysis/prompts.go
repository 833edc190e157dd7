package analysis

import (
	"fmt"

	"ats-analyzer/internal/llm"
)

// Temperatures per call. The two JSON calls run near-deterministic; the
// prose calls get a little room.
const (
	tempFullAnalysis float32 = 0.05
	tempSummary      float32 = 0.3
	tempExplanation  float32 = 0.2
	tempCareer       float32 = 0.05
)

const fullAnalysisSystemPrompt = "Return ONLY JSON:\n" +
	`{"ats_score":0,"ats_summary":"","improvements":[],"skills_found":[],"skills_missing":[],"strengths":[],"weaknesses":[],"resume_rewrite":""}`

const careerSystemPrompt = "Return ONLY JSON with keys: " +
	"recommended_roles (list), why_fit (string), " +
	"skills_to_improve (list), resume_upgrade_tips (list)"

// FullAnalysisRequest builds the scored-analysis call. The system message
// pins the exact response schema; extraction still tolerates prose around it.
func FullAnalysisRequest(resumeText, jobDescription string) llm.Request {
	return llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: fullAnalysisSystemPrompt},
			{Role: llm.RoleUser, Content: buildComparePrompt(resumeText, jobDescription)},
		},
		Temperature: tempFullAnalysis,
	}
}

// MatchSummaryRequest builds the one-paragraph comparison call.
func MatchSummaryRequest(resumeText, jobDescription string) llm.Request {
	prompt := fmt.Sprintf("Write one paragraph comparing resume and job description.\n\n%s",
		buildComparePrompt(resumeText, jobDescription))
	return llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: tempSummary,
	}
}

// ScoreExplanationRequest builds the plain-English score rationale call.
func ScoreExplanationRequest(resumeText, jobDescription string, score int) llm.Request {
	prompt := fmt.Sprintf("Explain why ATS score is %d%% in simple English.\n\n%s",
		score, buildComparePrompt(resumeText, jobDescription))
	return llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: tempExplanation,
	}
}

// CareerAdviceRequest builds the career-recommendation call.
func CareerAdviceRequest(resumeText, jobDescription string) llm.Request {
	return llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: careerSystemPrompt},
			{Role: llm.RoleUser, Content: buildComparePrompt(resumeText, jobDescription)},
		},
		Temperature: tempCareer,
	}
}

func buildComparePrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf("Resume:\n%s\n\nJob Description:\n%s", resumeText, jobDescription)
}
