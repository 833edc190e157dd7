package analysis

import (
	"strings"
	"testing"

	"ats-analyzer/internal/llm"
)

func TestFullAnalysisRequestShape(t *testing.T) {
	req := FullAnalysisRequest("resume body", "job body")

	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	system, user := req.Messages[0], req.Messages[1]
	if system.Role != llm.RoleSystem || user.Role != llm.RoleUser {
		t.Fatalf("unexpected roles %q/%q", system.Role, user.Role)
	}
	if !strings.HasPrefix(system.Content, "Return ONLY JSON:") {
		t.Fatalf("system prompt missing JSON instruction: %q", system.Content)
	}
	if !strings.Contains(system.Content, `"ats_score":0`) || !strings.Contains(system.Content, `"resume_rewrite":""`) {
		t.Fatalf("system prompt missing schema fields: %q", system.Content)
	}
	if !strings.Contains(user.Content, "Resume:\nresume body") || !strings.Contains(user.Content, "Job Description:\njob body") {
		t.Fatalf("user prompt missing inputs: %q", user.Content)
	}
	if req.Temperature != 0.05 {
		t.Fatalf("expected temperature 0.05, got %v", req.Temperature)
	}
}

func TestMatchSummaryRequest(t *testing.T) {
	req := MatchSummaryRequest("resume body", "job body")

	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected single user message, got %+v", req.Messages)
	}
	if !strings.HasPrefix(req.Messages[0].Content, "Write one paragraph comparing resume and job description.") {
		t.Fatalf("unexpected prompt: %q", req.Messages[0].Content)
	}
	if !strings.Contains(req.Messages[0].Content, "resume body") {
		t.Fatalf("prompt missing resume text")
	}
	if req.Temperature != 0.3 {
		t.Fatalf("expected temperature 0.3, got %v", req.Temperature)
	}
}

func TestScoreExplanationRequest(t *testing.T) {
	req := ScoreExplanationRequest("resume body", "job body", 72)

	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected single user message, got %+v", req.Messages)
	}
	prompt := req.Messages[0].Content
	if !strings.HasPrefix(prompt, "Explain why ATS score is 72% in simple English.") {
		t.Fatalf("unexpected prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "Resume:\nresume body") || !strings.Contains(prompt, "Job Description:\njob body") {
		t.Fatalf("prompt missing inputs: %q", prompt)
	}
	if req.Temperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", req.Temperature)
	}
}

func TestCareerAdviceRequest(t *testing.T) {
	req := CareerAdviceRequest("resume body", "job body")

	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	system := req.Messages[0].Content
	for _, key := range []string{"recommended_roles", "why_fit", "skills_to_improve", "resume_upgrade_tips"} {
		if !strings.Contains(system, key) {
			t.Fatalf("system prompt missing key %q: %q", key, system)
		}
	}
	if req.Temperature != 0.05 {
		t.Fatalf("expected temperature 0.05, got %v", req.Temperature)
	}
}
