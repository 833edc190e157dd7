package analysis

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject returns the span from the first opening brace to the
// last closing brace of raw, if that span is valid JSON. The scan is
// greedy rather than balanced: it assumes the response carries exactly one
// top-level object, and extra braces around it produce a rejected span.
func ExtractJSONObject(raw string) (string, bool) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return "", false
	}
	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	candidate := payload[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", false
	}
	return candidate, true
}

// DecodeAnalysisResult recovers an AnalysisResult from free-form model
// output. Extraction or decode failure yields the zero record and false;
// individual fields of the wrong type default to their empty form.
func DecodeAnalysisResult(raw string) (AnalysisResult, bool) {
	fields, ok := decodeObject(raw)
	if !ok {
		return AnalysisResult{}, false
	}
	return AnalysisResult{
		ATSScore:      toScore(fields["ats_score"]),
		ATSSummary:    toString(fields["ats_summary"]),
		Improvements:  toStrings(fields["improvements"]),
		SkillsFound:   toStrings(fields["skills_found"]),
		SkillsMissing: toStrings(fields["skills_missing"]),
		Strengths:     toStrings(fields["strengths"]),
		Weaknesses:    toStrings(fields["weaknesses"]),
		ResumeRewrite: toString(fields["resume_rewrite"]),
	}, true
}

// DecodeCareerRecommendation recovers a CareerRecommendation from
// free-form model output with the same defaulting discipline.
func DecodeCareerRecommendation(raw string) (CareerRecommendation, bool) {
	fields, ok := decodeObject(raw)
	if !ok {
		return CareerRecommendation{}, false
	}
	return CareerRecommendation{
		RecommendedRoles:  toStrings(fields["recommended_roles"]),
		WhyFit:            toString(fields["why_fit"]),
		SkillsToImprove:   toStrings(fields["skills_to_improve"]),
		ResumeUpgradeTips: toStrings(fields["resume_upgrade_tips"]),
	}, true
}

func decodeObject(raw string) (map[string]any, bool) {
	candidate, ok := ExtractJSONObject(raw)
	if !ok {
		return nil, false
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toScore(v any) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int(f)
}
