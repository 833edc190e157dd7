package analysis

import "time"

// AnalysisResult is the structured record recovered from the full-analysis
// response. Fields the model omits keep their zero values.
type AnalysisResult struct {
	ATSScore      int      `json:"ats_score"`
	ATSSummary    string   `json:"ats_summary"`
	Improvements  []string `json:"improvements"`
	SkillsFound   []string `json:"skills_found"`
	SkillsMissing []string `json:"skills_missing"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	ResumeRewrite string   `json:"resume_rewrite"`
}

// CareerRecommendation is the structured record recovered from the
// career-advice response.
type CareerRecommendation struct {
	RecommendedRoles  []string `json:"recommended_roles"`
	WhyFit            string   `json:"why_fit"`
	SkillsToImprove   []string `json:"skills_to_improve"`
	ResumeUpgradeTips []string `json:"resume_upgrade_tips"`
}

// Analysis is one completed run, held in memory for the session that
// produced it so artifact downloads can be served afterwards.
type Analysis struct {
	ID               string               `json:"id"`
	FileName         string               `json:"fileName"`
	ResumeText       string               `json:"-"`
	JobDescription   string               `json:"-"`
	ATSScore         int                  `json:"atsScore"`
	Rating           string               `json:"rating"`
	Result           AnalysisResult       `json:"result"`
	MatchSummary     string               `json:"matchSummary"`
	ScoreExplanation string               `json:"scoreExplanation"`
	Career           CareerRecommendation `json:"career"`
	CreatedAt        time.Time            `json:"createdAt"`
}
