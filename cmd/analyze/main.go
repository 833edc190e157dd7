package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ats-analyzer/internal/analysis"
	"ats-analyzer/internal/jobpost"
	"ats-analyzer/internal/llm/groq"
	"ats-analyzer/internal/ocr"
	"ats-analyzer/internal/report"
	"ats-analyzer/internal/shared/config"
)

var (
	resumePath string
	jdText     string
	jdFile     string
	jdURL      string
	outDir     string
	asJSON     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "analyze",
		Short:        "Score a resume against a job description",
		SilenceUsage: true,
		RunE:         runAnalyze,
	}
	rootCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to resume file (pdf, docx or txt)")
	rootCmd.Flags().StringVar(&jdText, "jd", "", "Job description text")
	rootCmd.Flags().StringVarP(&jdFile, "jd-file", "f", "", "Path to a job description text file")
	rootCmd.Flags().StringVarP(&jdURL, "jd-url", "u", "", "Job posting URL to fetch")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write the PDF report and rewritten resume")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the full analysis as JSON")
	rootCmd.MarkFlagRequired("resume")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	jobDescription, err := resolveJobDescription(ctx)
	if err != nil {
		return err
	}

	resumeBytes, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	if cfg.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is not set")
	}
	client, err := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL,
		time.Duration(cfg.GroqTimeoutSeconds)*time.Second)
	if err != nil {
		return err
	}

	svc := &analysis.Service{
		Repo: analysis.NewMemoryRepo(1),
		OCR:  ocr.NewEngine(cfg.TesseractCmd, cfg.PdftoppmCmd, cfg.OCRLanguages),
		LLM:  client,
	}

	fmt.Printf("%s Analyzing %s...\n", color.CyanString("→"), filepath.Base(resumePath))
	result, err := svc.Run(ctx, analysis.Input{
		FileName:       filepath.Base(resumePath),
		FileData:       resumeBytes,
		JobDescription: jobDescription,
	})
	if err != nil {
		return err
	}

	if asJSON {
		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(payload))
	} else {
		printAnalysis(result)
	}

	if outDir != "" {
		return writeArtifacts(result)
	}
	return nil
}

func resolveJobDescription(ctx context.Context) (string, error) {
	switch {
	case strings.TrimSpace(jdText) != "":
		return jdText, nil
	case jdFile != "":
		payload, err := os.ReadFile(jdFile)
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
		return string(payload), nil
	case jdURL != "":
		fmt.Printf("%s Fetching job posting...\n", color.CyanString("→"))
		return jobpost.NewFetcher(0).Fetch(ctx, jdURL)
	default:
		return "", fmt.Errorf("provide one of --jd, --jd-file or --jd-url")
	}
}

func printAnalysis(result analysis.Analysis) {
	scoreColor := color.RedString
	if result.ATSScore >= 70 {
		scoreColor = color.GreenString
	} else if result.ATSScore >= 50 {
		scoreColor = color.YellowString
	}

	fmt.Println()
	fmt.Println(color.New(color.Bold, color.Underline).Sprint("ATS Analysis"))
	fmt.Printf("Score: %s%% (%s)\n", scoreColor("%d", result.ATSScore), result.Rating)

	if result.ScoreExplanation != "" {
		fmt.Printf("\n%s\n", result.ScoreExplanation)
	}
	if result.MatchSummary != "" {
		fmt.Printf("\n%s\n", result.MatchSummary)
	}

	printItems(color.GreenString("Skills Found:"), color.GreenString("✓"), result.Result.SkillsFound)
	printItems(color.RedString("Missing Skills:"), color.RedString("✗"), result.Result.SkillsMissing)
	printItems("Strengths:", color.GreenString("•"), result.Result.Strengths)
	printItems("Weaknesses:", color.YellowString("•"), result.Result.Weaknesses)
	printItems("Improvements:", color.CyanString("•"), result.Result.Improvements)

	career := result.Career
	if len(career.RecommendedRoles) > 0 || career.WhyFit != "" {
		fmt.Printf("\n%s\n", color.New(color.Bold).Sprint("Career Fit"))
		printItems("Recommended Roles:", color.GreenString("•"), career.RecommendedRoles)
		if career.WhyFit != "" {
			fmt.Printf("\n%s\n", career.WhyFit)
		}
		printItems("Skills to Improve:", color.YellowString("•"), career.SkillsToImprove)
		printItems("Resume Upgrade Tips:", color.CyanString("•"), career.ResumeUpgradeTips)
	}
}

func printItems(heading, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s\n", heading)
	for _, item := range items {
		fmt.Printf("  %s %s\n", bullet, item)
	}
}

func writeArtifacts(result analysis.Analysis) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	pdfBytes, err := report.BuildPDF(report.Data{
		ATSScore:      result.ATSScore,
		SkillsFound:   result.Result.SkillsFound,
		SkillsMissing: result.Result.SkillsMissing,
		Strengths:     result.Result.Strengths,
		Weaknesses:    result.Result.Weaknesses,
		Improvements:  result.Result.Improvements,
	})
	if err != nil {
		return err
	}
	reportPath := filepath.Join(outDir, "ATS_Report.pdf")
	if err := os.WriteFile(reportPath, pdfBytes, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s Wrote %s\n", color.GreenString("✓"), reportPath)

	if strings.TrimSpace(result.Result.ResumeRewrite) != "" {
		rewritePath := filepath.Join(outDir, "rewritten_resume.txt")
		if err := os.WriteFile(rewritePath, []byte(result.Result.ResumeRewrite), 0o644); err != nil {
			return err
		}
		fmt.Printf("%s Wrote %s\n", color.GreenString("✓"), rewritePath)

		docxBytes, err := report.BuildDocx("Rewritten Resume", result.Result.ResumeRewrite)
		if err != nil {
			return err
		}
		docxPath := filepath.Join(outDir, "rewritten_resume.docx")
		if err := os.WriteFile(docxPath, docxBytes, 0o644); err != nil {
			return err
		}
		fmt.Printf("%s Wrote %s\n", color.GreenString("✓"), docxPath)
	}
	return nil
}
