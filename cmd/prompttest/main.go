package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ats-analyzer/internal/analysis"
	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/llm/groq"
	"ats-analyzer/internal/ocr"
	"ats-analyzer/internal/shared/config"
)

// prompttest runs a single prompt against the live model so prompt edits
// can be checked without going through the whole pipeline.
func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf, docx or txt)")
	jdPath := flag.String("jd", "", "Path to job description file")
	promptName := flag.String("prompt", "full", "Prompt to run: full, summary, explain or career")
	score := flag.Int("score", 72, "ATS score to explain (explain prompt only)")
	outPath := flag.String("out", "", "Path to write the raw model output (optional)")
	model := flag.String("model", cfg.GroqModel, "Groq model")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}
	if strings.TrimSpace(*jdPath) == "" {
		exitErr("job description path is required")
	}

	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}

	engine := ocr.NewEngine(cfg.TesseractCmd, cfg.PdftoppmCmd, cfg.OCRLanguages)
	resumeText, err := engine.Text(context.Background(), resumeBytes, "", filepath.Base(*resumePath))
	if err != nil {
		exitErr(fmt.Sprintf("recognize resume text: %v", err))
	}

	var req llm.Request
	structured := false
	switch strings.TrimSpace(*promptName) {
	case "full":
		req = analysis.FullAnalysisRequest(resumeText, string(jdBytes))
		structured = true
	case "summary":
		req = analysis.MatchSummaryRequest(resumeText, string(jdBytes))
	case "explain":
		req = analysis.ScoreExplanationRequest(resumeText, string(jdBytes), *score)
	case "career":
		req = analysis.CareerAdviceRequest(resumeText, string(jdBytes))
		structured = true
	default:
		exitErr(fmt.Sprintf("unsupported prompt: %s", *promptName))
	}

	if cfg.GroqAPIKey == "" {
		exitErr("GROQ_API_KEY is not set")
	}
	client, err := groq.NewClient(cfg.GroqAPIKey, *model, cfg.GroqBaseURL,
		time.Duration(cfg.GroqTimeoutSeconds)*time.Second)
	if err != nil {
		exitErr(err.Error())
	}

	raw, err := client.Complete(context.Background(), req)
	if err != nil {
		exitErr(fmt.Sprintf("llm complete: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(raw), 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	output := raw
	if structured {
		candidate, ok := analysis.ExtractJSONObject(raw)
		if !ok {
			fmt.Fprintln(os.Stderr, "warning: no JSON object found in response, printing raw output")
		} else {
			pretty, err := prettyJSON([]byte(candidate))
			if err != nil {
				exitErr(fmt.Sprintf("format json: %v", err))
			}
			output = string(pretty)
		}
	}

	if _, err := os.Stdout.WriteString(output); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(output) == 0 || output[len(output)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
