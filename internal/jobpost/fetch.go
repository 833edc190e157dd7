// Package jobpost resolves job-posting URLs to plain text suitable for
// matching against a resume. Known ATS hosts go through their public
// APIs; everything else falls back to scraping the page.
package jobpost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	maxDescriptionBytes = 15000
)

var whitespacePattern = regexp.MustCompile(`\s+`)
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Fetcher downloads and extracts job descriptions. The API base URLs
// are fields so tests can point them at local servers.
type Fetcher struct {
	Client            *http.Client
	GreenhouseAPIBase string
	LeverAPIBase      string
	AshbyAPIBase      string
}

// NewFetcher builds a Fetcher with production API endpoints.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Fetcher{
		Client:            &http.Client{Timeout: timeout},
		GreenhouseAPIBase: "https://boards-api.greenhouse.io",
		LeverAPIBase:      "https://api.lever.co",
		AshbyAPIBase:      "https://api.ashbyhq.com",
	}
}

type routeFunc func(ctx context.Context, f *Fetcher, u *url.URL, parts []string) (string, error)

var atsRoutes = map[string]routeFunc{
	"boards.greenhouse.io":     routeGreenhouse,
	"job-boards.greenhouse.io": routeGreenhouse,
	"jobs.lever.co":            routeLever,
	"jobs.ashbyhq.com":         routeAshby,
}

// Fetch resolves a job-posting URL to its description text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	parts := splitPath(u.Path)
	if route, ok := atsRoutes[u.Hostname()]; ok {
		return route(ctx, f, u, parts)
	}

	// Greenhouse boards embedded on company sites carry a gh_jid param.
	if ghJobID := u.Query().Get("gh_jid"); ghJobID != "" {
		company := strings.Split(u.Hostname(), ".")[0]
		if text, err := f.greenhouseJob(ctx, company, ghJobID); err == nil {
			return text, nil
		}
	}

	return f.genericPage(ctx, u.String())
}

func routeGreenhouse(ctx context.Context, f *Fetcher, u *url.URL, parts []string) (string, error) {
	// Standard board path: /{company}/jobs/{id}
	for i, p := range parts {
		if p == "jobs" && i > 0 && i+1 < len(parts) {
			return f.greenhouseJob(ctx, parts[i-1], parts[i+1])
		}
	}
	return f.genericPage(ctx, u.String())
}

func routeLever(ctx context.Context, f *Fetcher, u *url.URL, parts []string) (string, error) {
	// /{company}/{id}
	if len(parts) >= 2 {
		return f.leverJob(ctx, parts[0], parts[1])
	}
	return f.genericPage(ctx, u.String())
}

func routeAshby(ctx context.Context, f *Fetcher, u *url.URL, parts []string) (string, error) {
	// /{company}/{id}
	if len(parts) >= 2 {
		return f.ashbyJob(ctx, parts[0], parts[1])
	}
	return f.genericPage(ctx, u.String())
}

func (f *Fetcher) greenhouseJob(ctx context.Context, company, jobID string) (string, error) {
	apiURL := fmt.Sprintf("%s/v1/boards/%s/jobs/%s", f.GreenhouseAPIBase, company, jobID)
	resp, err := f.get(ctx, apiURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("greenhouse api: http %d", resp.StatusCode)
	}

	var job struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return "", fmt.Errorf("greenhouse api: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", job.Title)
	fmt.Fprintf(&sb, "Company: %s\n", company)
	if job.Location.Name != "" {
		fmt.Fprintf(&sb, "Location: %s\n", job.Location.Name)
	}
	fmt.Fprintf(&sb, "\n%s", stripHTML(job.Content))
	return sb.String(), nil
}

func (f *Fetcher) leverJob(ctx context.Context, company, jobID string) (string, error) {
	apiURL := fmt.Sprintf("%s/v0/postings/%s/%s", f.LeverAPIBase, company, jobID)
	resp, err := f.get(ctx, apiURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lever api: http %d", resp.StatusCode)
	}

	var job struct {
		Text       string `json:"text"`
		Categories struct {
			Location string `json:"location"`
			Team     string `json:"team"`
		} `json:"categories"`
		Description      string `json:"description"`
		DescriptionPlain string `json:"descriptionPlain"`
		Lists            []struct {
			Text    string `json:"text"`
			Content string `json:"content"`
		} `json:"lists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return "", fmt.Errorf("lever api: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", job.Text)
	fmt.Fprintf(&sb, "Company: %s\n", company)
	if job.Categories.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", job.Categories.Location)
	}
	if job.Categories.Team != "" {
		fmt.Fprintf(&sb, "Team: %s\n", job.Categories.Team)
	}
	if job.DescriptionPlain != "" {
		fmt.Fprintf(&sb, "\n%s\n", job.DescriptionPlain)
	} else {
		fmt.Fprintf(&sb, "\n%s\n", stripHTML(job.Description))
	}
	for _, list := range job.Lists {
		fmt.Fprintf(&sb, "\n%s:\n%s\n", list.Text, stripHTML(list.Content))
	}
	return sb.String(), nil
}

func (f *Fetcher) ashbyJob(ctx context.Context, company, jobID string) (string, error) {
	apiURL := fmt.Sprintf("%s/posting-api/job-board/%s", f.AshbyAPIBase, company)
	resp, err := f.get(ctx, apiURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ashby api: http %d", resp.StatusCode)
	}

	var board struct {
		Jobs []struct {
			ID               string `json:"id"`
			Title            string `json:"title"`
			DescriptionPlain string `json:"descriptionPlain"`
		} `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return "", fmt.Errorf("ashby api: %w", err)
	}
	for _, job := range board.Jobs {
		if job.ID == jobID {
			return fmt.Sprintf("Title: %s\nCompany: %s\n\n%s", job.Title, company, job.DescriptionPlain), nil
		}
	}
	return "", fmt.Errorf("ashby api: job %s not found on board %s", jobID, company)
}

// genericPage scrapes an arbitrary job page. JSON-LD JobPosting data is
// preferred when present; otherwise the page chrome is stripped and the
// body text used as-is.
func (f *Fetcher) genericPage(ctx context.Context, pageURL string) (string, error) {
	resp, err := f.get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: http %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	var content string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		if content != "" {
			return
		}
		var ld map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &ld); err != nil {
			return
		}
		if ld["@type"] != "JobPosting" {
			return
		}
		if desc, ok := ld["description"].(string); ok && desc != "" {
			content = stripHTML(desc)
		}
		if t, ok := ld["title"].(string); ok && t != "" {
			title = t
		}
	})

	if content == "" {
		doc.Find("script, style, nav, header, footer").Remove()
		content = doc.Find("body").Text()
	}

	content = strings.TrimSpace(whitespacePattern.ReplaceAllString(content, " "))
	if content == "" {
		return "", fmt.Errorf("no description found at %s", pageURL)
	}
	if len(content) > maxDescriptionBytes {
		content = content[:maxDescriptionBytes]
	}

	if title != "" {
		return fmt.Sprintf("Title: %s\n\n%s", title, content), nil
	}
	return content, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	return f.Client.Do(req)
}

func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return tagPattern.ReplaceAllString(html, "")
	}
	text := doc.Text()
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
