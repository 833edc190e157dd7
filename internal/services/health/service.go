package health

// Service encapsulates health-related checks.
type Service struct {
	llmConfigured bool
}

// NewService constructs a new health service.
func NewService(llmConfigured bool) *Service {
	return &Service{llmConfigured: llmConfigured}
}

// Status returns the health payload. The process is always reported
// live; llmConfigured tells operators whether analyses can run.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":            true,
		"llmConfigured": s.llmConfigured,
	}
}
