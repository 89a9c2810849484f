package trialpack

import (
	"log/slog"
	"strings"
	"time"
)

// Fixed journal styles. Every rendered document uses the same page setup
// and body font; per-section rules vary only size, emphasis, alignment,
// spacing, and indentation.
const (
	BodyFont   = "Times New Roman"
	BodySizePt = 12.0
	CodeFont   = "Courier New"
	CodeSizePt = 10.0
)

// Author identifies one manuscript author for forms and signatures.
type Author struct {
	Name        string `yaml:"name"`
	Affiliation string `yaml:"affiliation"`
	Email       string `yaml:"email"`
	ORCID       string `yaml:"orcid"`
}

// LastName returns the final whitespace-separated token of the author name,
// used for per-author output file naming.
func (a Author) LastName() string {
	fields := strings.Fields(a.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// SubmissionMeta carries manuscript identification shared by all forms.
type SubmissionMeta struct {
	Title        string
	ManuscriptID string
}

// Validate checks that required metadata is present.
func (m SubmissionMeta) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyManuscriptTitle
	}
	return nil
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for section warnings.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithClock overrides the time source used for dated documents.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("trialpack: WithClock requires a non-nil clock")
	}
	return func(s *Service) {
		s.now = now
	}
}
