package diagnostics

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Recorder writes failure artifacts (screenshot plus page markup) so an
// operator can see what the portal looked like when a run went wrong.
// Capture is best effort: a failure to record never escalates.
type Recorder struct {
	dir    string
	runID  string
	logger *zap.Logger
}

// NewRecorder creates a recorder writing into dir with a fresh run id.
func NewRecorder(dir string, logger *zap.Logger) *Recorder {
	if dir == "" {
		dir = "artifacts"
	}
	return &Recorder{
		dir:    dir,
		runID:  uuid.NewString()[:8],
		logger: logger,
	}
}

// RunID returns the identifier stamped on this run's artifacts.
func (r *Recorder) RunID() string {
	return r.runID
}

// Capture saves a full-page screenshot and the current page markup
// under names derived from description.
func (r *Recorder) Capture(page playwright.Page, description string) {
	if page == nil {
		return
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		r.logger.Warn("could not create artifact directory", zap.String("dir", r.dir), zap.Error(err))
		return
	}

	slug := slugify(description)

	shotPath := filepath.Join(r.dir, "screenshot_"+slug+"_"+r.runID+".png")
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(shotPath),
		FullPage: playwright.Bool(true),
	}); err != nil {
		r.logger.Warn("screenshot capture failed", zap.String("path", shotPath), zap.Error(err))
	} else {
		r.logger.Info("screenshot saved", zap.String("path", shotPath))
	}

	htmlPath := filepath.Join(r.dir, "page_"+slug+"_"+r.runID+".html")
	content, err := page.Content()
	if err != nil {
		r.logger.Warn("page markup capture failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(htmlPath, []byte(content), 0o644); err != nil {
		r.logger.Warn("could not write page markup", zap.String("path", htmlPath), zap.Error(err))
		return
	}
	r.logger.Info("page markup saved", zap.String("path", htmlPath))
}

func slugify(s string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '/', r == '.':
			return '_'
		default:
			return -1
		}
	}, s)
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "captura"
	}
	return slug
}
