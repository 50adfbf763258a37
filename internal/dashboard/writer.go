// Package dashboard writes rendered artifacts to the output directory and
// assembles the final HTML page embedding them.
package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// IndexFile is the name of the assembled dashboard page.
const IndexFile = "dashboard.html"

// Writer stores artifacts and the dashboard page under one directory.
// It implements pipeline.SiteWriter.
type Writer struct {
	outDir string
	logger *slog.Logger
}

// NewWriter creates a site writer rooted at outDir. The directory is
// created on first write.
func NewWriter(outDir string, logger *slog.Logger) *Writer {
	return &Writer{outDir: outDir, logger: logger}
}

// WriteArtifact stores one chart image under the output directory. Any
// filesystem failure comes back as an UnwritableOutputError.
func (w *Writer) WriteArtifact(_ context.Context, a domain.Artifact) error {
	path := filepath.Join(w.outDir, a.Name)
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return &domain.UnwritableOutputError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, a.SVG, 0o644); err != nil {
		return &domain.UnwritableOutputError{Path: path, Err: err}
	}
	w.logger.Debug("wrote artifact", "path", path, "bytes", len(a.SVG))
	return nil
}

// WriteIndex renders the dashboard page with every artifact embedded
// inline, in the order given.
func (w *Writer) WriteIndex(_ context.Context, page domain.Page) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPageView(page)); err != nil {
		return fmt.Errorf("render dashboard page: %w", err)
	}

	path := filepath.Join(w.outDir, IndexFile)
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return &domain.UnwritableOutputError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &domain.UnwritableOutputError{Path: path, Err: err}
	}
	w.logger.Debug("wrote dashboard", "path", path, "charts", len(page.Artifacts))
	return nil
}

// badge maps a data source to the label and style class shown beside a
// chart, so synthetic data is visually distinct from observations.
func badge(s domain.Source) (label, class string) {
	switch s {
	case domain.SourceFile:
		return "file data", "real"
	case domain.SourceLive:
		return "live data", "real"
	case domain.SourceMerged:
		return "partly synthetic", "synthetic"
	case domain.SourceSynthetic:
		return "synthetic data", "synthetic"
	case domain.SourceBuiltin:
		return "built-in data", "synthetic"
	default:
		return string(s), "synthetic"
	}
}

type pageView struct {
	GeneratedAt string
	BuildID     string
	Notes       []string
	Charts      []chartView
}

type chartView struct {
	Title      string
	Name       string
	Badge      string
	BadgeClass string
	Fallback   bool
	SVG        template.HTML
}

func newPageView(page domain.Page) pageView {
	view := pageView{
		GeneratedAt: page.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		BuildID:     page.BuildID,
		Notes:       page.Notes,
	}
	for _, a := range page.Artifacts {
		label, class := badge(a.Source)
		view.Charts = append(view.Charts, chartView{
			Title:      a.Title,
			Name:       a.Name,
			Badge:      label,
			BadgeClass: class,
			Fallback:   a.Fallback,
			// The SVG is produced by the renderer, not user input, so it
			// is embedded unescaped.
			SVG: template.HTML(a.SVG),
		})
	}
	return view
}

var pageTemplate = template.Must(template.New("dashboard").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>India Weather Dashboard</title>
<style>
body { font-family: sans-serif; margin: 0; background: #f4f5f7; color: #222; }
header { background: #1f3a5f; color: #fff; padding: 24px 32px; }
header h1 { margin: 0 0 4px; font-size: 28px; }
header .meta { font-size: 13px; opacity: 0.8; }
.notes { margin: 16px 32px 0; font-size: 13px; color: #555; }
.notes li { margin: 2px 0; }
section.chart { background: #fff; margin: 24px 32px; padding: 16px 24px; border-radius: 6px; box-shadow: 0 1px 3px rgba(0,0,0,0.12); }
section.chart h2 { font-size: 18px; margin: 0 0 8px; }
.badge { display: inline-block; font-size: 11px; padding: 2px 8px; border-radius: 10px; vertical-align: middle; margin-left: 8px; }
.badge.real { background: #d7ecd9; color: #1e5e24; }
.badge.synthetic { background: #fbe6c2; color: #8a5a00; }
.fallback-note { font-size: 12px; color: #8a5a00; margin: 4px 0 8px; }
figure { margin: 0; overflow-x: auto; }
figure svg { max-width: 100%; height: auto; }
figcaption { font-size: 12px; color: #888; margin-top: 6px; }
footer { text-align: center; font-size: 12px; color: #888; padding: 16px; }
</style>
</head>
<body>
<header>
<h1>India Weather Dashboard</h1>
<div class="meta">Generated {{.GeneratedAt}}{{if .BuildID}} &middot; build {{.BuildID}}{{end}}</div>
</header>
{{if .Notes}}<ul class="notes">
{{range .Notes}}<li>{{.}}</li>
{{end}}</ul>{{end}}
{{range .Charts}}<section class="chart">
<h2>{{.Title}}<span class="badge {{.BadgeClass}}">{{.Badge}}</span></h2>
{{if .Fallback}}<p class="fallback-note">Rendered in simplified form.</p>
{{end}}<figure>
{{.SVG}}
<figcaption>{{.Name}}</figcaption>
</figure>
</section>
{{end}}<footer>Static dashboard; re-run the generator to refresh.</footer>
</body>
</html>
`
