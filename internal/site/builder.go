package site

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/nurpe/checkbook-insights/internal/model"
)

//go:embed templates/site.html
var templatesFS embed.FS

type chartImage struct {
	Info model.ViewInfo
	// Variants holds the BQ1 filter alternatives keyed by category, "All" first.
	Variants []variant
	Src      template.URL
}

type variant struct {
	Category string
	Src      template.URL
}

type tab struct {
	ID     string
	Name   model.Tab
	Charts []chartImage
}

type page struct {
	Summary     model.Summary
	Tabs        []tab
	GeneratedAt string
}

// Builder writes the dashboard as one self-contained HTML file with every
// chart inlined.
type Builder struct {
	tmpl *template.Template
	now  func() time.Time
}

func NewBuilder() (*Builder, error) {
	tmpl, err := template.New("site.html").Funcs(template.FuncMap{
		"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}).ParseFS(templatesFS, "templates/site.html")
	if err != nil {
		return nil, err
	}
	return &Builder{tmpl: tmpl, now: time.Now}, nil
}

// Build renders the bundle. Charts is keyed by view name plus the BQ1
// variants ("bq1-ITE", ...); views without a chart are skipped.
func (b *Builder) Build(w io.Writer, insights model.Insights, charts map[string][]byte, itCategories []string) error {
	p := page{
		Summary:     insights.Summary,
		GeneratedAt: b.now().Format("2006-01-02 15:04"),
	}
	for i, t := range model.Tabs() {
		entry := tab{ID: fmt.Sprintf("tab-%d", i+1), Name: t}
		for _, info := range model.Views() {
			if info.Tab != t {
				continue
			}
			png, ok := charts[info.Name]
			if !ok {
				continue
			}
			img := chartImage{Info: info, Src: dataURI(png)}
			if info.Name == model.ViewBQ1 {
				img.Variants = append(img.Variants, variant{Category: "All", Src: img.Src})
				for _, category := range itCategories {
					if v, ok := charts[model.BQ1Variant(category)]; ok {
						img.Variants = append(img.Variants, variant{Category: category, Src: dataURI(v)})
					}
				}
			}
			entry.Charts = append(entry.Charts, img)
		}
		p.Tabs = append(p.Tabs, entry)
	}
	return b.tmpl.Execute(w, p)
}

func dataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
