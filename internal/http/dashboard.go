package http

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/checkbook-insights/internal/model"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"percent": formatPercent,
}).ParseFS(templatesFS, "templates/dashboard.html"))

type dashboardTab struct {
	Name  model.Tab
	ID    string
	Views []model.ViewInfo
}

type dashboardPage struct {
	Summary      model.Summary
	Tabs         []dashboardTab
	ITCategories []string
	FilterView   string
}

func (h *Handler) dashboard(c *gin.Context) {
	insights, err := h.insights.Insights()
	if err != nil {
		h.handleError(c, err)
		return
	}

	page := dashboardPage{
		Summary:      insights.Summary,
		Tabs:         groupByTab(),
		ITCategories: h.insights.Policy().ITCategories,
		FilterView:   model.ViewBQ1,
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := dashboardTemplate.Execute(c.Writer, page); err != nil {
		h.log.Error().Err(err).Msg("render dashboard")
	}
}

func groupByTab() []dashboardTab {
	tabs := make([]dashboardTab, 0, len(model.Tabs()))
	for i, tab := range model.Tabs() {
		entry := dashboardTab{Name: tab, ID: fmt.Sprintf("tab-%d", i+1)}
		for _, v := range model.Views() {
			if v.Tab == tab {
				entry.Views = append(entry.Views, v)
			}
		}
		tabs = append(tabs, entry)
	}
	return tabs
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
