package site

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/checkbook-insights/internal/model"
)

func TestBuild(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	b.now = func() time.Time { return time.Date(2026, 5, 6, 7, 8, 0, 0, time.UTC) }

	charts := map[string][]byte{}
	for _, v := range model.Views() {
		charts[v.Name] = []byte("png-" + v.Name)
	}
	charts["bq1-ITS"] = []byte("png-its")

	var buf bytes.Buffer
	insights := model.Insights{Summary: model.Summary{TotalVendors: 7, MeanCommitment: 0.5}}
	require.NoError(t, b.Build(&buf, insights, charts, []string{"ITE", "ITS"}))

	html := buf.String()
	assert.Contains(t, html, "50.0%")
	assert.Contains(t, html, "Generated 2026-05-06 07:08")
	assert.Contains(t, html, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("png-bq11")))
	assert.Contains(t, html, base64.StdEncoding.EncodeToString([]byte("png-its")))
	assert.Contains(t, html, `data-category="ITS"`)
	assert.NotContains(t, html, `data-category="ITE"`)
	assert.Equal(t, len(model.Tabs()), strings.Count(html, `class="tab`))
	assert.NotContains(t, html, "src=\"#ZgotmplZ\"")
}

func TestBuildSkipsMissingCharts(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.Build(&buf, model.Insights{}, map[string][]byte{}, nil))
	assert.NotContains(t, buf.String(), "data:image/png")
}
