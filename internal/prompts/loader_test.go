package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ReportPrompts(t *testing.T) {
	system, err := Get("report.json", "system")
	require.NoError(t, err)
	assert.Contains(t, system, "商业分析专家")

	report, err := Get("report.json", "report")
	require.NoError(t, err)
	assert.Contains(t, report, "### 企业速览")
	assert.Contains(t, report, "{{.Year}}")
	assert.Contains(t, report, "{{.CompanyJSON}}")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("report.json", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `prompt key "nope" not found`)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "system")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	got := Format("year {{.Year}}, data: {{.CompanyJSON}}", map[string]string{
		"Year":        "2025",
		"CompanyJSON": `{"name":"x"}`,
	})
	assert.Equal(t, `year 2025, data: {"name":"x"}`, got)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	got := Format("{{.Other}}", map[string]string{"Year": "2025"})
	assert.Equal(t, "{{.Other}}", got)
}
