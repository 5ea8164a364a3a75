package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"surveypulse/pkg/contracts/domain"
)

func TestColumnWidths(t *testing.T) {
	table := NewTable("t", "ID", "Comment")
	table.NewRow().Set("ID", "r-100").Set("Comment", strings.Repeat("long ", 30))
	table.NewRow().Set("ID", 7.0).Set("Comment", "ok")

	widths := ColumnWidths(table, 50)

	assert.Equal(t, []float64{7, 50}, widths)
}

func TestColumnWidthsCountRunes(t *testing.T) {
	table := NewTable("t", "Ünïcödé")

	assert.Equal(t, []float64{9}, ColumnWidths(table, 0))
}

func TestRenderWorkbook(t *testing.T) {
	responses := BuildResponseTable(testResponses(), testQuestionnaire())
	summary := BuildSummaryTable(domain.ResponseStats{Total: 2, Completed: 1, Abandoned: 1, CompletionRate: 50})

	content, err := RenderWorkbook(DefaultMaxColumnWidth, responses, summary)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ResponsesSheet, AnalyticsSheet}, f.GetSheetList())

	rows, err := f.GetRows(ResponsesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, responses.Columns(), rows[0])
	assert.Equal(t, "r1", rows[1][0])

	summaryRows, err := f.GetRows(AnalyticsSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{ColumnMetric, ColumnValue}, summaryRows[0])
	assert.Equal(t, []string{"Total Responses", "2"}, summaryRows[1])

	for i := range responses.Columns() {
		name, err := excelize.ColumnNumberToName(i + 1)
		require.NoError(t, err)
		width, err := f.GetColWidth(ResponsesSheet, name)
		require.NoError(t, err)
		assert.LessOrEqual(t, width, float64(DefaultMaxColumnWidth))
	}
}

func TestRenderWorkbookRequiresTables(t *testing.T) {
	_, err := RenderWorkbook(DefaultMaxColumnWidth)
	assert.Error(t, err)
}
