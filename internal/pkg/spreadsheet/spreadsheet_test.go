package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuild_WritesHeadersAndRows(t *testing.T) {
	data, err := Build(Sheet{
		Name:    "Salaries",
		Headers: []string{"Employee", "Total"},
		Rows: [][]interface{}{
			{"Karim", "66.67"},
			{"Lina", "120.00"},
		},
		Widths: []float64{20, 12},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Salaries"}, f.GetSheetList())

	rows, err := f.GetRows("Salaries")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employee", "Total"}, rows[0])
	assert.Equal(t, []string{"Lina", "120.00"}, rows[2])
}

func TestBuild_MultipleSheets(t *testing.T) {
	data, err := Build(
		Sheet{Name: "A", Headers: []string{"x"}},
		Sheet{Name: "B", Headers: []string{"y"}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"A", "B"}, f.GetSheetList())
}

func TestBuild_RequiresSheet(t *testing.T) {
	_, err := Build()
	assert.Error(t, err)
}
