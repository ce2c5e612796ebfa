package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(
		Sheet{
			Name:   "Pantry",
			Header: []string{"Name", "Expiry"},
			Rows: [][]any{
				{"milk", "2025-03-12"},
				{"rice", ""},
			},
		},
		Sheet{
			Name:   "Summary",
			Header: []string{"Total"},
			Rows:   [][]any{{2}},
		},
	)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Pantry", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Pantry")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Expiry"}, rows[0])
	assert.Equal(t, []string{"milk", "2025-03-12"}, rows[1])
	assert.Equal(t, "rice", rows[2][0])

	total, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}
