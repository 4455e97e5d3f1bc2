package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX_Sheets(t *testing.T) {
	doc := buildTestDocument()
	path := filepath.Join(t.TempDir(), "board.xlsx")
	require.NoError(t, ExportXLSX(path, doc))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetPills, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetPills)
	require.NoError(t, err)
	require.Len(t, rows, len(doc.Pills)+1)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Rounded corners", rows[0][8])

	first := rows[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "200", first[3])
	assert.Equal(t, "120", first[4])
	assert.Equal(t, "hsl(0, 70%, 50%)", first[6])
	assert.Equal(t, "tl,tr,bl,br", first[8])
	assert.Equal(t, "br", rows[5][8])

	session, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, doc.Session, session)

	count, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "5", count)
}
