package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "data.csv",
		"Unnamed: 0, discipline_id ,discipline,\n"+
			"0,1,Family Medicine,junk\n"+
			"1,2,,\n"+
			"2,3\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)

	// The index artifact and the empty header are dropped; the kept
	// header is trimmed.
	assert.Equal(t, []string{"discipline_id", "discipline"}, table.Columns)
	require.Len(t, table.Rows, 3)

	require.NotNil(t, table.Rows[0].Get("discipline_id"))
	assert.Equal(t, "1", *table.Rows[0].Get("discipline_id"))
	require.NotNil(t, table.Rows[0].Get("discipline"))
	assert.Equal(t, "Family Medicine", *table.Rows[0].Get("discipline"))

	// Blank cell and ragged short row both surface as nil.
	assert.Nil(t, table.Rows[1].Get("discipline"))
	assert.Nil(t, table.Rows[2].Get("discipline"))

	// Unknown column is nil, not a panic.
	assert.Nil(t, table.Rows[0].Get("no_such_column"))
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestReadCSVEmptyFile(t *testing.T) {
	table, err := ReadCSV(writeFile(t, "empty.csv", ""))
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"discipline_id", "discipline"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1, "Family Medicine"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{2, nil}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ReadXLSX(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"discipline_id", "discipline"}, table.Columns)
	require.Len(t, table.Rows, 2)
	require.NotNil(t, table.Rows[0].Get("discipline_id"))
	assert.Equal(t, "1", *table.Rows[0].Get("discipline_id"))
	assert.Nil(t, table.Rows[1].Get("discipline"))
}

func TestReadXLSXMissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "absent.xlsx"))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Error(), "absent.xlsx")
}
