package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "datetime,season,holiday,workingday,weather,temp,atemp,humidity,windspeed,casual,registered,count\n"

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFileParsesRows(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, testHeader+
		"2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0.0,3,13,16\n"+
		"2011-01-01 01:00:00,1,0,0,1,9.02,13.635,80,0.0,8,32,40\n")

	records, err := ReadFile(path, ',', true)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC), first.Timestamp)
	assert.Equal(t, 1, first.Season)
	assert.Equal(t, 0, first.WorkingDay)
	assert.InDelta(t, 9.84, first.Temp, 1e-9)
	assert.InDelta(t, 14.395, first.ATemp, 1e-9)
	assert.Equal(t, 3, first.Casual)
	assert.Equal(t, 13, first.Registered)
	assert.Equal(t, 16, first.Count)
}

func TestReadFileHeaderOrderIsFree(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, "count,registered,casual,windspeed,humidity,atemp,temp,weather,workingday,holiday,season,datetime\n"+
		"16,13,3,0.0,81,14.395,9.84,1,0,0,1,2011-01-01 00:00:00\n")

	records, err := ReadFile(path, ',', true)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 16, records[0].Count)
	assert.Equal(t, 1, records[0].Season)
}

func TestReadFileMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), ',', true)
	assert.Error(t, err)
}

func TestReadFileMissingColumn(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, "datetime,season\n2011-01-01 00:00:00,1\n")
	_, err := ReadFile(path, ',', true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestReadFileMalformedRow(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, testHeader+
		"2011-01-01 00:00:00,not-a-season,0,0,1,9.84,14.395,81,0.0,3,13,16\n")
	_, err := ReadFile(path, ',', true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadFileMalformedTimestamp(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, testHeader+
		"01/01/2011 00:00,1,0,0,1,9.84,14.395,81,0.0,3,13,16\n")
	_, err := ReadFile(path, ',', true)
	assert.Error(t, err)
}

func TestReadFileStrictTotals(t *testing.T) {
	t.Parallel()

	// count 99 != 3 + 13
	content := testHeader + "2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0.0,3,13,99\n"

	path := writeTestCSV(t, content)
	_, err := ReadFile(path, ',', true)
	assert.Error(t, err, "strict mode rejects inconsistent totals")

	records, err := ReadFile(path, ',', false)
	require.NoError(t, err, "lenient mode keeps the row as-is")
	assert.Equal(t, 99, records[0].Count)
}

func TestReadFileEmptyDataset(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, testHeader)
	_, err := ReadFile(path, ',', true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestReadFileCustomSeparator(t *testing.T) {
	t.Parallel()

	content := "datetime;season;holiday;workingday;weather;temp;atemp;humidity;windspeed;casual;registered;count\n" +
		"2011-01-01 00:00:00;1;0;0;1;9.84;14.395;81;0.0;3;13;16\n"

	path := writeTestCSV(t, content)
	records, err := ReadFile(path, ';', true)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
