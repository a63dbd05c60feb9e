package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/bikeshare-go/internal/dataset"
)

func TestCorrelationMatrixShape(t *testing.T) {
	t.Parallel()

	matrix := computeCorrelation(filterFixture(t))

	require.Equal(t, correlationFields, matrix.Fields)
	require.Len(t, matrix.Matrix, len(correlationFields))
	for _, row := range matrix.Matrix {
		require.Len(t, row, len(correlationFields))
	}
}

func TestCorrelationDiagonalAndSymmetry(t *testing.T) {
	t.Parallel()

	matrix := computeCorrelation(filterFixture(t))

	for i, row := range matrix.Matrix {
		assert.Equal(t, 1.0, row[i], "diagonal must be exactly 1.0")
		for j, v := range row {
			assert.InDelta(t, matrix.Matrix[j][i], v, 1e-12, "matrix must be symmetric")
			assert.LessOrEqual(t, v, 1.0+1e-12)
			assert.GreaterOrEqual(t, v, -1.0-1e-12)
		}
	}
}

func TestCorrelationKnownValues(t *testing.T) {
	t.Parallel()

	// registered is exactly 2x casual in every row, so their correlation is 1
	rows := enrichRows(t, []rawRow{
		{ts: "2011-01-05 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 10, humidity: 80, windspeed: 5, casual: 10, registered: 20},
		{ts: "2011-01-05 09:00:00", season: 1, weather: 1, workingDay: 1, temp: 12, humidity: 75, windspeed: 7, casual: 20, registered: 40},
		{ts: "2011-01-05 10:00:00", season: 1, weather: 1, workingDay: 1, temp: 14, humidity: 70, windspeed: 9, casual: 30, registered: 60},
	})

	matrix := computeCorrelation(rows)
	casual := fieldIndex(t, matrix.Fields, "casual")
	registered := fieldIndex(t, matrix.Fields, "registered")
	temp := fieldIndex(t, matrix.Fields, "temp")
	humidity := fieldIndex(t, matrix.Fields, "humidity")

	assert.InDelta(t, 1.0, matrix.Matrix[casual][registered], 1e-9)
	// temp rises while humidity falls in perfect lockstep
	assert.InDelta(t, -1.0, matrix.Matrix[temp][humidity], 1e-9)
}

func TestCorrelationDegenerateInputs(t *testing.T) {
	t.Parallel()

	assertOffDiagonalZero := func(t *testing.T, rows []dataset.EnrichedRecord) {
		t.Helper()
		matrix := computeCorrelation(rows)
		for i, row := range matrix.Matrix {
			for j, v := range row {
				if i == j {
					assert.Equal(t, 1.0, v)
				} else {
					assert.Equal(t, 0.0, v)
				}
			}
		}
	}

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assertOffDiagonalZero(t, nil)
	})

	t.Run("single row", func(t *testing.T) {
		t.Parallel()
		assertOffDiagonalZero(t, enrichRows(t, []rawRow{
			{ts: "2011-01-05 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 10, humidity: 80, casual: 10, registered: 40},
		}))
	})

	t.Run("zero variance column", func(t *testing.T) {
		t.Parallel()
		// identical temp in every row leaves its column with no variance
		rows := enrichRows(t, []rawRow{
			{ts: "2011-01-05 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 10, humidity: 80, casual: 10, registered: 40},
			{ts: "2011-01-05 09:00:00", season: 1, weather: 1, workingDay: 1, temp: 10, humidity: 70, casual: 20, registered: 60},
		})
		matrix := computeCorrelation(rows)
		temp := fieldIndex(t, matrix.Fields, "temp")
		humidity := fieldIndex(t, matrix.Fields, "humidity")
		assert.Equal(t, 0.0, matrix.Matrix[temp][humidity])
		assert.Equal(t, 1.0, matrix.Matrix[temp][temp])
	})
}

func fieldIndex(t *testing.T, fields []string, name string) int {
	t.Helper()
	for i, f := range fields {
		if f == name {
			return i
		}
	}
	t.Fatalf("field %q not in correlation fields", name)
	return -1
}
