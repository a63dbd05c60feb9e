// correlation.go: pairwise Pearson correlation over the numeric fields
package analytics

import (
	"math"

	"github.com/tphakala/bikeshare-go/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// correlationFields lists the numeric fields of the correlation heatmap, in
// display order.
var correlationFields = []string{
	"temp", "atemp", "humidity", "windspeed", "casual", "registered", "count",
}

// fieldValue extracts one numeric field from a record.
func fieldValue(r *dataset.EnrichedRecord, field string) float64 {
	switch field {
	case "temp":
		return r.Temp
	case "atemp":
		return r.ATemp
	case "humidity":
		return r.Humidity
	case "windspeed":
		return r.Windspeed
	case "casual":
		return float64(r.Casual)
	case "registered":
		return float64(r.Registered)
	case "count":
		return float64(r.Count)
	default:
		return 0
	}
}

// computeCorrelation builds the Pearson correlation matrix over the filtered
// rows. The diagonal is always exactly 1.0. Off-diagonal entries for
// degenerate columns (fewer than two rows, or zero variance) are 0 rather
// than NaN so the matrix stays JSON-encodable.
func computeCorrelation(rows []dataset.EnrichedRecord) CorrelationMatrix {
	n := len(correlationFields)

	columns := make([][]float64, n)
	for i, field := range correlationFields {
		columns[i] = make([]float64, len(rows))
		for j := range rows {
			columns[i][j] = fieldValue(&rows[j], field)
		}
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pearson(columns[i], columns[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return CorrelationMatrix{
		Fields: append([]string(nil), correlationFields...),
		Matrix: matrix,
	}
}

// pearson computes the correlation coefficient of two equal-length columns,
// mapping degenerate results to 0.
func pearson(x, y []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
