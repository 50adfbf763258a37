package domain

import (
	"fmt"
	"strings"
)

// SchemaError reports an input file whose structure cannot be interpreted:
// required columns are missing or a data row holds a malformed value. The
// file is rejected wholesale; the resolver substitutes synthetic data
// rather than loading a partial grid from a broken file.
type SchemaError struct {
	File    string
	Missing []string // required columns absent from the header
	Row     int      // 1-based data row of a malformed value, 0 for header problems
	Detail  string
}

func (e *SchemaError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("schema: %s: missing columns %s", e.File, strings.Join(e.Missing, ", "))
	case e.Row > 0:
		return fmt.Sprintf("schema: %s: row %d: %s", e.File, e.Row, e.Detail)
	default:
		return fmt.Sprintf("schema: %s: %s", e.File, e.Detail)
	}
}

// UnsupportedChartError reports a chart request the renderer has no
// implementation for. The build logs it, skips the chart, and continues
// with the remaining artifacts.
type UnsupportedChartError struct {
	Chart ChartType
}

func (e *UnsupportedChartError) Error() string {
	return fmt.Sprintf("unsupported chart type %q", string(e.Chart))
}

// UnwritableOutputError reports a failure to create or write an output
// file. It is fatal to the build: a dashboard that cannot write its assets
// has nothing to deliver.
type UnwritableOutputError struct {
	Path string
	Err  error
}

func (e *UnwritableOutputError) Error() string {
	return fmt.Sprintf("unwritable output %s: %v", e.Path, e.Err)
}

func (e *UnwritableOutputError) Unwrap() error { return e.Err }
