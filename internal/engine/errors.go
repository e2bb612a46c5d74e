package engine

import "errors"

// Error taxonomy of the pipeline. All are fatal to the current run: the
// input is static, so a retry would fail identically.
var (
	// ErrSeriesLength marks a covariance request over series of different
	// lengths (malformed input).
	ErrSeriesLength = errors.New("return series must have identical lengths")

	// ErrNoObservations marks an input that yields zero aligned return rows
	// after dropping incomplete days.
	ErrNoObservations = errors.New("no daily return data available")

	// ErrAssetCount marks an enumeration request with an asset count other
	// than three (caller contract violation, not a data problem).
	ErrAssetCount = errors.New("portfolio enumeration requires exactly three assets")
)
