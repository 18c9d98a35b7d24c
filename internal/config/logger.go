package config

import "github.com/portable-tools/ptinstall/internal/extract"

// Logger is the key-value logger shared with the extraction pipeline, so the
// CLI wires a single adapter into both.
type Logger = extract.Logger

func defaultLogger() Logger {
	return extract.NopLogger()
}
