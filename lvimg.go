/*
Package lvimg converts LVGL image assets between C source arrays, the
binary container format and PNG.
*/
package lvimg

import (
	"io"
	"log"
)

type Converter struct {
	db     *IconDB
	logger *log.Logger
}

// New returns a Converter. The catalog database is optional; passing
// nil disables cataloging. A nil logger discards all output.
func New(db *IconDB, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		db:     db,
		logger: logger,
	}
}
