// Package labs runs each numerical lab end to end: it takes compiled
// functions and parameters, calls the algorithm packages the way an
// interactive front end would, and returns plain results with the curves a
// renderer needs.
package labs

import (
	"log/slog"

	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/logging"
)

const (
	// CurvePoints is the sample count of function plots.
	CurvePoints = 100
	// DetailPoints is the sample count of interpolation and exact-solution plots.
	DetailPoints = 400
)

type Lab struct {
	log *slog.Logger
	reg *experiment.Registry
}

// New returns a Lab. A nil logger discards output.
func New(log *slog.Logger, reg *experiment.Registry) *Lab {
	if log == nil {
		log = logging.Discard()
	}
	if reg == nil {
		reg = experiment.NewRegistry()
	}
	return &Lab{log: log, reg: reg}
}

func (l *Lab) Registry() *experiment.Registry { return l.reg }
