package ports

import (
	"io"

	"go.trai.ch/strata/internal/core/domain"
)

// Reporter renders check results.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	Render(w io.Writer, report domain.Report, format domain.ReportFormat) error
}

// GraphExporter writes an imported graph in a visualization or interchange format.
type GraphExporter interface {
	Export(w io.Writer, graph *domain.Graph, format domain.GraphFormat) error
}
