package report_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/report"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/ui/output"
)

func sampleReport() domain.Report {
	violation := domain.Edge{
		Source: domain.NewUnit("tga.checkers.service.CheckerService", "tga.checkers.service"),
		Target: domain.NewUnit("tga.checkers.web.CheckerController", "tga.checkers.web"),
	}
	return domain.Report{
		Results: []domain.RuleResult{
			{
				Rule:       domain.Rule{Name: "no-web", Because: "Services should not depend on web"},
				Violations: []domain.Edge{violation},
			},
			{Rule: domain.Rule{Name: "repository is a leaf"}},
		},
		Units: 3,
		Edges: 1,
	}
}

func TestReporter_Render(t *testing.T) {
	tests := []struct {
		name       string
		format     domain.ReportFormat
		goldenName string
	}{
		{name: "text", format: domain.ReportText, goldenName: "report_text"},
		{name: "json", format: domain.ReportJSON, goldenName: "report_json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := report.NewWithProfile(output.Ascii)

			require.NoError(t, r.Render(&buf, sampleReport(), tt.format))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestReporter_Render_Empty(t *testing.T) {
	var buf bytes.Buffer
	r := report.NewWithProfile(output.Ascii)

	require.NoError(t, r.Render(&buf, domain.Report{}, domain.ReportText))
	assert.Equal(t, "0 rule(s) checked against 0 unit(s) and 0 edge(s): 0 failed, 0 violation(s)\n", buf.String())

	buf.Reset()
	require.NoError(t, r.Render(&buf, domain.Report{}, domain.ReportJSON))
	assert.JSONEq(t, `{"passed":true,"units":0,"edges":0,"rules":[]}`, buf.String())
}

func TestReporter_Render_UnknownFormat(t *testing.T) {
	r := report.NewWithProfile(output.Ascii)

	err := r.Render(&bytes.Buffer{}, domain.Report{}, "xml")
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}
