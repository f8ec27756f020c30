// Package report renders check results for terminals and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/ui/output"
	"go.trai.ch/strata/internal/ui/style"
	"go.trai.ch/zerr"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter.
type Reporter struct {
	profile func() termenv.Profile
}

// New creates a Reporter that follows the terminal's color profile.
func New() *Reporter {
	return NewWithProfile(output.ColorProfile)
}

// NewWithProfile creates a Reporter with a fixed color profile selector.
func NewWithProfile(profile func() termenv.Profile) *Reporter {
	return &Reporter{profile: profile}
}

// Render writes the report to w in the requested format.
func (r *Reporter) Render(w io.Writer, report domain.Report, format domain.ReportFormat) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case domain.ReportText, "":
		data = []byte(r.text(w, report))
	case domain.ReportJSON:
		data, err = encodeJSON(report)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "unsupported report format"), "format", string(format))
	}
	if err != nil {
		return zerr.Wrap(err, "failed to encode report")
	}

	if _, err := w.Write(data); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	return nil
}

func (r *Reporter) text(w io.Writer, report domain.Report) string {
	out := output.NewWithProfile(w, r.profile)
	pass := out.String(style.Check).Foreground(out.Color(string(style.Green))).String()
	fail := out.String(style.Cross).Foreground(out.Color(string(style.Red))).Bold().String()
	dim := func(s string) string {
		return out.String(s).Foreground(out.Color(string(style.Slate))).String()
	}

	var b strings.Builder
	for _, res := range report.Results {
		if res.Passed() {
			fmt.Fprintf(&b, "%s %s\n", pass, res.Rule.Name)
			continue
		}

		fmt.Fprintf(&b, "%s %s\n", fail, res.Rule.Name)
		if res.Rule.Because != "" {
			fmt.Fprintf(&b, "  %s\n", dim(res.Rule.Because))
		}
		for _, v := range res.Violations {
			fmt.Fprintf(&b, "    %s %s %s\n", v.Source.Name, style.Arrow, v.Target.Name)
		}
	}

	if len(report.Results) > 0 {
		b.WriteString("\n")
		b.WriteString(summaryTable(report))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%d rule(s) checked against %d unit(s) and %d edge(s): %d failed, %d violation(s)\n",
		len(report.Results), report.Units, report.Edges, len(report.Failed()), report.ViolationCount())
	return b.String()
}

func summaryTable(report domain.Report) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Status", "Violations"})
	for _, res := range report.Results {
		status := "pass"
		if !res.Passed() {
			status = "FAIL"
		}
		t.AppendRow(table.Row{res.Rule.Name, status, strconv.Itoa(len(res.Violations))})
	}
	return t.Render()
}

type reportJSON struct {
	Passed bool       `json:"passed"`
	Units  int        `json:"units"`
	Edges  int        `json:"edges"`
	Rules  []ruleJSON `json:"rules"`
}

type ruleJSON struct {
	Name       string          `json:"name"`
	Because    string          `json:"because"`
	Passed     bool            `json:"passed"`
	Violations []violationJSON `json:"violations"`
}

type violationJSON struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func encodeJSON(report domain.Report) ([]byte, error) {
	doc := reportJSON{
		Passed: report.Passed(),
		Units:  report.Units,
		Edges:  report.Edges,
		Rules:  make([]ruleJSON, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		rule := ruleJSON{
			Name:       res.Rule.Name,
			Because:    res.Rule.Because,
			Passed:     res.Passed(),
			Violations: make([]violationJSON, 0, len(res.Violations)),
		}
		for _, v := range res.Violations {
			rule.Violations = append(rule.Violations, violationJSON{
				Source: v.Source.Name.String(),
				Target: v.Target.Name.String(),
			})
		}
		doc.Rules = append(doc.Rules, rule)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
