// Package reporting provides report generation for benchmark results.
package reporting

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/discochess/ponder/benchmark/analysis"
	"github.com/discochess/ponder/benchmark/simulation"
)

// MarkdownReport generates benchmark reports in Markdown format.
type MarkdownReport struct {
	w io.Writer
}

// NewMarkdownReport creates a new Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w}
}

// WriteHeader writes the report header.
func (r *MarkdownReport) WriteHeader(title string) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintf(r.w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
}

// WriteMethodology writes the methodology section.
func (r *MarkdownReport) WriteMethodology(games, maxPlies int) {
	fmt.Fprintln(r.w, "## Methodology")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Self-play games per configuration:** %d\n", games)
	fmt.Fprintf(r.w, "- **Ply limit per game:** %d\n", maxPlies)
	fmt.Fprintln(r.w, "- **Metric:** per-move search latency in milliseconds (lower is better)")
	fmt.Fprintln(r.w, "- **Statistical tests:** Welch's t-test, Cohen's d effect size, bootstrap CI")
	fmt.Fprintln(r.w)
}

// WriteSummaryTable writes the summary comparison table, sorted by
// configuration name for stable output.
func (r *MarkdownReport) WriteSummaryTable(results map[string]*simulation.AggregateResult) {
	fmt.Fprintln(r.w, "## Summary")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Configuration | Games | Avg Plies | Decisive | Avg Move (ms) | P99 Move (ms) |")
	fmt.Fprintln(r.w, "|---------------|-------|-----------|----------|---------------|---------------|")

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := simulation.ComputeMetrics(results[name])
		fmt.Fprintf(r.w, "| %s | %d | %.1f | %.0f%% | %.2f | %.2f |\n",
			name, m.Games, m.AvgPlies, m.DecisiveRate,
			m.AvgMoveMillis, m.P99MoveMillis)
	}
	fmt.Fprintln(r.w)
}

// WriteComparison writes a detailed comparison section.
func (r *MarkdownReport) WriteComparison(comp *analysis.ConfigComparison) {
	fmt.Fprintf(r.w, "## %s vs %s\n\n", comp.Config1, comp.Config2)

	fmt.Fprintln(r.w, "| Metric | Value |")
	fmt.Fprintln(r.w, "|--------|-------|")
	fmt.Fprintf(r.w, "| Mean difference | %.2f ms |\n", comp.Stats1.Mean-comp.Stats2.Mean)
	fmt.Fprintf(r.w, "| Welch t | %.2f (df=%.1f) |\n", comp.Welch.T, comp.Welch.DF)
	fmt.Fprintf(r.w, "| p-value | %.4f |\n", comp.Welch.PValue)
	fmt.Fprintf(r.w, "| Cohen's d | %.2f (%s) |\n", comp.EffectSize.CohensD, comp.EffectSize.Interpretation)
	fmt.Fprintf(r.w, "| %.0f%% CI of difference | [%.2f, %.2f] ms |\n",
		comp.Bootstrap.Confidence*100, comp.Bootstrap.LowerBound, comp.Bootstrap.UpperBound)
	fmt.Fprintf(r.w, "| Winner | %s |\n", comp.Winner)
	fmt.Fprintln(r.w)

	if comp.WinnerConfident {
		fmt.Fprintf(r.w, "The difference is statistically significant.\n\n")
	} else {
		fmt.Fprintf(r.w, "The difference is not statistically significant.\n\n")
	}
}
