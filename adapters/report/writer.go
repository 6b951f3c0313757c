package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"classci/domain/metrics"

	"github.com/fatih/color"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

// Write renders doc to w in the given format
func Write(w io.Writer, format Format, doc Document, opts Options) error {
	switch format {
	case JSONOut:
		if err := writeJSON(w, doc); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case YAMLOut:
		if err := writeYAML(w, doc); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case CSVOut:
		csvWriter := csv.NewWriter(w)
		if err := writeCSV(csvWriter, doc, opts); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		csvWriter.Flush()
		return csvWriter.Error()
	case MarkdownOut:
		_, err := io.WriteString(w, Markdown(doc, opts))
		return err
	case HTMLOut:
		_, err := w.Write(HTML(doc, opts))
		return err
	default:
		return writeTables(w, doc, opts)
	}
	return nil
}

func writeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

var tableHeaders = []string{"Metric", "Estimate", "Count", "Interval", "Exact", "t-Approx", "Percentile", "Resamples"}

func resultRow(r metrics.Result, opts Options) []string {
	return []string{
		r.Metric().Title(),
		opts.float(r.Estimate()),
		fmt.Sprintf("%d/%d", r.Numerator(), r.Denominator()),
		opts.interval(r.TNormCI()),
		opts.interval(r.ExactCI()),
		opts.interval(r.ApproxCI()),
		opts.interval(r.PercentileCI()),
		strconv.Itoa(r.Resamples()),
	}
}

// writeTables prints one table per section
func writeTables(w io.Writer, doc Document, opts Options) error {
	bold := fmt.Sprint
	if opts.UseColors {
		bold = color.New(color.Bold).SprintFunc()
	}

	for i, s := range doc.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  n=%d  %s  population=%d flagged=%d\n",
			bold(s.Name), s.SampleSize, s.Counts, s.PopulationSize, s.PopulationFlaggedCount)

		table := tablewriter.NewWriter(w)
		table.Header(tableHeaders)
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, r := range s.Results {
			data = append(data, resultRow(r, opts))
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nrun %s  confidence %s  exact precision %s  %d resamples\n",
		doc.RunID, opts.float(doc.ConfidenceLevel), opts.float(doc.ExactPrecision), doc.Iterations)
	for _, name := range doc.PlotFiles {
		fmt.Fprintf(w, "plot: %s\n", name)
	}
	return nil
}

func writeCSV(w *csv.Writer, doc Document, opts Options) error {
	header := []string{"section", "metric", "estimate", "numerator", "denominator",
		"lower", "upper", "exact_lower", "exact_upper", "approx_lower", "approx_upper", "resamples"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range doc.Sections {
		for _, r := range s.Results {
			row := []string{
				s.Name,
				r.Metric().String(),
				opts.float(r.Estimate()),
				strconv.Itoa(r.Numerator()),
				strconv.Itoa(r.Denominator()),
				opts.float(r.TNormCI().Lower),
				opts.float(r.TNormCI().Upper),
				opts.float(r.ExactCI().Lower),
				opts.float(r.ExactCI().Upper),
				opts.float(r.ApproxCI().Lower),
				opts.float(r.ApproxCI().Upper),
				strconv.Itoa(r.Resamples()),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Markdown renders doc as a Markdown document with one table per section
func Markdown(doc Document, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Confidence intervals\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", doc.RunID)
	if !doc.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- Created: %s\n", doc.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(&b, "- Confidence level: %s\n", opts.float(doc.ConfidenceLevel))
	fmt.Fprintf(&b, "- Exact precision: %s\n", opts.float(doc.ExactPrecision))
	fmt.Fprintf(&b, "- Resamples: %d\n", doc.Iterations)
	if doc.Seed != nil {
		fmt.Fprintf(&b, "- Seed: %d\n", *doc.Seed)
	}
	if doc.Fingerprint != "" {
		fmt.Fprintf(&b, "- Fingerprint: `%s`\n", doc.Fingerprint)
	}

	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", s.Name)
		fmt.Fprintf(&b, "Sample of %d (%s) from a population of %d with %d flagged.\n\n",
			s.SampleSize, s.Counts, s.PopulationSize, s.PopulationFlaggedCount)
		b.WriteString("| " + strings.Join(tableHeaders, " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" ---: |", len(tableHeaders)) + "\n")
		for _, r := range s.Results {
			b.WriteString("| " + strings.Join(resultRow(r, opts), " | ") + " |\n")
		}
	}

	if len(doc.PlotFiles) > 0 {
		b.WriteString("\n## Plots\n\n")
		for _, name := range doc.PlotFiles {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
	}
	return b.String()
}

// HTML renders the Markdown report as a complete HTML page
func HTML(doc Document, opts Options) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Confidence intervals " + doc.RunID,
	})
	out := markdown.ToHTML([]byte(Markdown(doc, opts)), p, renderer)
	return bytes.TrimSpace(out)
}
