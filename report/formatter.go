package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Output format names accepted by NewFormatter
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the supported output formats
func Formats() []string {
	return []string{FormatTable, FormatJSON, FormatYAML}
}

// Formatter renders a report value
type Formatter interface {
	Format(data any) ([]byte, error)
}

// NewFormatter returns the formatter for an output format name
func NewFormatter(format string, verbose bool) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatTable, "":
		return &TableFormatter{Verbose: verbose}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want one of %s)",
			format, strings.Join(Formats(), ", "))
	}
}

// Write formats data and writes it to w
func Write(w io.Writer, f Formatter, data any) error {
	out, err := f.Format(data)
	if err != nil {
		return fmt.Errorf("failed to format output data: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// JSONFormatter renders reports as JSON
type JSONFormatter struct {
	Indent bool
}

func (f *JSONFormatter) Format(data any) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if f.Indent {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// YAMLFormatter renders reports as YAML
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TableFormatter renders reports for a terminal. The series table is the
// classic two-column listing; Verbose appends input and output statistics.
type TableFormatter struct {
	Verbose bool
}

func (f *TableFormatter) Format(data any) ([]byte, error) {
	var buf bytes.Buffer

	switch r := data.(type) {
	case *SeriesReport:
		f.series(&buf, r)
	case *CoefficientReport:
		f.coefficients(&buf, r)
	case *VerifyReport:
		f.verify(&buf, r)
	default:
		return nil, fmt.Errorf("table output not supported for %T", data)
	}

	return buf.Bytes(), nil
}

func (f *TableFormatter) series(buf *bytes.Buffer, r *SeriesReport) {
	buf.WriteString("Input           Output\n")
	buf.WriteString("----------------------------\n")
	for _, p := range r.Points {
		fmt.Fprintf(buf, "x = %.4f,     y = %.4f\n", p.X, p.Y)
	}

	if !f.Verbose {
		return
	}

	p := message.NewPrinter(language.English)
	buf.WriteString("\n")
	p.Fprintf(buf, "source: %s (%d samples, %d points)\n", r.Source, r.Samples, len(r.Points))
	fmt.Fprintf(buf, "threshold: %g (%d components zeroed)\n", r.Threshold, r.Zeroed)
	writeSummary(buf, "input", r.InputStats)
	writeSummary(buf, "output", r.OutputStats)
}

func writeSummary(buf *bytes.Buffer, label string, s Summary) {
	fmt.Fprintf(buf, "%s: mean=%.4f std=%.4f rms=%.4f min=%.4f max=%.4f\n",
		label, s.Mean, s.StdDev, s.RMS, s.Min, s.Max)
}

func (f *TableFormatter) coefficients(buf *bytes.Buffer, r *CoefficientReport) {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "k\tre\tim\tmagnitude\tphase\tpower dB\t")
	for _, row := range r.Coefficients {
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.2f\t\n",
			row.Index, row.Real, row.Imag, row.Magnitude, row.Phase, row.PowerDB)
	}
	tw.Flush()

	if f.Verbose {
		fmt.Fprintf(buf, "\nthreshold: %g (%d components zeroed)\n", r.Threshold, r.Zeroed)
	}
}

func (f *TableFormatter) verify(buf *bytes.Buffer, r *VerifyReport) {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "backend\tlength\tmax abs error\tround trip\tstatus")
	for _, res := range r.Results {
		status := "ok"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3e\t%.3e\t%s\n", res.Backend, res.Length, res.MaxAbsError, res.RoundTripError, status)
	}
	tw.Flush()

	p := message.NewPrinter(language.English)
	verdict := "passed"
	if !r.Passed() {
		verdict = "FAILED"
	}
	p.Fprintf(buf, "\n%d samples checked against %d references: %s (tolerance %s)\n",
		r.Samples, len(r.Results), verdict, fmt.Sprintf("%g", r.Tolerance))
}
