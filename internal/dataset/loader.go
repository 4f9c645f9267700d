package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadError is a fatal load failure (network or parse). Callers must not
// proceed with a partially loaded dataset.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Options controls loading behavior.
type Options struct {
	// HTTPTimeout bounds the fetch when the source is a URL.
	HTTPTimeout time.Duration
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
}

// DefaultOptions returns reasonable defaults for dataset loading.
func DefaultOptions() Options {
	return Options{HTTPTimeout: 30 * time.Second}
}

// knownNumeric forces numeric coercion for the upstream measure columns
// regardless of how messy their cells are.
var knownNumeric = map[string]bool{
	ColOmset:       true,
	ColPajak:       true,
	ColEfektivitas: true,
}

// optionalColumns drive the capability pass; absence is a warning,
// never an error.
var optionalColumns = []struct {
	name string
	cap  Capability
}{
	{ColName, CapIdentifiers},
	{ColKategori, CapCategoryBreakdown},
	{ColSegmentasi, CapSegmentBreakdown},
	{ColOmset, CapRevenueTotals},
	{ColPajak, CapTaxTotals},
	{ColEfektivitas, CapEffectiveness},
	{ColLabelRisiko, CapUpstreamRiskLabels},
}

// Load reads the source table from an http(s) URL or a local path.
// One attempt, fail-fast: any network or parse failure comes back as a
// *LoadError and the dataset must be considered unusable.
func Load(ctx context.Context, source string, opt Options) (*Dataset, error) {
	raw, err := fetch(ctx, source, opt)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	d, err := Parse(raw, opt)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	slog.Info("dataset loaded",
		"source", source,
		"rows", d.Len(),
		"columns", len(d.Columns()),
		"warnings", len(d.Warnings()))
	return d, nil
}

func fetch(ctx context.Context, source string, opt Options) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		timeout := opt.HTTPTimeout
		if timeout <= 0 {
			timeout = DefaultOptions().HTTPTimeout
		}
		client := &http.Client{Timeout: timeout}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
			return nil, fmt.Errorf("fetch: unexpected status %s: %s", resp.Status, string(b))
		}
		return io.ReadAll(resp.Body)
	}
	b, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Parse builds a Dataset from raw CSV bytes. Numeric cells that fail to
// parse become NaN rather than failing the whole load.
func Parse(raw []byte, opt Options) (*Dataset, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(raw)
	}
	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	columns := make([]string, ncol)
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	cells := make([][]string, ncol)
	rows := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		for j := 0; j < ncol; j++ {
			var val string
			if j < len(rec) {
				val = strings.TrimSpace(rec[j])
			}
			cells[j] = append(cells[j], val)
		}
		rows++
	}

	d := &Dataset{
		columns: columns,
		dims:    make(map[string][]string),
		nums:    make(map[string][]float64),
		rows:    rows,
		caps:    make(Capabilities),
	}

	for j, name := range columns {
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
			d.columns[j] = name
		}
		if columnIsNumeric(name, cells[j]) {
			vals := make([]float64, rows)
			misses := 0
			for i, raw := range cells[j] {
				x, ok := parseNumeric(raw)
				if !ok {
					x = math.NaN()
					if raw != "" {
						misses++
					}
				}
				vals[i] = x
			}
			d.nums[name] = vals
			if misses > 0 {
				d.warnings = append(d.warnings,
					fmt.Sprintf("column %s: %d non-numeric values coerced to missing", name, misses))
			}
		} else {
			d.dims[name] = cells[j]
		}
	}

	// Capability pass: decide once which derived views are available.
	for _, oc := range optionalColumns {
		if d.HasColumn(oc.name) {
			d.caps[oc.cap] = true
		} else {
			d.warnings = append(d.warnings, fmt.Sprintf("column %s not found; %s views disabled", oc.name, oc.cap))
		}
	}

	return d, nil
}

// sniffDelimiter inspects the first line and picks the separator with the
// most hits among ',', ';' and tab.
func sniffDelimiter(raw []byte) rune {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	if n := bytes.Count(line, []byte{';'}); n > bestCount {
		best, bestCount = ';', n
	}
	if n := bytes.Count(line, []byte{'\t'}); n > bestCount {
		best = '\t'
	}
	return rune(best)
}

// columnIsNumeric decides coercion per column: the known measure columns
// are always numeric; anything else qualifies when a majority of its
// non-empty cells parse.
func columnIsNumeric(name string, cells []string) bool {
	if knownNumeric[name] {
		return true
	}
	nonEmpty, numeric := 0, 0
	for _, c := range cells {
		if c == "" {
			continue
		}
		nonEmpty++
		if _, ok := parseNumeric(c); ok {
			numeric++
		}
	}
	return nonEmpty > 0 && numeric*2 > nonEmpty
}

// parseNumeric handles plain floats plus the light decoration seen in the
// source exports: thousands commas, a stray "%" suffix, "Rp " prefixes.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "Rp")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return x, true
}
