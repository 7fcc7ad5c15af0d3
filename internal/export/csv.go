// Package export writes cycle samples and screen captures to files.
package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/engine-cycle/internal/engine"
)

// Header is the first CSV record.
var Header = []string{"Crank_Angle", "Volume_cm3", "Pressure_bar", "Phase"}

// CommentPrefix starts every trailing metadata line.
const CommentPrefix = "# "

// ErrMalformed is returned when a CSV file does not match Header.
var ErrMalformed = errors.New("export: malformed cycle csv")

// WriteCSV writes points followed by comment lines echoing the model and
// the engine configuration.
func WriteCSV(w io.Writer, points []engine.CyclePoint, cfg engine.Config, m engine.PressureModel) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, p := range points {
		record := []string{
			strconv.FormatFloat(p.Theta, 'f', -1, 64),
			strconv.FormatFloat(p.Volume, 'f', 3, 64),
			strconv.FormatFloat(p.Pressure, 'f', 4, 64),
			p.Phase.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write row at %v°: %w", p.Theta, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	meta, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("export: encode config: %w", err)
	}
	fmt.Fprintf(bw, "%smodel: %s\n", CommentPrefix, m.ID())
	fmt.Fprintf(bw, "%ssamples: %d\n", CommentPrefix, len(points))
	for _, line := range strings.Split(strings.TrimRight(string(meta), "\n"), "\n") {
		fmt.Fprintf(bw, "%s%s\n", CommentPrefix, line)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// WriteCycle samples one cycle of e under m at step degrees and writes it.
func WriteCycle(w io.Writer, e *engine.Engine, m engine.PressureModel, step float64) error {
	points, err := e.SampleCycle(m, step)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return WriteCSV(w, points, e.Config(), m)
}

// ReadCSV parses a file produced by WriteCSV. Comment lines are skipped.
func ReadCSV(r io.Reader) ([]engine.CyclePoint, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if strings.Join(head, ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("%w: header %q", ErrMalformed, head)
	}

	var points []engine.CyclePoint
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		var p engine.CyclePoint
		if p.Theta, err = strconv.ParseFloat(record[0], 64); err != nil {
			return nil, fmt.Errorf("%w: angle %q", ErrMalformed, record[0])
		}
		if p.Volume, err = strconv.ParseFloat(record[1], 64); err != nil {
			return nil, fmt.Errorf("%w: volume %q", ErrMalformed, record[1])
		}
		if p.Pressure, err = strconv.ParseFloat(record[2], 64); err != nil {
			return nil, fmt.Errorf("%w: pressure %q", ErrMalformed, record[2])
		}
		if err := p.Phase.UnmarshalText([]byte(record[3])); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		points = append(points, p)
	}
	return points, nil
}

// FileName returns a timestamped file name for a model's export.
func FileName(m engine.PressureModel, t time.Time) string {
	return fmt.Sprintf("engine_cycle_%s_%s.csv", m.ID(), t.Format("20060102_150405"))
}

// SaveCycle writes a cycle export into dir, creating it if needed, and
// returns the file path.
func SaveCycle(dir string, e *engine.Engine, m engine.PressureModel, step float64) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, FileName(m, time.Now()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := WriteCycle(f, e, m, step); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}
