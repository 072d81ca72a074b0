// Package report renders timing results and delivers them to their
// destination.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/harrison/ntime/internal/config"
	"github.com/harrison/ntime/internal/timer"
)

// resultLabel prefixes the human readable result line.
const resultLabel = "ntime approx. wall time result: "

// Record is the YAML form of a timed run.
type Record struct {
	RunID     string   `yaml:"run_id"`
	Program   string   `yaml:"program"`
	Args      []string `yaml:"args"`
	StartedAt string   `yaml:"started_at"`
	ElapsedNS uint64   `yaml:"elapsed_ns"`
	ExitCode  int      `yaml:"exit_code"`
	Pid       int      `yaml:"pid"`
}

// Formatter renders a timer.Result according to a RunConfig.
type Formatter struct {
	format   config.OutputFormat
	useColor bool
	newID    func() string
}

// NewFormatter creates a Formatter for cfg.
func NewFormatter(cfg config.RunConfig) *Formatter {
	return &Formatter{
		format:   cfg.EffectiveFormat(),
		useColor: cfg.UseColor(),
		newID:    func() string { return uuid.New().String() },
	}
}

// Format renders res, which must not be nil.
func (f *Formatter) Format(res *timer.Result) ([]byte, error) {
	switch f.format {
	case config.FormatNumeric:
		return []byte(strconv.FormatUint(res.ElapsedNanos, 10) + "\n"), nil
	case config.FormatYAML:
		return f.formatYAML(res)
	default:
		return []byte(f.formatText(res.ElapsedNanos)), nil
	}
}

// formatText builds "\n<label><ns>ns\n". With colour the label is bold red,
// the value green and the unit cyan.
func (f *Formatter) formatText(ns uint64) string {
	value := strconv.FormatUint(ns, 10)
	if !f.useColor {
		return "\n" + resultLabel + value + "ns\n"
	}

	label := color.New(color.FgRed, color.Bold)
	number := color.New(color.FgGreen)
	unit := color.New(color.FgCyan)
	for _, c := range []*color.Color{label, number, unit} {
		c.EnableColor()
	}

	return fmt.Sprintf("\n%s%s%s\n", label.Sprint(resultLabel), number.Sprint(value), unit.Sprint("ns"))
}

func (f *Formatter) formatYAML(res *timer.Result) ([]byte, error) {
	rec := Record{
		RunID:     f.newID(),
		Program:   res.Program,
		Args:      res.Args,
		StartedAt: res.StartedAt.UTC().Format(time.RFC3339Nano),
		ElapsedNS: res.ElapsedNanos,
		ExitCode:  res.ExitCode,
		Pid:       res.Pid,
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}
