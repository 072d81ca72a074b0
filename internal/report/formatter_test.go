package report

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harrison/ntime/internal/config"
	"github.com/harrison/ntime/internal/timer"
)

func sampleResult() *timer.Result {
	return &timer.Result{
		Program:      "sleep",
		Args:         []string{"sleep", "1"},
		Pid:          4242,
		ExitCode:     0,
		StartedAt:    time.Date(2026, 10, 19, 12, 0, 0, 5, time.UTC),
		ElapsedNanos: 1002345678,
	}
}

func TestFormatNumeric(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.NumericOnly = true

	out, err := NewFormatter(cfg).Format(sampleResult())
	require.NoError(t, err)

	assert.Equal(t, "1002345678\n", string(out))
	assert.Regexp(t, regexp.MustCompile(`^[0-9]+\n$`), string(out))
}

func TestFormatNumericIgnoresColorAndYAML(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.NumericOnly = true
	cfg.Colorize = true
	cfg.Format = config.FormatYAML

	out, err := NewFormatter(cfg).Format(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, "1002345678\n", string(out))
}

func TestFormatTextPlain(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Colorize = false

	out, err := NewFormatter(cfg).Format(sampleResult())
	require.NoError(t, err)

	assert.Equal(t, "\nntime approx. wall time result: 1002345678ns\n", string(out))
	assert.NotContains(t, string(out), "\x1b[")
}

func TestFormatTextColored(t *testing.T) {
	cfg := config.DefaultConfig()

	out, err := NewFormatter(cfg).Format(sampleResult())
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "\n\x1b[31;1m"+resultLabel), "got %q", s)
	assert.Contains(t, s, "\x1b[32m1002345678")
	assert.Contains(t, s, "\x1b[36mns")
	assert.True(t, strings.HasSuffix(s, "\n"))

	// Stripping escapes leaves the plain line.
	plain := regexp.MustCompile("\x1b\\[[0-9;]*m").ReplaceAllString(s, "")
	assert.Equal(t, "\nntime approx. wall time result: 1002345678ns\n", plain)
}

func TestFormatYAML(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatYAML

	f := NewFormatter(cfg)
	f.newID = func() string { return "11111111-2222-3333-4444-555555555555" }

	res := sampleResult()
	res.ExitCode = 3

	out, err := f.Format(res)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "---\n"))
	assert.NotContains(t, string(out), "\x1b[")

	var rec Record
	require.NoError(t, yaml.Unmarshal(out, &rec))
	assert.Equal(t, Record{
		RunID:     "11111111-2222-3333-4444-555555555555",
		Program:   "sleep",
		Args:      []string{"sleep", "1"},
		StartedAt: "2026-10-19T12:00:00.000000005Z",
		ElapsedNS: 1002345678,
		ExitCode:  3,
		Pid:       4242,
	}, rec)
}

func TestFormatYAMLGeneratesRunIDs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatYAML
	f := NewFormatter(cfg)

	first, err := f.Format(sampleResult())
	require.NoError(t, err)
	second, err := f.Format(sampleResult())
	require.NoError(t, err)

	var a, b Record
	require.NoError(t, yaml.Unmarshal(first, &a))
	require.NoError(t, yaml.Unmarshal(second, &b))
	assert.Len(t, a.RunID, 36)
	assert.NotEqual(t, a.RunID, b.RunID)
}
