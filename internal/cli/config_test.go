package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphlayers/pkg/errors"
	"github.com/matzehuels/graphlayers/pkg/pipeline"
	"github.com/matzehuels/graphlayers/pkg/report"
)

func TestConfigDefaults(t *testing.T) {
	v := newConfig()

	opts, err := reportOptions(v)
	require.NoError(t, err)
	assert.Equal(t, report.FormatText, opts.Format)
	assert.Equal(t, report.English, opts.Labels)
	assert.False(t, opts.Detailed)
	assert.Equal(t, pipeline.DefaultTTL, cacheTTL(v))
	assert.True(t, v.GetBool(keyCacheEnabled))
	assert.Equal(t, defaultServeAddr, v.GetString(keyServeAddr))
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "config.toml"), `
[report]
format = "json"
locale = "ru"
wrap = 4

[cache]
ttl = "1h"
`)

	v := newConfig()
	require.NoError(t, readConfig(v, path))

	opts, err := reportOptions(v)
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, opts.Format)
	assert.Equal(t, report.Russian.Header, opts.Labels.Header)
	assert.True(t, opts.Labels.BOM)
	assert.Equal(t, 4, opts.Labels.Wrap)
	assert.Equal(t, time.Hour, cacheTTL(v))
}

func TestReadConfigDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, appName, "config.toml"), "[report]\nformat = \"dot\"\n")

	v := newConfig()
	require.NoError(t, readConfig(v, ""))
	assert.Equal(t, report.FormatDOT, v.GetString(keyReportFormat))
}

func TestReadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.NoError(t, readConfig(newConfig(), ""), "default config is optional")

	err := readConfig(newConfig(), filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("GRAPHLAYERS_REPORT_FORMAT", "svg")
	t.Setenv("GRAPHLAYERS_REPORT_BOM", "true")
	t.Setenv("GRAPHLAYERS_CACHE_ENABLED", "false")

	v := newConfig()
	opts, err := reportOptions(v)
	require.NoError(t, err)
	assert.Equal(t, report.FormatSVG, opts.Format)
	assert.True(t, opts.Labels.BOM)
	assert.False(t, v.GetBool(keyCacheEnabled))
}

func TestReportOptionsOverrideLocale(t *testing.T) {
	v := newConfig()
	v.Set(keyReportLocale, "ru")
	v.Set(keyReportBOM, false)
	v.Set(keyReportWrap, 0)

	opts, err := reportOptions(v)
	require.NoError(t, err)
	assert.Equal(t, report.Russian.Layer, opts.Labels.Layer)
	assert.False(t, opts.Labels.BOM)
	assert.Zero(t, opts.Labels.Wrap)
}

func TestReportOptionsLabelsFile(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "labels.toml"), `header = "Schichten:"`+"\n")

	v := newConfig()
	v.Set(keyReportLabels, path)
	opts, err := reportOptions(v)
	require.NoError(t, err)
	assert.Equal(t, "Schichten:", opts.Labels.Header)
	assert.Equal(t, report.English.Total, opts.Labels.Total)
}

func TestReportOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"format", keyReportFormat, "xml"},
		{"locale", keyReportLocale, "fr"},
		{"labels", keyReportLabels, "/nonexistent/labels.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newConfig()
			v.Set(tt.key, tt.val)
			_, err := reportOptions(v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
		})
	}
}
