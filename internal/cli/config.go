package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/graphlayers/pkg/errors"
	"github.com/matzehuels/graphlayers/pkg/pipeline"
	"github.com/matzehuels/graphlayers/pkg/report"
)

// envPrefix prefixes environment overrides, e.g. GRAPHLAYERS_REPORT_FORMAT.
const envPrefix = "GRAPHLAYERS"

// Configuration keys.
const (
	keyVerbose       = "verbose"
	keyLogFile       = "log_file"
	keyTrace         = "trace"
	keyReportFormat  = "report.format"
	keyReportLabels  = "report.labels"
	keyReportLocale  = "report.locale"
	keyReportBOM     = "report.bom"
	keyReportWrap    = "report.wrap"
	keyReportDetail  = "report.detailed"
	keyCacheEnabled  = "cache.enabled"
	keyCacheDir      = "cache.dir"
	keyCacheRedisURL = "cache.redis_url"
	keyCacheTTL      = "cache.ttl"
	keyServeAddr     = "serve.addr"
)

// defaultServeAddr is the listen address of the serve command.
const defaultServeAddr = ":8080"

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyVerbose, false)
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyTrace, false)
	v.SetDefault(keyReportFormat, report.FormatText)
	v.SetDefault(keyReportLabels, "")
	v.SetDefault(keyReportLocale, "en")
	v.SetDefault(keyReportDetail, false)
	v.SetDefault(keyCacheEnabled, true)
	v.SetDefault(keyCacheDir, "")
	v.SetDefault(keyCacheRedisURL, "")
	v.SetDefault(keyCacheTTL, pipeline.DefaultTTL)
	v.SetDefault(keyServeAddr, defaultServeAddr)
	return v
}

// readConfig loads the config file. An explicit path must exist; the
// default path is optional.
func readConfig(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := stderrors.Is(err, fs.ErrNotExist) || stderrors.As(err, &notFound)
		if missing && !explicit {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "read config %s", path)
	}
	return nil
}

// reportOptions builds report options from the configuration.
func reportOptions(v *viper.Viper) (report.Options, error) {
	format := strings.ToLower(v.GetString(keyReportFormat))
	if !report.ValidFormat(format) {
		return report.Options{}, errors.New(errors.ErrCodeInvalidArgument,
			"invalid format %q (must be one of: %s)", format, strings.Join(report.Formats(), ", "))
	}

	labels, err := report.ForLocale(v.GetString(keyReportLocale))
	if err != nil {
		return report.Options{}, errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid locale")
	}
	if path := v.GetString(keyReportLabels); path != "" {
		if labels, err = report.LoadLabels(path, labels); err != nil {
			return report.Options{}, errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid labels")
		}
	}
	// bom and wrap have no defaults so that only explicit values override
	// the label pack.
	if v.IsSet(keyReportBOM) {
		labels.BOM = v.GetBool(keyReportBOM)
	}
	if v.IsSet(keyReportWrap) {
		labels.Wrap = v.GetInt(keyReportWrap)
	}

	return report.Options{
		Format:   format,
		Labels:   labels,
		Detailed: v.GetBool(keyReportDetail),
	}, nil
}

func cacheTTL(v *viper.Viper) time.Duration {
	if ttl := v.GetDuration(keyCacheTTL); ttl > 0 {
		return ttl
	}
	return pipeline.DefaultTTL
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphlayers/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/graphlayers/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
