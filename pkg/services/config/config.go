// Package config loads service settings and data-source profiles.
package config

import (
	"strings"
	"time"

	"github.com/de-tools/project-atlas/pkg/services/insights"
	"github.com/de-tools/project-atlas/pkg/services/metrics"
	"github.com/de-tools/project-atlas/pkg/store/duckdb"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "ATLAS"

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SyncConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	Sleep        time.Duration `mapstructure:"sleep"`
	ProfilesPath string        `mapstructure:"profiles"`
}

type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Store    duckdb.Settings   `mapstructure:"store"`
	Log      LogConfig         `mapstructure:"log"`
	Metrics  metrics.Settings  `mapstructure:"metrics"`
	Insights insights.Settings `mapstructure:"insights"`
	Sync     SyncConfig        `mapstructure:"sync"`
}

func setDefaults(v *viper.Viper) {
	store := duckdb.DefaultSettings()
	m := metrics.DefaultSettings()
	in := insights.DefaultSettings()

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("store.path", store.DbPath)
	v.SetDefault("store.threads", store.Threads)

	v.SetDefault("log.level", zerolog.InfoLevel.String())

	v.SetDefault("metrics.critical_variance_pct", m.CriticalVariancePct)
	v.SetDefault("metrics.high_variance_pct", m.HighVariancePct)
	v.SetDefault("metrics.low_rating_threshold", m.LowRatingThreshold)

	v.SetDefault("insights.overrun_pct", in.OverrunPct)
	v.SetDefault("insights.watch_pct", in.WatchPct)
	v.SetDefault("insights.savings_pct", in.SavingsPct)
	v.SetDefault("insights.risk_share", in.RiskShare)
	v.SetDefault("insights.change_order_share", in.ChangeOrderShare)
	v.SetDefault("insights.min_completion_rate", in.MinCompletionRate)
	v.SetDefault("insights.min_records_for_completion", in.MinRecordsForCompletion)
	v.SetDefault("insights.record_overrun_pct", in.RecordOverrunPct)

	v.SetDefault("sync.interval", time.Minute)
	v.SetDefault("sync.sleep", 10*time.Second)
	v.SetDefault("sync.profiles", "profiles.ini")
}

// Load reads path (optional) on top of the defaults. ATLAS_* variables override both,
// e.g. ATLAS_SERVER_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, eris.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "failed to parse config")
	}
	return &cfg, nil
}

// LogLevel parses the configured level, falling back to info.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
