package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReportingConfig holds tunables for report generation. It is hot-reloadable
// so operators can adjust caps without restarting the service.
type ReportingConfig struct {
	// SourceCap limits how many records are pulled from each analytic
	// source table per generation request.
	SourceCap int `mapstructure:"sourceCap"`

	// ReportType is stamped on every generated report row.
	ReportType string `mapstructure:"reportType"`

	// DefaultGeneratedBy is used when the caller does not identify itself.
	DefaultGeneratedBy string `mapstructure:"defaultGeneratedBy"`

	// MinYear is the earliest year accepted by the generation endpoint.
	MinYear int `mapstructure:"minYear"`
}

func DefaultReportingConfig() ReportingConfig {
	return ReportingConfig{
		SourceCap:          50,
		ReportType:         "dashboard",
		DefaultGeneratedBy: "system",
		MinYear:            2020,
	}
}

type ReportingHolder struct {
	current atomic.Value // holds ReportingConfig
}

func NewReportingHolder() (*ReportingHolder, error) {
	v := viper.New()

	v.SetConfigName("reporting")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/drishti/config")
	v.AddConfigPath("/etc/drishti")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DRISHTI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultReportingConfig()
	v.SetDefault("reporting.sourceCap", defaults.SourceCap)
	v.SetDefault("reporting.reportType", defaults.ReportType)
	v.SetDefault("reporting.defaultGeneratedBy", defaults.DefaultGeneratedBy)
	v.SetDefault("reporting.minYear", defaults.MinYear)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg ReportingConfig
	if err := v.UnmarshalKey("reporting", &cfg); err != nil {
		return nil, err
	}
	if err := validateReportingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportingHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReportingConfig
		if err := v.UnmarshalKey("reporting", &updated); err != nil {
			log.Printf("[reporting-config] reload failed: %v", err)
			return
		}
		if err := validateReportingConfig(updated); err != nil {
			log.Printf("[reporting-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[reporting-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticReportingHolder returns a holder pinned to cfg. Used in tests.
func NewStaticReportingHolder(cfg ReportingConfig) *ReportingHolder {
	holder := &ReportingHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *ReportingHolder) Get() ReportingConfig {
	return h.current.Load().(ReportingConfig)
}

func validateReportingConfig(cfg ReportingConfig) error {
	if cfg.SourceCap <= 0 {
		return errors.New("reporting.sourceCap must be positive")
	}
	if cfg.MinYear < 1970 {
		return errors.New("reporting.minYear is out of range")
	}
	return nil
}
