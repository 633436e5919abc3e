package config

import (
	"fmt"
	"strings"
	"time"

	validator "github.com/asaskevich/govalidator"
	"github.com/prebid/prebid-content-server/errortypes"
	"github.com/prebid/prebid-content-server/logger"
	"github.com/spf13/viper"
)

// Configuration specifies the static application config.
type Configuration struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	AdminPort  int    `mapstructure:"admin_port"`
	EnableGzip bool   `mapstructure:"enable_gzip"`
	// MaxRequestSize is the largest body, in bytes, accepted by the content endpoints.
	MaxRequestSize int64 `mapstructure:"max_request_size"`
	// StatusResponse is returned by /status. An empty value answers 204 No Content.
	StatusResponse        string                `mapstructure:"status_response"`
	RequestTimeoutHeaders RequestTimeoutHeaders `mapstructure:"request_timeout_headers"`
	Metrics               Metrics               `mapstructure:"metrics"`
}

// RequestTimeoutHeaders names the headers a load balancer sets to say how long a request
// sat in its queue and how long it may wait in total. Either one empty disables the check.
type RequestTimeoutHeaders struct {
	RequestTimeInQueue    string `mapstructure:"request_time_in_queue"`
	RequestTimeoutInQueue string `mapstructure:"request_timeout_in_queue"`
}

type Metrics struct {
	Influxdb   InfluxMetrics     `mapstructure:"influxdb"`
	Prometheus PrometheusMetrics `mapstructure:"prometheus"`
	Disabled   DisabledMetrics   `mapstructure:"disabled_metrics"`
}

type InfluxMetrics struct {
	Host               string `mapstructure:"host"`
	Database           string `mapstructure:"database"`
	Measurement        string `mapstructure:"measurement"`
	Username           string `mapstructure:"username"`
	Password           string `mapstructure:"password"`
	MetricSendInterval int    `mapstructure:"metric_send_interval"`
}

type PrometheusMetrics struct {
	Port             int    `mapstructure:"port"`
	Namespace        string `mapstructure:"namespace"`
	Subsystem        string `mapstructure:"subsystem"`
	TimeoutMillisRaw int    `mapstructure:"timeout_ms"`
}

func (cfg *PrometheusMetrics) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutMillisRaw) * time.Millisecond
}

type DisabledMetrics struct {
	// ContentContext disables the per content category counters.
	ContentContext bool `mapstructure:"content_context"`
}

func (cfg *Configuration) validate() []error {
	var errs []error
	errs = validatePort(errs, "port", cfg.Port)
	errs = validatePort(errs, "admin_port", cfg.AdminPort)
	if cfg.Port == cfg.AdminPort {
		errs = append(errs, &errortypes.InvalidConfig{Message: fmt.Sprintf("port and admin_port must differ, both are %d", cfg.Port)})
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, &errortypes.InvalidConfig{Message: fmt.Sprintf("max_request_size must be positive. Got %d", cfg.MaxRequestSize)})
	}
	return cfg.Metrics.validate(errs, cfg.Port, cfg.AdminPort)
}

func (cfg *Metrics) validate(errs []error, usedPorts ...int) []error {
	if cfg.Prometheus.Port != 0 {
		errs = validatePort(errs, "metrics.prometheus.port", cfg.Prometheus.Port)
		for _, used := range usedPorts {
			if cfg.Prometheus.Port == used {
				errs = append(errs, &errortypes.InvalidConfig{Message: fmt.Sprintf("metrics.prometheus.port %d is already used by another listener", used)})
			}
		}
		if cfg.Prometheus.TimeoutMillisRaw <= 0 {
			errs = append(errs, &errortypes.InvalidConfig{Message: fmt.Sprintf("metrics.prometheus.timeout_ms must be positive. Got %d", cfg.Prometheus.TimeoutMillisRaw)})
		}
	}
	if cfg.Influxdb.Host != "" {
		if !validator.IsRequestURL(cfg.Influxdb.Host) {
			errs = append(errs, &errortypes.InvalidConfig{Message: fmt.Sprintf("metrics.influxdb.host must be an absolute URL. Got %s", cfg.Influxdb.Host)})
		}
		if cfg.Influxdb.MetricSendInterval <= 0 {
			errs = append(errs, &errortypes.InvalidConfig{Message: fmt.Sprintf("metrics.influxdb.metric_send_interval must be positive. Got %d", cfg.Influxdb.MetricSendInterval)})
		}
		if cfg.Influxdb.Database == "" {
			errs = append(errs, &errortypes.Warning{
				Message:     "metrics.influxdb.database is empty, the InfluxDB server default will be used",
				WarningCode: errortypes.IgnoredConfigWarningCode,
			})
		}
	}
	return errs
}

func validatePort(errs []error, key string, port int) []error {
	if port < 1 || port > 65535 {
		errs = append(errs, &errortypes.InvalidConfig{Message: fmt.Sprintf("%s must be in the range 1-65535. Got %d", key, port)})
	}
	return errs
}

// New uses viper to get our server configurations. Warnings are logged; any fatal error is returned
// as an errortypes.AggregateErrors.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}

	errs := c.validate()
	for _, err := range errs {
		if errortypes.IsWarning(err) {
			logger.Warnf("%v", err)
		}
	}
	if errortypes.ContainsFatalError(errs) {
		return nil, errortypes.NewAggregateErrors("validation errors", errortypes.FatalOnly(errs))
	}

	logger.Infof("Max request size: %d bytes", c.MaxRequestSize)
	return &c, nil
}

// SetupViper sets the defaults, config file locations and environment bindings.
// An empty filename skips reading a config file, which is what tests want.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("enable_gzip", false)
	v.SetDefault("max_request_size", 1024*64)
	v.SetDefault("status_response", "")
	v.SetDefault("request_timeout_headers.request_time_in_queue", "")
	v.SetDefault("request_timeout_headers.request_timeout_in_queue", "")
	v.SetDefault("metrics.influxdb.host", "")
	v.SetDefault("metrics.influxdb.database", "")
	v.SetDefault("metrics.influxdb.measurement", "")
	v.SetDefault("metrics.influxdb.username", "")
	v.SetDefault("metrics.influxdb.password", "")
	v.SetDefault("metrics.influxdb.metric_send_interval", 20)
	v.SetDefault("metrics.prometheus.port", 0)
	v.SetDefault("metrics.prometheus.namespace", "")
	v.SetDefault("metrics.prometheus.subsystem", "")
	v.SetDefault("metrics.prometheus.timeout_ms", 10000)
	v.SetDefault("metrics.disabled_metrics.content_context", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("PCS")
	v.AutomaticEnv()

	if filename != "" {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				logger.Warnf("Failed to read config file %s: %v", filename, err)
			}
		}
	}
}
