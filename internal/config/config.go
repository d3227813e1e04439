// Package config defines service configuration and its defaults.
package config

// Config contains process configuration shared by the server and touchctl.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath is the spreadsheet read at startup (.xlsx, .csv or .parquet).
	DataPath string `koanf:"data_path"`

	// Sheet names the workbook sheet to read. Empty means the first sheet.
	Sheet string `koanf:"sheet"`

	// DefaultUsageMin is the lower usage bound preselected on the dashboard.
	DefaultUsageMin float64 `koanf:"default_usage_min"`

	// MaxResultRows caps GET /api/players?limit.
	MaxResultRows int `koanf:"max_result_rows"`

	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DataPath:        "touch_analysis.xlsx",
		DefaultUsageMin: 20,
		MaxResultRows:   5000,
		ChartWidth:      1024,
		ChartHeight:     640,
	}
}
