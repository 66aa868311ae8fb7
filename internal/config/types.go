// Package config loads sqldialect CLI configuration.
//
// Values are layered with koanf: built-in defaults, then an optional YAML
// file, then SQLDIALECT_ environment variables, then explicitly set flags.
package config

// Default configuration values.
const (
	DefaultDialect  = "clickhouse"
	DefaultOutput   = "auto"
	DefaultWorkers  = 4
	DefaultShowType = "table"
	DefaultPrompt   = "sql> "
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "SQLDIALECT_"

// Config holds the resolved CLI configuration.
type Config struct {
	Dialect string      `koanf:"dialect"`
	Output  string      `koanf:"output"`
	Verbose bool        `koanf:"verbose"`
	Workers int         `koanf:"workers"`
	Alert   AlertConfig `koanf:"alert"`
	Repl    ReplConfig  `koanf:"repl"`

	// File is the config file that was read, empty when none was found.
	File string `koanf:"-"`
}

// AlertConfig holds defaults for the alert command.
type AlertConfig struct {
	Title    string `koanf:"title"`
	ShowType string `koanf:"show_type"`
	ShowAll  bool   `koanf:"show_all"`
}

// ReplConfig holds settings for the interactive parser.
type ReplConfig struct {
	HistoryFile string `koanf:"history_file"`
	Prompt      string `koanf:"prompt"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Dialect: DefaultDialect,
		Output:  DefaultOutput,
		Workers: DefaultWorkers,
		Alert:   AlertConfig{ShowType: DefaultShowType},
		Repl:    ReplConfig{Prompt: DefaultPrompt},
	}
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"dialect":           DefaultDialect,
		"output":            DefaultOutput,
		"verbose":           false,
		"workers":           DefaultWorkers,
		"alert.title":       "",
		"alert.show_type":   DefaultShowType,
		"alert.show_all":    false,
		"repl.history_file": "",
		"repl.prompt":       DefaultPrompt,
	}
}
