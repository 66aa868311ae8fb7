package config

import (
	"fmt"

	"github.com/leapstack-labs/sqldialect/internal/alert"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
)

// Outputs lists the accepted output modes.
var Outputs = []string{"auto", "text", "json", "yaml"}

// Validate checks that the configuration refers to known values.
func (c *Config) Validate() error {
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return fmt.Errorf("invalid dialect: %w", err)
	}

	if !validOutput(c.Output) {
		return fmt.Errorf("invalid output %q (want one of %v)", c.Output, Outputs)
	}

	if _, err := alert.ParseShowType(c.Alert.ShowType); err != nil {
		return fmt.Errorf("invalid alert.show_type: %w", err)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

func validOutput(s string) bool {
	for _, o := range Outputs {
		if s == o {
			return true
		}
	}
	return false
}
