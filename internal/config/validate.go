package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFilter(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFilter() error {
	switch c.Filter.KeepUntagged {
	case "list", "always", "never":
		return nil
	default:
		return fmt.Errorf("filter.keep_untagged must be one of list, always, never (got %q)", c.Filter.KeepUntagged)
	}
}

func (c *Config) validateOutput() error {
	if strings.ContainsAny(c.Output.Suffix, "/\\") {
		return fmt.Errorf("output.suffix must not contain path separators (got %q)", c.Output.Suffix)
	}
	if strings.ContainsAny(c.Output.Suffix, " \t") {
		return fmt.Errorf("output.suffix must not contain whitespace (got %q)", c.Output.Suffix)
	}
	if !strings.HasPrefix(c.Output.Shell, "/") {
		return fmt.Errorf("output.shell must be an absolute path (got %q)", c.Output.Shell)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}
