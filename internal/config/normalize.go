package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeFilter()
	c.normalizeTools()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	extensions := make([]string, 0, len(c.Scan.Extensions))
	seen := make(map[string]struct{}, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		extensions = append(extensions, ext)
	}
	if len(extensions) == 0 {
		extensions = defaultExtensions()
	}
	c.Scan.Extensions = extensions
}

func (c *Config) normalizeFilter() {
	languages := make([]string, 0, len(c.Filter.Languages))
	seen := make(map[string]struct{}, len(c.Filter.Languages))
	for _, lang := range c.Filter.Languages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		languages = append(languages, lang)
	}
	c.Filter.Languages = languages
	c.Filter.KeepUntagged = strings.ToLower(strings.TrimSpace(c.Filter.KeepUntagged))
	if c.Filter.KeepUntagged == "" {
		c.Filter.KeepUntagged = defaultKeepUntagged
	}
}

func (c *Config) normalizeTools() {
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobe
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
}

func (c *Config) normalizeOutput() {
	c.Output.ScriptName = strings.TrimSpace(c.Output.ScriptName)
	if c.Output.ScriptName == "" {
		c.Output.ScriptName = defaultScriptName
	}
	c.Output.Suffix = strings.TrimSpace(c.Output.Suffix)
	if c.Output.Suffix == "" {
		c.Output.Suffix = defaultSuffix
	}
	c.Output.Shell = strings.TrimSpace(c.Output.Shell)
	if c.Output.Shell == "" {
		c.Output.Shell = defaultShell
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
