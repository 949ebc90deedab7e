package config

const (
	defaultLogDir       = "~/.local/share/dubstrip/logs"
	defaultCacheDir     = "~/.cache/dubstrip"
	defaultKeepUntagged = "list"
	defaultFFprobe      = "ffprobe"
	defaultFFmpeg       = "ffmpeg"
	defaultScriptName   = "process-media-files.sh"
	defaultSuffix       = "cleaned"
	defaultShell        = "/bin/bash"
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
)

func defaultExtensions() []string {
	return []string{"mkv", "mp4", "avi"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir,
		},
		Scan: Scan{
			Extensions: defaultExtensions(),
		},
		Filter: Filter{
			KeepUntagged: defaultKeepUntagged,
		},
		Tools: Tools{
			FFprobe: defaultFFprobe,
			FFmpeg:  defaultFFmpeg,
		},
		Output: Output{
			ScriptName:      defaultScriptName,
			Suffix:          defaultSuffix,
			Shell:           defaultShell,
			OverwriteScript: true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
