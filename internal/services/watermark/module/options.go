package module

import "brandwatch/internal/platform/config"

// Options holds configuration settings for the watermark module
type Options struct {
	Backend  string
	FilePath string
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("STATE_")
	return Options{
		Backend:  sf.MayEnum("BACKEND", "file", "pg", "file"),
		FilePath: sf.MayString("FILE", ".state/watermarks.json"),
	}
}
