package module

import "brandwatch/internal/platform/config"

// Options holds configuration settings for the pipeline module
type Options struct {
	WindowMinutes int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("PIPELINE_")
	return Options{
		WindowMinutes: pf.MayInt("WINDOW_MINUTES", 35),
	}
}
