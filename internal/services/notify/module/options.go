package module

import "brandwatch/internal/platform/config"

// Options holds configuration settings for the notify module
type Options struct {
	TimeoutMS int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	nf := cfg.Prefix("NOTIFY_")
	return Options{
		TimeoutMS: nf.MayInt("TIMEOUT_MS", 10000),
	}
}
