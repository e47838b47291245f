package module

import "brandwatch/internal/platform/config"

// Options holds configuration settings for the images module
type Options struct {
	Pages int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	imf := cfg.Prefix("IMAGES_")
	return Options{
		Pages: imf.MayInt("PAGES", 15),
	}
}
