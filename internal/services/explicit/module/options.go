package module

import "brandwatch/internal/platform/config"

// Options holds configuration settings for the explicit module
type Options struct {
	MentionPages int
	KeywordPages int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("EXPLICIT_")
	return Options{
		MentionPages: ef.MayInt("MENTION_PAGES", 10),
		KeywordPages: ef.MayInt("KEYWORD_PAGES", 20),
	}
}
