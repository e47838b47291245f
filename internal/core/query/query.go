// Package query builds search query strings and time-window markers
// The query grammar and the watermark string are wire contracts with the
// external search API and must be reproduced byte for byte
package query

import (
	"fmt"
	"strings"
	"time"
)

// Explicit builds the keyword search query
// ("k1" OR "k2") lang:en -is:retweet since:<marker>
// Keywords are quoted verbatim in input order
// Embedded quotes are not escaped; known limitation of the upstream grammar
func Explicit(keywords []string, language, sinceMarker string) string {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		quoted = append(quoted, `"`+k+`"`)
	}
	return fmt.Sprintf("(%s) lang:%s -is:retweet since:%s",
		strings.Join(quoted, " OR "), language, sinceMarker)
}

// ImageOnly builds the image-bearing search query that excludes posts
// already covered by the explicit terms
// has:images -(<clause>) lang:en -is:retweet since:<marker>
// Terms starting with @ or # stay unquoted, everything else is quoted
func ImageOnly(excludeTerms []string, language, sinceMarker string) string {
	rendered := make([]string, 0, len(excludeTerms))
	for _, t := range excludeTerms {
		if strings.HasPrefix(t, "@") || strings.HasPrefix(t, "#") {
			rendered = append(rendered, t)
		} else {
			rendered = append(rendered, `"`+t+`"`)
		}
	}
	return fmt.Sprintf("has:images -(%s) lang:%s -is:retweet since:%s",
		strings.Join(rendered, " OR "), language, sinceMarker)
}

// WatermarkString formats t as YYYY-MM-DD_HH:MM:SS_UTC from its UTC
// calendar fields
func WatermarkString(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%04d-%02d-%02d_%02d:%02d:%02d_UTC",
		u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
}

// WithinWindow reports whether created falls inside the run window
// the lower bound is inclusive
func WithinWindow(created, windowStart time.Time) bool {
	return !created.Before(windowStart)
}
