// Package score maps matched terms to confidence values and confidence
// values to delivery decisions
package score

import (
	"strings"
	"unicode"
)

// Decision classifies a scored result
type Decision string

// Decision values
const (
	DecisionNotify  Decision = "notify"
	DecisionLogOnly Decision = "log_only"
	DecisionIgnore  Decision = "ignore"
)

// Thresholds holds the two ordered decision boundaries
// Notify >= LogOnly is validated at config load, not here
type Thresholds struct {
	Notify  float64
	LogOnly float64
}

// Decide maps confidence to a decision with inclusive boundaries
// ties at a boundary favor the higher tier
func Decide(confidence float64, t Thresholds) Decision {
	switch {
	case confidence >= t.Notify:
		return DecisionNotify
	case confidence >= t.LogOnly:
		return DecisionLogOnly
	default:
		return DecisionIgnore
	}
}

// Confidence model per matched term:
//
//	1.00 handle mention (@-prefixed term)
//	0.95 hashtag term or case-insensitive whole-word occurrence
//	0.80 plain substring keyword
//
// Plain keywords deliberately stay substring matches; only handle and
// hashtag terms get word-boundary treatment
const (
	confHandle    = 1.0
	confWholeWord = 0.95
	confSubstring = 0.8
)

// Term scores a single matched term against the post text
func Term(term, text string) float64 {
	if strings.HasPrefix(term, "@") {
		return confHandle
	}
	if strings.HasPrefix(term, "#") || wholeWord(text, term) {
		return confWholeWord
	}
	return confSubstring
}

// Text scores a post as the maximum over its matched terms, 0 when none
func Text(terms []string, text string) float64 {
	best := 0.0
	for _, term := range terms {
		if s := Term(term, text); s > best {
			best = s
		}
	}
	return best
}

// wholeWord reports a case-insensitive occurrence of term in text whose
// neighbours are not letters or digits
func wholeWord(text, term string) bool {
	if term == "" {
		return false
	}
	lt := strings.ToLower(text)
	lw := strings.ToLower(term)
	for start := 0; ; {
		i := strings.Index(lt[start:], lw)
		if i < 0 {
			return false
		}
		i += start
		if boundaryBefore(lt, i) && boundaryAfter(lt, i+len(lw)) {
			return true
		}
		start = i + len(lw)
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := lastRune(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := firstRune(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var out rune
	for _, r := range s {
		out = r
	}
	return out
}
