package moderation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenRE matches maximal runs of letters and digits in any script.
var tokenRE = regexp.MustCompile(`[\p{L}\p{N}]+`)

// urlRE detects http(s) links anywhere in the text.
var urlRE = regexp.MustCompile(`https?://`)

// Signals is the fixed tuple of low-level features extracted from a text.
// All fields are derived; none are persisted.
type Signals struct {
	KeywordHits  int     // distinct sensational keywords present
	RedFlagHits  int     // distinct red-flag patterns matched
	ClickbaitHit bool    // any clickbait word present as a whole token
	HasURL       bool    // at least one http(s) link
	Exclamations int     // count of '!'
	Questions    int     // count of '?'
	ShoutRatio   float64 // shouting tokens / total tokens
	Length       int     // runes in the combined text
	TokenCount   int
	AvgTokenLen  float64 // runes per token
}

// Extractor derives Signals from a title/body pair. The word lists and
// patterns come from configuration; extraction itself is pure and total.
type Extractor struct {
	Sensational []string
	RedFlags    []*regexp.Regexp
	Clickbait   []string
}

// Extract computes the signal tuple over the concatenation of title and
// body. Empty input yields the zero value.
func (e *Extractor) Extract(title, body string) Signals {
	combined := strings.TrimSpace(title + "\n" + body)
	if combined == "" {
		return Signals{}
	}

	var s Signals
	lower := strings.ToLower(combined)
	for _, w := range e.Sensational {
		if strings.Contains(lower, strings.ToLower(w)) {
			s.KeywordHits++
		}
	}
	for _, re := range e.RedFlags {
		if re.MatchString(combined) {
			s.RedFlagHits++
		}
	}
	s.HasURL = urlRE.MatchString(combined)
	s.Exclamations = strings.Count(combined, "!")
	s.Questions = strings.Count(combined, "?")
	s.Length = utf8.RuneCountInString(combined)

	tokens := tokenRE.FindAllString(combined, -1)
	s.TokenCount = len(tokens)
	if len(tokens) == 0 {
		return s
	}
	var shouting, runes int
	for _, tok := range tokens {
		runes += utf8.RuneCountInString(tok)
		if isShouting(tok) {
			shouting++
		}
		if !s.ClickbaitHit {
			for _, w := range e.Clickbait {
				if strings.EqualFold(tok, w) {
					s.ClickbaitHit = true
					break
				}
			}
		}
	}
	s.ShoutRatio = float64(shouting) / float64(len(tokens))
	s.AvgTokenLen = float64(runes) / float64(len(tokens))
	return s
}

// isShouting reports whether a token is four or more letters, all
// upper-case. Tokens containing digits never count.
func isShouting(tok string) bool {
	n := 0
	for _, r := range tok {
		if !unicode.IsUpper(r) {
			return false
		}
		n++
	}
	return n >= 4
}
