package moderation

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the language-specific word lists behind the extractor.
// Red flags are regular expressions; the other lists are plain words.
type Lexicon struct {
	Sensational []string `yaml:"sensational"`
	RedFlags    []string `yaml:"red_flags"`
	Clickbait   []string `yaml:"clickbait"`
}

// DefaultLexicon is the built-in Russian/English space-news list set.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Sensational: []string{
			"ШОК", "СРОЧНО", "НЕВЕРОЯТНО", "СЕНСАЦИЯ",
			"РАЗОБЛАЧЕНО", "СКАНДАЛ", "EXCLUSIVE", "BREAKING",
		},
		RedFlags: []string{
			`(?i)плоская\s+земля`,
			`(?i)рептилоид`,
			`(?i)(^|\P{L})нло(\P{L}|$)`,
			`(?i)заговор`,
		},
		Clickbait: []string{"сенсация", "шок", "эксклюзив"},
	}
}

// LoadLexicon reads word lists from a YAML file. Sections missing from the
// file keep their default values.
func LoadLexicon(path string) (Lexicon, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}
	lex := DefaultLexicon()
	if err := yaml.Unmarshal(b, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return lex, nil
}

// NewExtractor compiles a lexicon into an Extractor.
func NewExtractor(lex Lexicon) (*Extractor, error) {
	ex := &Extractor{
		Sensational: lex.Sensational,
		Clickbait:   lex.Clickbait,
	}
	for _, pat := range lex.RedFlags {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("compile red-flag pattern %q: %w", pat, err)
		}
		ex.RedFlags = append(ex.RedFlags, re)
	}
	return ex, nil
}
