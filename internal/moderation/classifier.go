package moderation

import (
	"fmt"
	"math"
	"strings"
)

// Thresholds for the text-shape bonuses.
const (
	shortTextLimit   = 280 // runes
	lowRichnessLimit = 4.0 // average runes per token
)

// Weights is the additive scoring table applied to extracted Signals.
// All weights are non-negative; caps bound the punctuation and shouting
// contributions.
type Weights struct {
	Keyword        float64 `mapstructure:"keyword"`
	RedFlag        float64 `mapstructure:"red_flag"`
	NoURL          float64 `mapstructure:"no_url"`
	Exclamation    float64 `mapstructure:"exclamation"`
	ExclamationCap float64 `mapstructure:"exclamation_cap"`
	Question       float64 `mapstructure:"question"`
	QuestionCap    float64 `mapstructure:"question_cap"`
	Shouting       float64 `mapstructure:"shouting"`
	ShoutingCap    float64 `mapstructure:"shouting_cap"`
	ShortText      float64 `mapstructure:"short_text"`
	LowRichness    float64 `mapstructure:"low_richness"`
	Clickbait      float64 `mapstructure:"clickbait"`
}

// BaselineWeights is the softer scoring table.
func BaselineWeights() Weights {
	return Weights{
		Keyword:        8,
		RedFlag:        15,
		NoURL:          12,
		Exclamation:    1.5,
		ExclamationCap: 15,
		Question:       1.2,
		QuestionCap:    12,
		Shouting:       100,
		ShoutingCap:    20,
		ShortText:      6,
		LowRichness:    4,
		Clickbait:      0,
	}
}

// StrictWeights is the strengthened table and the canonical default.
func StrictWeights() Weights {
	return Weights{
		Keyword:        10,
		RedFlag:        18,
		NoURL:          12,
		Exclamation:    2.0,
		ExclamationCap: 20,
		Question:       1.5,
		QuestionCap:    15,
		Shouting:       120,
		ShoutingCap:    25,
		ShortText:      6,
		LowRichness:    5,
		Clickbait:      7,
	}
}

// PresetWeights resolves a preset name. An empty name means strict.
func PresetWeights(name string) (Weights, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		return StrictWeights(), nil
	case "baseline":
		return BaselineWeights(), nil
	}
	return Weights{}, fmt.Errorf("unknown weight preset %q", name)
}

// WithOverrides returns a copy with individual weights replaced. Keys use
// the mapstructure names from the Weights struct.
func (w Weights) WithOverrides(overrides map[string]float64) (Weights, error) {
	for key, val := range overrides {
		switch key {
		case "keyword":
			w.Keyword = val
		case "red_flag":
			w.RedFlag = val
		case "no_url":
			w.NoURL = val
		case "exclamation":
			w.Exclamation = val
		case "exclamation_cap":
			w.ExclamationCap = val
		case "question":
			w.Question = val
		case "question_cap":
			w.QuestionCap = val
		case "shouting":
			w.Shouting = val
		case "shouting_cap":
			w.ShoutingCap = val
		case "short_text":
			w.ShortText = val
		case "low_richness":
			w.LowRichness = val
		case "clickbait":
			w.Clickbait = val
		default:
			return Weights{}, fmt.Errorf("unknown weight override %q", key)
		}
	}
	return w, nil
}

// Classifier combines extracted signals into a bounded fake score.
type Classifier struct {
	ex *Extractor
	w  Weights
}

func NewClassifier(ex *Extractor, w Weights) *Classifier {
	return &Classifier{ex: ex, w: w}
}

// Score rates a title/body pair from 0 (credible) to 100 (almost surely
// fake). Deterministic, never fails; empty input scores exactly 0.
func (c *Classifier) Score(title, body string) float64 {
	s := c.ex.Extract(title, body)
	if s.Length == 0 {
		return 0
	}

	score := float64(s.KeywordHits) * c.w.Keyword
	score += float64(s.RedFlagHits) * c.w.RedFlag
	if !s.HasURL {
		score += c.w.NoURL
	}
	score += math.Min(float64(s.Exclamations)*c.w.Exclamation, c.w.ExclamationCap)
	score += math.Min(float64(s.Questions)*c.w.Question, c.w.QuestionCap)
	score += math.Min(s.ShoutRatio*c.w.Shouting, c.w.ShoutingCap)
	if s.Length < shortTextLimit {
		score += c.w.ShortText
	}
	if s.TokenCount > 0 && s.AvgTokenLen < lowRichnessLimit {
		score += c.w.LowRichness
	}
	if s.ClickbaitHit {
		score += c.w.Clickbait
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
