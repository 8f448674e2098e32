package cmd

import (
	"fmt"
	"strings"

	"cosmos-newsdesk/internal/config"
	"cosmos-newsdesk/internal/media"
	"cosmos-newsdesk/internal/moderation"
	"cosmos-newsdesk/internal/redisclient"
	"cosmos-newsdesk/internal/retention"
	"cosmos-newsdesk/internal/storage"
)

// openStore builds the record store selected by configuration. The caller
// owns Close.
func openStore(cfg config.Config) (storage.Store, error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case "redis":
		return storage.NewRedisStore(redisclient.New(cfg.Redis)), nil
	case "sqlite":
		return storage.NewSQLiteStore(cfg.Storage.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// buildClassifier assembles the classifier from the moderation config:
// lexicon (defaults or a YAML file), weight preset, then overrides.
func buildClassifier(cfg config.ModerationConfig) (*moderation.Classifier, error) {
	lex := moderation.DefaultLexicon()
	if cfg.LexiconFile != "" {
		var err error
		if lex, err = moderation.LoadLexicon(cfg.LexiconFile); err != nil {
			return nil, err
		}
	}
	ex, err := moderation.NewExtractor(lex)
	if err != nil {
		return nil, err
	}
	w, err := moderation.PresetWeights(cfg.Preset)
	if err != nil {
		return nil, err
	}
	if w, err = w.WithOverrides(cfg.Weights); err != nil {
		return nil, err
	}
	return moderation.NewClassifier(ex, w), nil
}

func buildPolicy(cfg config.Config, store storage.Store, mediaStore *media.Store) (*retention.Policy, error) {
	clf, err := buildClassifier(cfg.Moderation)
	if err != nil {
		return nil, err
	}
	return &retention.Policy{
		Classifier: clf,
		Store:      store,
		Media:      mediaStore,
		Threshold:  cfg.Moderation.Threshold,
	}, nil
}
