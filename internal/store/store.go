// Package store loads and saves the YAML-backed configuration the pipeline
// consumes: the ordered rule list, the provider-category fallback table, and
// both user override sets.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"jharlow/monzo-budget/internal/logging"
	"jharlow/monzo-budget/internal/models"
	"jharlow/monzo-budget/internal/payee"
	"jharlow/monzo-budget/internal/pipeerror"
)

// RuleStore manages the configuration files backing a pipeline run.
type RuleStore struct {
	RulesFile             string
	FallbackFile          string
	CategoryOverridesFile string
	BillOverridesFile     string

	logger logging.Logger
}

// NewRuleStore creates a store over the given file paths.
func NewRuleStore(rulesFile, fallbackFile, categoryOverridesFile, billOverridesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &RuleStore{
		RulesFile:             rulesFile,
		FallbackFile:          fallbackFile,
		CategoryOverridesFile: categoryOverridesFile,
		BillOverridesFile:     billOverridesFile,
		logger:                logger,
	}
}

// rulesDocument is the on-disk shape of the rules file.
type rulesDocument struct {
	Rules []models.Rule `yaml:"rules"`
}

// LoadRules loads the ordered rule list. A missing or malformed rules file
// is a configuration error: classification cannot run without it. File
// order is preserved exactly; it is part of the configuration.
func (s *RuleStore) LoadRules() ([]models.Rule, error) {
	data, err := os.ReadFile(s.RulesFile)
	if err != nil {
		return nil, &pipeerror.ConfigError{File: s.RulesFile, Reason: "rules file unreadable", Err: err}
	}

	var doc rulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &pipeerror.ConfigError{File: s.RulesFile, Reason: "rules file malformed", Err: err}
	}
	if len(doc.Rules) == 0 {
		return nil, &pipeerror.ConfigError{File: s.RulesFile, Reason: "rules file contains no rules"}
	}

	for i, rule := range doc.Rules {
		if rule.Pattern == "" {
			return nil, &pipeerror.ConfigError{
				File:   s.RulesFile,
				Reason: fmt.Sprintf("rule %d (%s) has an empty pattern", i, rule.ID),
			}
		}
		if rule.Confidence < 0 || rule.Confidence > 1 {
			return nil, &pipeerror.ConfigError{
				File:   s.RulesFile,
				Reason: fmt.Sprintf("rule %s confidence %v outside [0,1]", rule.ID, rule.Confidence),
			}
		}
	}

	s.logger.WithField("count", len(doc.Rules)).Debug("Loaded categorization rules")
	return doc.Rules, nil
}

// LoadFallbackMap loads the provider-category fallback table, keyed by
// lower-cased provider category label. A missing file yields the built-in
// default table; a malformed file is a configuration error.
func (s *RuleStore) LoadFallbackMap() (map[string]models.FallbackEntry, error) {
	data, err := os.ReadFile(s.FallbackFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", s.FallbackFile).Debug("Fallback file not found, using default table")
			return DefaultFallbackMap(), nil
		}
		return nil, &pipeerror.ConfigError{File: s.FallbackFile, Reason: "fallback file unreadable", Err: err}
	}

	var entries map[string]models.FallbackEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, &pipeerror.ConfigError{File: s.FallbackFile, Reason: "fallback file malformed", Err: err}
	}

	s.logger.WithField("count", len(entries)).Debug("Loaded fallback category table")
	return entries, nil
}

// LoadCategoryOverrides loads the payee-keyed category override map. Missing
// file means no overrides. Keys are re-normalized on load so hand-edited
// files still join correctly.
func (s *RuleStore) LoadCategoryOverrides() (map[string]models.CategoryOverride, error) {
	data, err := os.ReadFile(s.CategoryOverridesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.CategoryOverride{}, nil
		}
		return nil, fmt.Errorf("error reading category overrides: %w", err)
	}

	var entries []models.CategoryOverride
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing category overrides: %w", err)
	}

	overrides := make(map[string]models.CategoryOverride, len(entries))
	for _, entry := range entries {
		entry.PayeeKey = payee.NormalizeKey(entry.PayeeKey)
		if entry.PayeeKey == "" {
			continue
		}
		overrides[entry.PayeeKey] = entry
	}

	s.logger.WithField("count", len(overrides)).Debug("Loaded category overrides")
	return overrides, nil
}

// LoadBillOverrides loads the payee-keyed bill override set.
func (s *RuleStore) LoadBillOverrides() (map[string]models.BillOverride, error) {
	data, err := os.ReadFile(s.BillOverridesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.BillOverride{}, nil
		}
		return nil, fmt.Errorf("error reading bill overrides: %w", err)
	}

	var entries []models.BillOverride
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing bill overrides: %w", err)
	}

	overrides := make(map[string]models.BillOverride, len(entries))
	for _, entry := range entries {
		entry.PayeeKey = payee.NormalizeKey(entry.PayeeKey)
		if entry.PayeeKey == "" {
			continue
		}
		overrides[entry.PayeeKey] = entry
	}

	s.logger.WithField("count", len(overrides)).Debug("Loaded bill overrides")
	return overrides, nil
}

// LoadOverrides loads both override sets.
func (s *RuleStore) LoadOverrides() (models.Overrides, error) {
	categories, err := s.LoadCategoryOverrides()
	if err != nil {
		return models.Overrides{}, err
	}
	bills, err := s.LoadBillOverrides()
	if err != nil {
		return models.Overrides{}, err
	}
	return models.Overrides{Categories: categories, Bills: bills}, nil
}

// SaveCategoryOverrides writes the category override map back to disk.
func (s *RuleStore) SaveCategoryOverrides(overrides map[string]models.CategoryOverride) error {
	entries := make([]models.CategoryOverride, 0, len(overrides))
	for _, entry := range overrides {
		entries = append(entries, entry)
	}
	sortCategoryOverrides(entries)
	return s.writeYAML(s.CategoryOverridesFile, entries)
}

// SaveBillOverrides writes the bill override set back to disk.
func (s *RuleStore) SaveBillOverrides(overrides map[string]models.BillOverride) error {
	entries := make([]models.BillOverride, 0, len(overrides))
	for _, entry := range overrides {
		entries = append(entries, entry)
	}
	sortBillOverrides(entries)
	return s.writeYAML(s.BillOverridesFile, entries)
}

func (s *RuleStore) writeYAML(path string, value interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	s.logger.WithField("file", path).Debug("Saved overrides")
	return nil
}
