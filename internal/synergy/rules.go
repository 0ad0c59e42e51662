// Package synergy scores how well a candidate card supports a commander's
// strategy, combining rule-table tag synergy, keyword overlap, and a coarse
// fallback heuristic.
package synergy

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

//go:embed rules.toml
var defaultRulesTOML []byte

// Rule is one entry of the synergy rule table: a commander-side source (a
// strategy or one of the commander's own tags) paired with a candidate card
// tag, and the score contribution the pair earns.
type Rule struct {
	Strategy     string  `toml:"strategy,omitempty"`      // commander strategy, or
	CommanderTag string  `toml:"commander_tag,omitempty"` // commander tag (one of the two must be set)
	CardTag      string  `toml:"card_tag"`
	Points       float64 `toml:"points"`
	Description  string  `toml:"description"`
}

// ruleFile is the on-disk rule table format.
type ruleFile struct {
	// SharedTagPoints is awarded whenever the commander and the candidate
	// carry the same tag, covering families like tribal_* without a rule per
	// tribe.
	SharedTagPoints float64 `toml:"shared_tag_points"`
	Rules           []Rule  `toml:"rule"`
}

// RuleTable is an immutable, indexed rule set. Tables are swapped whole on
// reload; readers never see a partially-updated table.
type RuleTable struct {
	sharedTagPoints float64
	byStrategy      map[string]map[string]Rule // strategy -> card tag -> rule
	byCommanderTag  map[string]map[string]Rule // commander tag -> card tag -> rule
}

func buildTable(file *ruleFile) (*RuleTable, error) {
	table := &RuleTable{
		sharedTagPoints: file.SharedTagPoints,
		byStrategy:      make(map[string]map[string]Rule),
		byCommanderTag:  make(map[string]map[string]Rule),
	}
	for i, rule := range file.Rules {
		if rule.CardTag == "" {
			return nil, fmt.Errorf("rule %d: card_tag is required", i)
		}
		switch {
		case rule.Strategy != "" && rule.CommanderTag != "":
			return nil, fmt.Errorf("rule %d: strategy and commander_tag are mutually exclusive", i)
		case rule.Strategy != "":
			if table.byStrategy[rule.Strategy] == nil {
				table.byStrategy[rule.Strategy] = make(map[string]Rule)
			}
			table.byStrategy[rule.Strategy][rule.CardTag] = rule
		case rule.CommanderTag != "":
			if table.byCommanderTag[rule.CommanderTag] == nil {
				table.byCommanderTag[rule.CommanderTag] = make(map[string]Rule)
			}
			table.byCommanderTag[rule.CommanderTag][rule.CardTag] = rule
		default:
			return nil, fmt.Errorf("rule %d: one of strategy or commander_tag is required", i)
		}
	}
	return table, nil
}

// ParseRules parses a TOML rule table.
func ParseRules(data []byte) (*RuleTable, error) {
	var file ruleFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return buildTable(&file)
}

// DefaultRules returns the embedded rule table.
func DefaultRules() *RuleTable {
	table, err := ParseRules(defaultRulesTOML)
	if err != nil {
		// The embedded table is validated by tests; a parse failure here is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded rules invalid: %v", err))
	}
	return table
}

// RuleSource provides the current rule table and optional live reload from a
// rules file. The table is swapped atomically so concurrent scorers always
// read a complete table.
type RuleSource struct {
	table  atomic.Pointer[RuleTable]
	path   string
	logger *slog.Logger
}

// NewRuleSource creates a source serving the embedded default table.
func NewRuleSource(logger *slog.Logger) *RuleSource {
	if logger == nil {
		logger = slog.Default()
	}
	src := &RuleSource{logger: logger}
	src.table.Store(DefaultRules())
	return src
}

// NewRuleSourceFromFile loads the table from path, falling back to an error
// if the file is unreadable or invalid.
func NewRuleSourceFromFile(path string, logger *slog.Logger) (*RuleSource, error) {
	src := NewRuleSource(logger)
	src.path = path
	if err := src.reload(); err != nil {
		return nil, err
	}
	return src, nil
}

// Table returns the current rule table.
func (s *RuleSource) Table() *RuleTable {
	return s.table.Load()
}

func (s *RuleSource) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read rules file: %w", err)
	}
	table, err := ParseRules(data)
	if err != nil {
		return fmt.Errorf("failed to load rules from %s: %w", s.path, err)
	}
	s.table.Store(table)
	return nil
}

// Watch reloads the rule table when the rules file changes, until ctx is
// canceled. Invalid edits are logged and the previous table stays in effect.
func (s *RuleSource) Watch(ctx context.Context) error {
	if s.path == "" {
		return fmt.Errorf("rule source has no file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create rules watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors replace files on save, which drops the
	// watch if it is attached to the file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to watch rules directory: %w", err)
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.reload(); err != nil {
				s.logger.Warn("rules reload failed, keeping previous table", "path", s.path, "error", err)
				continue
			}
			s.logger.Info("synergy rules reloaded", "path", s.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("rules watcher error", "error", err)
		}
	}
}
