// Package plants loads the Lindenmayer-system rule table that describes
// plant growth and expands it into a symbol string.
package plants

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Table limits.
const (
	MaxRules          = 7
	MaxInitial        = 127
	MaxReplacement    = 126
	DefaultIterations = 3
)

// ErrInvalidRule is wrapped by every validation failure.
var ErrInvalidRule = errors.New("invalid plant rule")

// Rule rewrites every occurrence of Name into Replacement.
type Rule struct {
	Name        byte
	Replacement string
}

// Config is a parsed rule table.
type Config struct {
	Initial string
	Rules   []Rule
}

type ruleJSON struct {
	Name        string `json:"name"`
	Replacement string `json:"replacement"`
}

type configJSON struct {
	Initial string          `json:"initial"`
	Rules   json.RawMessage `json:"rules"`
}

// Parse reads a rule table. Rules may be an array of
// {"name": "F", "replacement": "..."} objects or an object mapping each
// name to its replacement; object order is kept.
func Parse(data []byte) (*Config, error) {
	var raw configJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse plant config: %w", err)
	}

	var rules []ruleJSON
	switch body := bytes.TrimSpace(raw.Rules); {
	case len(body) == 0 || bytes.Equal(body, []byte("null")):
	case body[0] == '[':
		if err := json.Unmarshal(body, &rules); err != nil {
			return nil, fmt.Errorf("parse plant rules: %w", err)
		}
	case body[0] == '{':
		var err error
		if rules, err = parseRuleObject(body); err != nil {
			return nil, fmt.Errorf("parse plant rules: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: rules must be an array or object", ErrInvalidRule)
	}

	cfg := &Config{Initial: raw.Initial}
	for _, r := range rules {
		if len(r.Name) != 1 {
			return nil, fmt.Errorf("%w: name %q must be one character", ErrInvalidRule, r.Name)
		}
		cfg.Rules = append(cfg.Rules, Rule{Name: r.Name[0], Replacement: r.Replacement})
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseRuleObject walks {"F": "...", ...} token by token so rule order
// matches the file.
func parseRuleObject(body []byte) ([]ruleJSON, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var rules []ruleJSON
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var replacement string
		if err := dec.Decode(&replacement); err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		rules = append(rules, ruleJSON{Name: name, Replacement: replacement})
	}
	return rules, nil
}

// Validate checks the table limits.
func (c *Config) Validate() error {
	if c.Initial == "" {
		return fmt.Errorf("%w: empty initial string", ErrInvalidRule)
	}
	if len(c.Initial) > MaxInitial {
		return fmt.Errorf("%w: initial string longer than %d", ErrInvalidRule, MaxInitial)
	}
	if len(c.Rules) > MaxRules {
		return fmt.Errorf("%w: %d rules, at most %d", ErrInvalidRule, len(c.Rules), MaxRules)
	}
	var seen [256]bool
	for _, r := range c.Rules {
		if seen[r.Name] {
			return fmt.Errorf("%w: duplicate rule %q", ErrInvalidRule, r.Name)
		}
		seen[r.Name] = true
		if len(r.Replacement) > MaxReplacement {
			return fmt.Errorf("%w: rule %q replacement longer than %d", ErrInvalidRule, r.Name, MaxReplacement)
		}
	}
	return nil
}

// Load reads and parses a rule table file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plant config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Expand applies the rules iterations times. Symbols without a rule are
// copied. Expansion stops with an error once the result would exceed
// limit bytes; limit <= 0 means no limit.
func (c *Config) Expand(iterations, limit int) (string, error) {
	var table [256]*Rule
	for i := range c.Rules {
		table[c.Rules[i].Name] = &c.Rules[i]
	}

	cur := c.Initial
	var b strings.Builder
	for i := range iterations {
		b.Reset()
		for j := 0; j < len(cur); j++ {
			if r := table[cur[j]]; r != nil {
				b.WriteString(r.Replacement)
			} else {
				b.WriteByte(cur[j])
			}
			if limit > 0 && b.Len() > limit {
				return "", fmt.Errorf("expansion exceeds %d bytes at iteration %d", limit, i+1)
			}
		}
		cur = b.String()
	}
	return cur, nil
}
