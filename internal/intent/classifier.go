// Package intent classifies campus chat messages by substring matching over
// ordered keyword groups. The first matching group in priority order wins;
// there is no scoring.
package intent

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classifier holds the rule table evaluated for every message.
type Classifier struct {
	Rules  []Rule
	Topics []KeywordGroup
}

// NewClassifier builds a classifier over the default keyword groups.
func NewClassifier() *Classifier {
	return NewClassifierWithLexicon(DefaultLexicon())
}

// NewClassifierWithLexicon builds the priority table from lex. Groups missing
// from lex never match.
func NewClassifierWithLexicon(lex Lexicon) *Classifier {
	c := &Classifier{
		Rules:  make([]Rule, 0, len(priorityOrder)),
		Topics: make([]KeywordGroup, 0, len(topicOrder)),
	}
	for _, name := range priorityOrder {
		c.Rules = append(c.Rules, Rule{Intent: name, Match: lex.Group(name).Matches})
	}
	for _, name := range topicOrder {
		c.Topics = append(c.Topics, lex.Group(name))
	}
	return c
}

// Normalize trims surrounding whitespace and lowercases the message.
func Normalize(raw string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(raw))
}

// Classify normalizes raw and returns the first rule that matches, or
// Generic. Topic groups are evaluated and reported alongside.
func (c *Classifier) Classify(raw string) Classification {
	normalized := Normalize(raw)
	result := Classification{
		Query:  normalized,
		Intent: c.Select(normalized),
		Topics: []Intent{},
	}
	for _, group := range c.Topics {
		if group.Matches(normalized) {
			result.Topics = append(result.Topics, group.Name)
		}
	}
	return result
}

// Select walks the rule table over an already normalized message.
func (c *Classifier) Select(normalized string) Intent {
	for _, rule := range c.Rules {
		if rule.Match != nil && rule.Match(normalized) {
			return rule.Intent
		}
	}
	return Generic
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
