// Package catalog holds the built-in lesson cards. The catalog is loaded once
// from an embedded YAML file and is read-only afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed lessons.yaml
var lessonsYAML []byte

type lessonSpec struct {
	Lessons []struct {
		Topic string `yaml:"topic"`
		Card  string `yaml:"card"`
	} `yaml:"lessons"`
}

// Catalog maps topics to lesson cards. Lookup is keyed by the normalized topic
// name so user input like "evm" or " planning " still resolves.
type Catalog struct {
	topics []string
	cards  map[string]string
}

// Load parses the embedded lesson file. Topic order in the file is the order
// Topics() reports.
func Load() (*Catalog, error) {
	var spec lessonSpec
	if err := yaml.Unmarshal(lessonsYAML, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse lesson catalog: %w", err)
	}
	if len(spec.Lessons) == 0 {
		return nil, fmt.Errorf("lesson catalog is empty")
	}
	c := &Catalog{cards: make(map[string]string, len(spec.Lessons))}
	for _, l := range spec.Lessons {
		topic := strings.TrimSpace(l.Topic)
		card := strings.TrimSpace(l.Card)
		if topic == "" || card == "" {
			return nil, fmt.Errorf("lesson catalog entry with empty topic or card")
		}
		key := Normalize(topic)
		if _, dup := c.cards[key]; dup {
			return nil, fmt.Errorf("duplicate lesson topic %q", topic)
		}
		c.topics = append(c.topics, topic)
		c.cards[key] = card
	}
	return c, nil
}

// Topics returns the topic names in declaration order.
func (c *Catalog) Topics() []string {
	out := make([]string, len(c.topics))
	copy(out, c.topics)
	return out
}

// Get returns the lesson card for a topic. The argument is normalized before
// lookup, so case and surrounding/internal whitespace do not matter.
func (c *Catalog) Get(topic string) (string, bool) {
	card, ok := c.cards[Normalize(topic)]
	return card, ok
}

// Canonical returns the declared spelling for a topic, if known.
func (c *Catalog) Canonical(topic string) (string, bool) {
	key := Normalize(topic)
	for _, t := range c.topics {
		if Normalize(t) == key {
			return t, true
		}
	}
	return "", false
}

// Normalize collapses whitespace and title-cases each word: "  risk " -> "Risk",
// "evm" -> "Evm". Both declared topics and user input go through this, so the
// two always meet on the same key.
func Normalize(topic string) string {
	words := strings.Fields(topic)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
