// Package catalog holds the static item list used to validate alerts and
// to suggest items while a user is typing.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// MaxSuggestions matches the chat platform limit on autocomplete entries.
const MaxSuggestions = 25

var (
	tierPattern    = regexp.MustCompile(`^T(\d+)_`)
	enchantPattern = regexp.MustCompile(`@(\d)$`)
)

type Item struct {
	ID   string
	Name string
}

type rawItem struct {
	UniqueName     string            `json:"UniqueName"`
	LocalizedNames map[string]string `json:"LocalizedNames"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	items []Item
	byID  map[string]int
}

func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open item catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func Parse(r io.Reader) (*Catalog, error) {
	var raw []rawItem
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode item catalog: %w", err)
	}

	items := make([]Item, 0, len(raw))
	for _, entry := range raw {
		name := entry.LocalizedNames["EN-US"]
		if entry.UniqueName == "" || name == "" {
			continue
		}
		items = append(items, Item{ID: entry.UniqueName, Name: displayName(entry.UniqueName, name)})
	}
	return New(items), nil
}

func New(items []Item) *Catalog {
	c := &Catalog{items: items, byID: make(map[string]int, len(items))}
	for i, item := range items {
		if _, exists := c.byID[item.ID]; !exists {
			c.byID[item.ID] = i
		}
	}
	return c
}

// displayName appends the tier and enchantment level encoded in the unique
// name, e.g. T4_BAG@2 becomes "Adept's Bag 4.2".
func displayName(uniqueName, name string) string {
	level := ""
	if match := tierPattern.FindStringSubmatch(uniqueName); match != nil {
		level = match[1]
	}
	if match := enchantPattern.FindStringSubmatch(uniqueName); match != nil {
		level += "." + match[1]
	}
	return strings.TrimSpace(name + " " + level)
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) Lookup(itemID string) (Item, bool) {
	i, ok := c.byID[itemID]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Search returns up to limit items whose display name contains text,
// ignoring case. A non-positive limit means MaxSuggestions.
func (c *Catalog) Search(text string, limit int) []Item {
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}
	needle := strings.ToLower(strings.TrimSpace(text))

	matches := make([]Item, 0, limit)
	for _, item := range c.items {
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		matches = append(matches, item)
		if len(matches) == limit {
			break
		}
	}
	return matches
}
