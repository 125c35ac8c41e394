// Package lore provides card background knowledge from an embedded data
// file, used to enrich prompts for recognized cards.
package lore

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/janosbartek-debug/aqua-astrae/internal/ports"
)

//go:embed data/major_arcana.json
var loreFS embed.FS

type entry struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Short    string   `json:"short"`
}

// EmbeddedStore serves lore for the major arcana from the embedded JSON.
// Lookups are case-insensitive and tolerate a missing "The " prefix.
type EmbeddedStore struct {
	once  sync.Once
	cards map[string]ports.CardLore
	err   error
}

var _ ports.LoreStore = (*EmbeddedStore)(nil)

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := loreFS.ReadFile("data/major_arcana.json")
	if err != nil {
		s.err = fmt.Errorf("read embedded lore: %w", err)
		return
	}
	var entries []entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.err = fmt.Errorf("parse embedded lore: %w", err)
		return
	}
	s.cards = make(map[string]ports.CardLore, len(entries))
	for _, e := range entries {
		s.cards[normalize(e.Name)] = ports.CardLore{Keywords: e.Keywords, Short: e.Short}
	}
}

func (s *EmbeddedStore) Lookup(name string) (ports.CardLore, bool) {
	s.once.Do(s.init)
	if s.err != nil {
		return ports.CardLore{}, false
	}
	if l, ok := s.cards[normalize(name)]; ok {
		return l, true
	}
	l, ok := s.cards[normalize("The "+name)]
	return l, ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
