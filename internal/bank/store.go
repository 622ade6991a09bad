package bank

import (
	"strings"

	"quizbank/internal/domain"
)

// Store is the id-indexed view over the loaded bank. It owns the
// canonical in-memory representation of each item for one build; nothing
// downstream mutates it. The index is built once at construction so
// lookup and wildcard resolution cost does not scale with reference count.
type Store struct {
	records []Record
	byID    map[string]int
}

// NewStore indexes records by id. Duplicate identifiers are a
// store-consistency error naming both source locations; they cannot be
// partially ignored since downstream resolution would be ambiguous.
func NewStore(records []Record) (*Store, error) {
	s := &Store{
		records: records,
		byID:    make(map[string]int, len(records)),
	}
	for i, r := range records {
		// Records without an id are already invalid and can never be
		// referenced; indexing them would make two such records collide.
		if r.Item.ID == "" {
			continue
		}
		if prev, ok := s.byID[r.Item.ID]; ok {
			return nil, domain.NewDuplicateIDError(r.Item.ID, records[prev].Source, r.Source)
		}
		s.byID[r.Item.ID] = i
	}
	return s, nil
}

// Len returns the number of items in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (domain.QuestionItem, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.QuestionItem{}, false
	}
	return s.records[i].Item, true
}

// Source returns the file an item was loaded from.
func (s *Store) Source(id string) (string, bool) {
	i, ok := s.byID[id]
	if !ok {
		return "", false
	}
	return s.records[i].Source, true
}

// IDs returns all item ids in insertion order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.records))
	for i, r := range s.records {
		ids[i] = r.Item.ID
	}
	return ids
}

// MatchPrefix returns the ids sharing the given prefix, in insertion order.
func (s *Store) MatchPrefix(prefix string) []string {
	var ids []string
	for _, r := range s.records {
		if strings.HasPrefix(r.Item.ID, prefix) {
			ids = append(ids, r.Item.ID)
		}
	}
	return ids
}
