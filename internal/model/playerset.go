package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/elliotchance/orderedmap/v3"
)

// PlayerSet maps slugs to players, keeping insertion order.
// It serializes as a JSON object whose keys appear in that order.
type PlayerSet struct {
	m *orderedmap.OrderedMap[string, *Player]
}

// NewPlayerSet creates an empty set
func NewPlayerSet() PlayerSet {
	return PlayerSet{m: orderedmap.NewOrderedMap[string, *Player]()}
}

func (s *PlayerSet) init() {
	if s.m == nil {
		s.m = orderedmap.NewOrderedMap[string, *Player]()
	}
}

// Get returns the player stored under slug
func (s *PlayerSet) Get(slug string) (*Player, bool) {
	if s.m == nil {
		return nil, false
	}
	return s.m.Get(slug)
}

// Has reports whether slug is present
func (s *PlayerSet) Has(slug string) bool {
	_, ok := s.Get(slug)
	return ok
}

// Put stores p under its slug. A new slug is appended at the end.
func (s *PlayerSet) Put(p *Player) {
	s.init()
	s.m.Set(p.Slug, p)
}

// Delete removes slug, reporting whether it was present
func (s *PlayerSet) Delete(slug string) bool {
	if s.m == nil {
		return false
	}
	return s.m.Delete(slug)
}

// Len returns the number of players
func (s *PlayerSet) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Values returns the players in insertion order
func (s *PlayerSet) Values() []*Player {
	if s.m == nil {
		return []*Player{}
	}
	players := make([]*Player, 0, s.m.Len())
	for el := s.m.Front(); el != nil; el = el.Next() {
		players = append(players, el.Value)
	}
	return players
}

// MarshalJSON writes the set as an object in insertion order
func (s PlayerSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if s.m != nil {
		first := true
		for el := s.m.Front(); el != nil; el = el.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false

			key, err := json.Marshal(el.Key)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(el.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, keeping its key order
func (s *PlayerSet) UnmarshalJSON(data []byte) error {
	s.m = orderedmap.NewOrderedMap[string, *Player]()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("player set: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		slug, ok := tok.(string)
		if !ok {
			return fmt.Errorf("player set: expected string key, got %v", tok)
		}
		var player Player
		if err := dec.Decode(&player); err != nil {
			return fmt.Errorf("player set: %s: %w", slug, err)
		}
		if player.Slug == "" {
			player.Slug = slug
		}
		player.normalize()
		s.m.Set(slug, &player)
	}

	_, err = dec.Token()
	return err
}
