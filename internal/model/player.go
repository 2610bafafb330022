package model

import "slices"

// Well-known player properties
const (
	PropertyLoved       = "loved"
	PropertyHated       = "hated"
	PropertyDoubleVoter = "doublevoter"
)

// Player is the persisted record of one game participant
type Player struct {
	Username    string         `json:"username"`
	Slug        string         `json:"slug"`
	IsAlive     bool           `json:"isAlive"`
	IsModerator bool           `json:"isModerator"`
	Properties  []string       `json:"properties"`
	Values      map[string]any `json:"values"`
}

// NewPlayer creates a live, unflagged player record
func NewPlayer(username, slug string, moderator bool) *Player {
	return &Player{
		Username:    username,
		Slug:        slug,
		IsAlive:     !moderator,
		IsModerator: moderator,
		Properties:  []string{},
		Values:      map[string]any{},
	}
}

// HasProperty reports whether the player carries the given flag
func (p *Player) HasProperty(property string) bool {
	return slices.Contains(p.Properties, property)
}

func (p *Player) normalize() {
	if p.Properties == nil {
		p.Properties = []string{}
	}
	if p.Values == nil {
		p.Values = map[string]any{}
	}
}
