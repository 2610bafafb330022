package model

import (
	"slices"
	"strings"
)

// Default phase cycle
const (
	PhaseDay   = "day"
	PhaseNight = "night"
)

// DefaultPhases returns the default two-element day/night cycle
func DefaultPhases() []string {
	return []string{PhaseDay, PhaseNight}
}

// Game is the persisted snapshot of one game
type Game struct {
	TopicID     int            `json:"topicId"`
	Name        string         `json:"name"`
	Aliases     []string       `json:"aliases"`
	Day         int            `json:"day"`
	Phase       string         `json:"phase"`
	Phases      []string       `json:"phases"`
	IsActive    bool           `json:"isActive"`
	LivePlayers PlayerSet      `json:"livePlayers"`
	DeadPlayers PlayerSet      `json:"deadPlayers"`
	Moderators  PlayerSet      `json:"moderators"`
	Actions     []*Action      `json:"actions"`
	Values      map[string]any `json:"values"`
}

// NewGame creates a day-1 snapshot with the default phase cycle.
// aliases should already include the generated topic alias.
func NewGame(topicID int, name string, aliases []string, active bool) *Game {
	phases := DefaultPhases()
	return &Game{
		TopicID:     topicID,
		Name:        name,
		Aliases:     aliases,
		Day:         1,
		Phase:       phases[0],
		Phases:      phases,
		IsActive:    active,
		LivePlayers: NewPlayerSet(),
		DeadPlayers: NewPlayerSet(),
		Moderators:  NewPlayerSet(),
		Actions:     []*Action{},
		Values:      map[string]any{},
	}
}

// Normalize fills in defaults for fields missing from an older document
func (g *Game) Normalize() {
	if len(g.Phases) == 0 {
		g.Phases = DefaultPhases()
	}
	if g.Phase == "" {
		g.Phase = g.Phases[0]
	}
	if g.Day < 1 {
		g.Day = 1
	}
	if g.Aliases == nil {
		g.Aliases = []string{}
	}
	if g.Actions == nil {
		g.Actions = []*Action{}
	}
	if g.Values == nil {
		g.Values = map[string]any{}
	}
	for _, a := range g.Actions {
		if a.Action == "" {
			a.Action = ActionVote
		}
		if a.Token == "" {
			a.Token = TokenVote
		}
	}
}

// HasAlias reports whether alias matches one of the game's aliases,
// ignoring case
func (g *Game) HasAlias(alias string) bool {
	return slices.ContainsFunc(g.Aliases, func(a string) bool {
		return strings.EqualFold(a, alias)
	})
}
