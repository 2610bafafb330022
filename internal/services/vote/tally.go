package vote

import (
	"cmp"
	"context"
	"slices"

	"github.com/mcoot/mafiagame-go/internal/mafia"
	"github.com/mcoot/mafiagame-go/internal/model"
)

// Entry is the tally for one target, or for no-lynch
type Entry struct {
	TargetSlug string        // empty for the no-lynch bucket
	Target     *mafia.Player // nil for the no-lynch bucket
	Votes      []*mafia.Action
	Required   int
}

// IsNoLynch reports whether the entry counts votes for nobody
func (e *Entry) IsNoLynch() bool {
	return e.TargetSlug == ""
}

// Tally summarizes the current votes of a game day
type Tally struct {
	TopicID   int
	Day       int
	Phase     string
	LiveCount int
	Entries   []*Entry        // most votes first
	NotVoting []*mafia.Player // live players with no current vote
}

// Tally counts today's current votes by target
func (s *Service) Tally(ctx context.Context, ref string) (*Tally, error) {
	game, unlock, err := s.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return TallyGame(game), nil
}

// TallyGame counts today's current votes of an already resolved game
func TallyGame(game *mafia.Game) *Tally {
	t := &Tally{
		TopicID:   game.TopicID(),
		Day:       game.Day(),
		Phase:     game.Phase(),
		LiveCount: game.LiveCount(),
	}

	byTarget := make(map[string]*Entry)
	voted := make(map[string]bool)
	for _, a := range game.CurrentActions(model.ActionVote, game.Day()) {
		voted[a.ActorSlug()] = true

		entry, ok := byTarget[a.TargetSlug()]
		if !ok {
			target := a.Target()
			entry = &Entry{
				TargetSlug: a.TargetSlug(),
				Target:     target,
				Required:   RequiredVotes(t.LiveCount, target),
			}
			byTarget[a.TargetSlug()] = entry
			t.Entries = append(t.Entries, entry)
		}
		entry.Votes = append(entry.Votes, a)
	}

	slices.SortStableFunc(t.Entries, func(a, b *Entry) int {
		if c := cmp.Compare(len(b.Votes), len(a.Votes)); c != 0 {
			return c
		}
		return cmp.Compare(a.TargetSlug, b.TargetSlug)
	})

	for _, p := range game.LivePlayers() {
		if !voted[p.Slug()] {
			t.NotVoting = append(t.NotVoting, p)
		}
	}
	return t
}
