package identity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/mafiagame-go/internal/model"
)

// AreaKind distinguishes the host venues a game can be played in
type AreaKind int

const (
	AreaTopic AreaKind = iota + 1
	AreaChat
)

func (k AreaKind) String() string {
	switch k {
	case AreaTopic:
		return "topic"
	case AreaChat:
		return "chat"
	default:
		return "unknown"
	}
}

// PlayArea is a topic or chat a game is attached to
type PlayArea struct {
	Kind AreaKind
	ID   int
}

// Topic returns the play area for a forum topic
func Topic(id int) PlayArea {
	return PlayArea{Kind: AreaTopic, ID: id}
}

// Chat returns the play area for a chat channel
func Chat(id int) PlayArea {
	return PlayArea{Kind: AreaChat, ID: id}
}

// Alias returns the lookup alias for the area ("t_<id>" or "c_<id>")
func (a PlayArea) Alias() (string, error) {
	if a.ID <= 0 {
		return "", fmt.Errorf("%s %d: %w", a.Kind, a.ID, model.ErrInvalidPlayArea)
	}
	switch a.Kind {
	case AreaTopic:
		return TopicAlias(strconv.Itoa(a.ID)), nil
	case AreaChat:
		return ChatAlias(strconv.Itoa(a.ID)), nil
	default:
		return "", fmt.Errorf("kind %d: %w", a.Kind, model.ErrInvalidPlayArea)
	}
}

// TopicAlias builds the alias under which a topic id is looked up
func TopicAlias(topicID string) string {
	return "t_" + topicID
}

// ChatAlias builds the alias under which a chat id is looked up
func ChatAlias(chatID string) string {
	return "c_" + chatID
}

// ParsePlayArea accepts "topic:12", "chat:7", "t_12" or "c_7"
func ParsePlayArea(raw string) (PlayArea, error) {
	s := strings.ToLower(strings.TrimSpace(raw))

	var kind AreaKind
	var rest string
	switch {
	case strings.HasPrefix(s, "topic:"):
		kind, rest = AreaTopic, strings.TrimPrefix(s, "topic:")
	case strings.HasPrefix(s, "t_"):
		kind, rest = AreaTopic, strings.TrimPrefix(s, "t_")
	case strings.HasPrefix(s, "chat:"):
		kind, rest = AreaChat, strings.TrimPrefix(s, "chat:")
	case strings.HasPrefix(s, "c_"):
		kind, rest = AreaChat, strings.TrimPrefix(s, "c_")
	default:
		return PlayArea{}, fmt.Errorf("%q: %w", raw, model.ErrInvalidPlayArea)
	}

	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 {
		return PlayArea{}, fmt.Errorf("%q: %w", raw, model.ErrInvalidPlayArea)
	}
	return PlayArea{Kind: kind, ID: id}, nil
}
