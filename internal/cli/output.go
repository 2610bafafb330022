package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/mafiagame-go/internal/mafia"
	"github.com/mcoot/mafiagame-go/internal/services/action"
	"github.com/mcoot/mafiagame-go/internal/services/vote"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error with its condition token
func (o *Output) PrintError(w io.Writer, err error) {
	code := ErrorCode(err)
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"code":    code,
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Error [%s]: %s\n", code, err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameView:
		o.printGame(v)
	case []GameView:
		o.printGameList(v)
	case PlayerView:
		o.printPlayer(v)
	case ActionView:
		o.printAction(v)
	case []ActionView:
		for _, a := range v {
			o.printAction(a)
		}
	case VoteView:
		o.printVote(v)
	case TallyView:
		o.printTally(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// GameView is the rendered form of a game
type GameView struct {
	TopicID    int      `json:"topicId"`
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases"`
	Day        int      `json:"day"`
	Phase      string   `json:"phase"`
	Phases     []string `json:"phases"`
	IsActive   bool     `json:"isActive"`
	Live       []string `json:"livePlayers"`
	Dead       []string `json:"deadPlayers"`
	Moderators []string `json:"moderators"`
}

// PlayerView is the rendered form of a player
type PlayerView struct {
	Username    string   `json:"username"`
	Slug        string   `json:"userslug"`
	IsAlive     bool     `json:"isAlive"`
	IsModerator bool     `json:"isModerator"`
	Properties  []string `json:"properties"`
}

// ActionView is the rendered form of a ledger entry
type ActionView struct {
	PostID    int    `json:"postId"`
	Actor     string `json:"actor"`
	Target    string `json:"target,omitempty"`
	Action    string `json:"action"`
	Token     string `json:"token"`
	Day       int    `json:"day"`
	RevokedID *int   `json:"revokedId,omitempty"`
}

// VoteView is the rendered outcome of a vote
type VoteView struct {
	Vote     ActionView  `json:"vote"`
	Replaced *ActionView `json:"replaced,omitempty"`
	Votes    int         `json:"votes"`
	Required int         `json:"required"`
	Lynched  string      `json:"lynched,omitempty"`
}

// TallyEntryView is one line of a tally
type TallyEntryView struct {
	Target   string   `json:"target,omitempty"`
	Voters   []string `json:"voters"`
	Votes    int      `json:"votes"`
	Required int      `json:"required"`
}

// TallyView is the rendered form of a vote tally
type TallyView struct {
	TopicID   int              `json:"topicId"`
	Day       int              `json:"day"`
	Phase     string           `json:"phase"`
	LiveCount int              `json:"livePlayers"`
	Entries   []TallyEntryView `json:"entries"`
	NotVoting []string         `json:"notVoting"`
}

func gameView(g *mafia.Game) GameView {
	return GameView{
		TopicID:    g.TopicID(),
		Name:       g.Name(),
		Aliases:    g.Aliases(),
		Day:        g.Day(),
		Phase:      g.Phase(),
		Phases:     g.Phases(),
		IsActive:   g.IsActive(),
		Live:       usernames(g.LivePlayers()),
		Dead:       usernames(g.DeadPlayers()),
		Moderators: usernames(g.Moderators()),
	}
}

func playerView(p *mafia.Player) PlayerView {
	return PlayerView{
		Username:    p.Username(),
		Slug:        p.Slug(),
		IsAlive:     p.IsAlive(),
		IsModerator: p.IsModerator(),
		Properties:  p.Properties(),
	}
}

func actionView(a *mafia.Action) ActionView {
	v := ActionView{
		PostID: a.PostID(),
		Actor:  a.ActorSlug(),
		Target: a.TargetSlug(),
		Action: a.Type(),
		Token:  a.Token(),
		Day:    a.Day(),
	}
	if id, ok := a.RevokedID(); ok {
		v.RevokedID = &id
	}
	return v
}

func actionViews(actions []*mafia.Action) []ActionView {
	views := make([]ActionView, 0, len(actions))
	for _, a := range actions {
		views = append(views, actionView(a))
	}
	return views
}

func voteView(r *vote.Result) VoteView {
	v := VoteView{
		Vote:     actionView(r.Action),
		Votes:    r.Votes,
		Required: r.Required,
	}
	if r.Replaced != nil {
		replaced := actionView(r.Replaced)
		v.Replaced = &replaced
	}
	if r.Lynched != nil {
		v.Lynched = r.Lynched.Username()
	}
	return v
}

func issueView(r *action.IssueResult) []ActionView {
	views := []ActionView{actionView(r.Action)}
	if r.Replaced != nil {
		views = append(views, actionView(r.Replaced))
	}
	return views
}

func tallyView(t *vote.Tally) TallyView {
	v := TallyView{
		TopicID:   t.TopicID,
		Day:       t.Day,
		Phase:     t.Phase,
		LiveCount: t.LiveCount,
		Entries:   make([]TallyEntryView, 0, len(t.Entries)),
		NotVoting: usernames(t.NotVoting),
	}
	for _, e := range t.Entries {
		entry := TallyEntryView{
			Target:   e.TargetSlug,
			Votes:    len(e.Votes),
			Required: e.Required,
		}
		if e.Target != nil {
			entry.Target = e.Target.Username()
		}
		for _, a := range e.Votes {
			if actor := a.Actor(); actor != nil {
				entry.Voters = append(entry.Voters, actor.Username())
			} else {
				entry.Voters = append(entry.Voters, a.ActorSlug())
			}
		}
		v.Entries = append(v.Entries, entry)
	}
	return v
}

func usernames(players []*mafia.Player) []string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Username())
	}
	return names
}

func (o *Output) printGame(g GameView) {
	status := "inactive"
	if g.IsActive {
		status = "active"
	}
	fmt.Fprintf(o.w, "Game: %s (topic %d)\n", g.Name, g.TopicID)
	fmt.Fprintf(o.w, "Status: %s\n", status)
	fmt.Fprintf(o.w, "Day %d, %s (phases: %s)\n", g.Day, g.Phase, strings.Join(g.Phases, ", "))
	fmt.Fprintf(o.w, "Aliases: %s\n", strings.Join(g.Aliases, ", "))
	fmt.Fprintf(o.w, "Moderators (%d): %s\n", len(g.Moderators), strings.Join(g.Moderators, ", "))
	fmt.Fprintf(o.w, "Live (%d): %s\n", len(g.Live), strings.Join(g.Live, ", "))
	fmt.Fprintf(o.w, "Dead (%d): %s\n", len(g.Dead), strings.Join(g.Dead, ", "))
}

func (o *Output) printGameList(games []GameView) {
	if len(games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range games {
		status := ""
		if !g.IsActive {
			status = " [inactive]"
		}
		fmt.Fprintf(o.w, "%d\t%s\tday %d %s%s\n", g.TopicID, g.Name, g.Day, g.Phase, status)
	}
}

func (o *Output) printPlayer(p PlayerView) {
	state := "dead"
	switch {
	case p.IsModerator:
		state = "moderator"
	case p.IsAlive:
		state = "alive"
	}
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.Username, state)
	if len(p.Properties) > 0 {
		fmt.Fprintf(o.w, "Flags: %s\n", strings.Join(p.Properties, ", "))
	}
}

func (o *Output) printAction(a ActionView) {
	target := a.Target
	if target == "" {
		target = "-"
	}
	line := fmt.Sprintf("#%d day %d %s[%s] %s -> %s", a.PostID, a.Day, a.Action, a.Token, a.Actor, target)
	if a.RevokedID != nil {
		line += fmt.Sprintf(" (revoked by #%d)", *a.RevokedID)
	}
	fmt.Fprintln(o.w, line)
}

func (o *Output) printVote(v VoteView) {
	target := v.Vote.Target
	if target == "" {
		target = "no lynch"
	}
	fmt.Fprintf(o.w, "%s voted for %s (%d/%d)\n", v.Vote.Actor, target, v.Votes, v.Required)
	if v.Replaced != nil {
		replaced := v.Replaced.Target
		if replaced == "" {
			replaced = "no lynch"
		}
		fmt.Fprintf(o.w, "Replaced vote for %s\n", replaced)
	}
	if v.Lynched != "" {
		fmt.Fprintf(o.w, "%s has been lynched\n", v.Lynched)
	}
}

func (o *Output) printTally(t TallyView) {
	fmt.Fprintf(o.w, "Votes for day %d (%s), %d players alive\n", t.Day, t.Phase, t.LiveCount)
	for _, e := range t.Entries {
		target := e.Target
		if target == "" {
			target = "No lynch"
		}
		fmt.Fprintf(o.w, "  %s (%d/%d): %s\n", target, e.Votes, e.Required, strings.Join(e.Voters, ", "))
	}
	if len(t.NotVoting) > 0 {
		fmt.Fprintf(o.w, "Not voting: %s\n", strings.Join(t.NotVoting, ", "))
	}
}
