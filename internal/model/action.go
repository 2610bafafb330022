package model

// Default ledger discriminators
const (
	ActionVote = "vote"
	TokenVote  = "vote"
)

// Action is one immutable-once-written ledger entry
type Action struct {
	PostID    int     `json:"postId"`
	Actor     string  `json:"actor"`  // slug of the acting player
	Target    *string `json:"target"` // slug of the target, nil for "no lynch"
	Action    string  `json:"action"`
	Token     string  `json:"token"`
	Day       int     `json:"day"`
	RevokedID *int    `json:"revokedId,omitempty"`
}

// IsCurrent reports whether the entry has not been revoked
func (a *Action) IsCurrent() bool {
	return a.RevokedID == nil
}

// TargetSlug returns the target slug, or "" when there is none
func (a *Action) TargetSlug() string {
	if a.Target == nil {
		return ""
	}
	return *a.Target
}
