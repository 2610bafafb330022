package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/mafiagame-go/internal/identity"
	"github.com/mcoot/mafiagame-go/internal/services/vote"
)

func newVoteCmd() *cobra.Command {
	var alternate bool

	cmd := &cobra.Command{
		Use:   "vote <game> <post> <actor> <target>",
		Short: "Vote to lynch a player",
		Long: `Vote to lynch a player. A vote replaces the actor's previous vote of the
day; a double voter can hold a second vote with --alternate. The target is
lynched as soon as the votes reach the threshold.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := identity.ResolvePostID(args[1])
			if err != nil {
				return err
			}
			users, err := resolveUsers(args[2], args[3])
			if err != nil {
				return err
			}

			result, err := app.VoteService.Vote(cmd.Context(), vote.Request{
				Game:      args[0],
				PostID:    postID,
				Actor:     users[0],
				Target:    users[1],
				Alternate: alternate,
			})
			return printVote(NewOutput(cfg.Output, cmd.OutOrStdout()), result, err)
		},
	}

	cmd.Flags().BoolVar(&alternate, "alternate", false, "Use the second vote of a double voter")

	return cmd
}

func newNoLynchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nolynch <game> <post> <actor>",
		Short: "Vote for no lynch",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := identity.ResolvePostID(args[1])
			if err != nil {
				return err
			}
			users, err := resolveUsers(args[2])
			if err != nil {
				return err
			}

			result, err := app.VoteService.NoLynch(cmd.Context(), vote.Request{
				Game:   args[0],
				PostID: postID,
				Actor:  users[0],
			})
			return printVote(NewOutput(cfg.Output, cmd.OutOrStdout()), result, err)
		},
	}
}

func newUnvoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unvote <game> <post> <actor> [target]",
		Short: "Withdraw a vote",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := identity.ResolvePostID(args[1])
			if err != nil {
				return err
			}
			users, err := resolveUsers(args[2:]...)
			if err != nil {
				return err
			}

			req := vote.UnvoteRequest{
				Game:   args[0],
				PostID: postID,
				Actor:  users[0],
			}
			if len(users) == 2 {
				req.Target = users[1]
			}

			revoked, err := app.VoteService.Unvote(cmd.Context(), req)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(actionView(revoked))
			return nil
		},
	}
}

func newTallyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tally <game>",
		Short: "Show today's votes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tally, err := app.VoteService.Tally(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(tallyView(tally))
			return nil
		},
	}
}

// resolveUsers canonicalizes user references given on the command line
func resolveUsers(refs ...string) ([]string, error) {
	names := make([]string, len(refs))
	for i, ref := range refs {
		name, err := identity.ResolveUsername(ref)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// printVote prints a vote result. A lynch that was applied before a later
// step failed is still reported alongside the error.
func printVote(out *Output, result *vote.Result, err error) error {
	if err != nil && (result == nil || result.Lynched == nil) {
		return err
	}
	out.Print(voteView(result))
	return err
}
