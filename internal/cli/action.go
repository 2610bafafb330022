package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/mafiagame-go/internal/identity"
	"github.com/mcoot/mafiagame-go/internal/services/action"
)

func newActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Role action commands",
	}

	cmd.AddCommand(newActionIssueCmd())
	cmd.AddCommand(newActionRevokeCmd())
	cmd.AddCommand(newActionListCmd())

	return cmd
}

func newActionIssueCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "issue <game> <post> <actor> <type> [target]",
		Short: "Record a role action, replacing the actor's previous one",
		Args:  cobra.RangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := identity.ResolvePostID(args[1])
			if err != nil {
				return err
			}
			users, err := resolveUsers(append([]string{args[2]}, args[4:]...)...)
			if err != nil {
				return err
			}

			req := action.IssueRequest{
				Game:   args[0],
				PostID: postID,
				Actor:  users[0],
				Type:   args[3],
				Token:  token,
			}
			if len(users) == 2 {
				req.Target = users[1]
			}

			result, err := app.ActionService.Issue(cmd.Context(), req)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(issueView(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Action token (defaults to the type)")

	return cmd
}

func newActionRevokeCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "revoke <game> <post> <actor> <type> [target]",
		Short: "Withdraw a role action",
		Args:  cobra.RangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := identity.ResolvePostID(args[1])
			if err != nil {
				return err
			}
			users, err := resolveUsers(append([]string{args[2]}, args[4:]...)...)
			if err != nil {
				return err
			}

			req := action.RevokeRequest{
				Game:   args[0],
				PostID: postID,
				Actor:  users[0],
				Type:   args[3],
				Token:  token,
			}
			if len(users) == 2 {
				req.Target = users[1]
			}

			revoked, err := app.ActionService.Revoke(cmd.Context(), req)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(actionView(revoked))
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Only revoke actions with this token")

	return cmd
}

func newActionListCmd() *cobra.Command {
	var actionType string

	cmd := &cobra.Command{
		Use:   "list <game>",
		Short: "List the game's action ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := app.ActionService.Actions(cmd.Context(), args[0], actionType)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(actionViews(actions))
			return nil
		},
	}

	cmd.Flags().StringVar(&actionType, "type", "", "Only list actions of this type")

	return cmd
}
