package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/mafiagame-go/internal/mafia"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerKillCmd())
	cmd.AddCommand(newPlayerResurrectCmd())
	cmd.AddCommand(newPlayerFlagCmd())

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	var moderator bool

	cmd := &cobra.Command{
		Use:   "add <game> <username>",
		Short: "Add a player or moderator to a game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p *mafia.Player
			var err error
			if moderator {
				p, err = app.GameController.AddModerator(cmd.Context(), args[0], args[1])
			} else {
				p, err = app.GameController.AddPlayer(cmd.Context(), args[0], args[1])
			}
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(playerView(p))
			return nil
		},
	}

	cmd.Flags().BoolVar(&moderator, "moderator", false, "Add as a moderator")

	return cmd
}

func newPlayerKillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kill <game> <username>",
		Short: "Kill a live player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.GameController.KillPlayer(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(playerView(p))
			return nil
		},
	}
}

func newPlayerResurrectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resurrect <game> <username>",
		Short: "Bring a dead player back to life",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.GameController.ResurrectPlayer(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(playerView(p))
			return nil
		},
	}
}

func newPlayerFlagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Set or clear player flags (loved, hated, doublevoter)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <game> <username> <flag>",
		Short: "Set a player flag",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := app.GameController.AddPlayerProperty(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			if changed {
				out.PrintMessage(fmt.Sprintf("%s is now %s", args[1], args[2]))
			} else {
				out.PrintMessage(fmt.Sprintf("%s is already %s", args[1], args[2]))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <game> <username> <flag>",
		Short: "Clear a player flag",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := app.GameController.RemovePlayerProperty(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			if changed {
				out.PrintMessage(fmt.Sprintf("%s is no longer %s", args[1], args[2]))
			} else {
				out.PrintMessage(fmt.Sprintf("%s was not %s", args[1], args[2]))
			}
			return nil
		},
	})

	return cmd
}
