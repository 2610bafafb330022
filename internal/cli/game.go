package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/mafiagame-go/internal/identity"
	"github.com/mcoot/mafiagame-go/internal/mafia"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game management commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameActivationCmd("start", "Mark a game active", true))
	cmd.AddCommand(newGameActivationCmd("end", "Mark a game inactive", false))
	cmd.AddCommand(newGameNextPhaseCmd())
	cmd.AddCommand(newGameNewDayCmd())
	cmd.AddCommand(newGameSetPhaseCmd())
	cmd.AddCommand(newGameAreaCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var inactive bool

	cmd := &cobra.Command{
		Use:   "create <topic-id> <name>",
		Short: "Create a game for a topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid topic id: %w", err)
			}

			game, err := app.GameController.CreateGame(cmd.Context(), topicID, args[1], !inactive)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(gameView(game))
			return nil
		},
	}

	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the game without starting it")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := app.GameController.ListGames(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]GameView, 0, len(games))
			for _, g := range games {
				views = append(views, gameView(g))
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(views)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game>",
		Short: "Show a game by topic id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := app.GameController.GetGame(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(gameView(game))
			return nil
		},
	}
}

func newGameActivationCmd(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <game>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var game *mafia.Game
			var err error
			if active {
				game, err = app.GameController.StartGame(cmd.Context(), args[0])
			} else {
				game, err = app.GameController.EndGame(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(gameView(game))
			return nil
		},
	}
}

func newGameNextPhaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-phase <game>",
		Short: "Advance to the next phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := app.GameController.NextPhase(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(gameView(game))
			return nil
		},
	}
}

func newGameNewDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-day <game>",
		Short: "Start the next day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := app.GameController.NewDay(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(gameView(game))
			return nil
		},
	}
}

func newGameSetPhaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-phase <game> <phase>",
		Short: "Jump to a phase of the current day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := app.GameController.SetPhase(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(gameView(game))
			return nil
		},
	}
}

func newGameAreaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "area",
		Short: "Attach topics and chats to a game",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <game> <area>",
		Short: "Attach a play area (topic:<id> or chat:<id>)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := identity.ParsePlayArea(args[1])
			if err != nil {
				return err
			}

			game, err := app.GameController.AddPlayArea(cmd.Context(), args[0], area)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(gameView(game))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <game> <area>",
		Short: "Detach a play area (topic:<id> or chat:<id>)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := identity.ParsePlayArea(args[1])
			if err != nil {
				return err
			}

			game, err := app.GameController.RemovePlayArea(cmd.Context(), args[0], area)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(gameView(game))
			return nil
		},
	})

	return cmd
}
