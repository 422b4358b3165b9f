package cli

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/dartscore-go/internal/api/request"
	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/model"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameThrowCmd())
	cmd.AddCommand(newGameZoneCmd())
	cmd.AddCommand(newGameClickCmd())
	cmd.AddCommand(newGameActionCmd("undo", "Undo the last dart", http.MethodDelete, "/throws/last"))
	cmd.AddCommand(newGameActionCmd("next", "Pass to the next player after three darts", http.MethodPost, "/next"))
	cmd.AddCommand(newGameActionCmd("reset", "Start a new game with the same players", http.MethodPost, "/reset"))
	cmd.AddCommand(newGameBotThrowCmd())
	cmd.AddCommand(newGameStatsCmd())

	return cmd
}

func gamePath(id string) string {
	return "/api/v1/games/" + id
}

// printGame prints a game response in the configured format
func printGame(g response.Game) {
	NewOutput(cfg.Output).Print(g)
}

func newGameCreateCmd() *cobra.Command {
	var players []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Long: `Create a new game. Without --player the default three-player roster is used.

Example:
  dartsctl game create --player Alice --player Bob`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateGameRequest{PlayerNames: players}
			var result response.Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&players, "player", "p", nil, "Player name (repeatable)")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0]), nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Game deleted")
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	var (
		score       int
		gameType    string
		straightOut bool
	)

	cmd := &cobra.Command{
		Use:   "start <game-id>",
		Short: "Start the game, optionally changing its settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.StartGameRequest{
				GameType:      gameType,
				StartingScore: score,
			}
			if cmd.Flags().Changed("straight-out") {
				doubleOut := !straightOut
				req.DoubleOut = &doubleOut
			}
			var result response.Game

			if err := client.Post(gamePath(args[0])+"/start", req, &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Starting score (default: keep current)")
	cmd.Flags().StringVar(&gameType, "type", "", "Game type: standard501, cricket")
	cmd.Flags().BoolVar(&straightOut, "straight-out", false, "Allow finishing on any segment")

	return cmd
}

func newGameThrowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "throw <game-id> <sector> [multiplier]",
		Short: "Record a dart by value",
		Long: `Record a dart by sector value (0-20 or 25) and multiplier
(single, double, triple; default single).

Example:
  dartsctl game throw game-1 20 triple`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sector, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid sector: %w", err)
			}

			multiplier := "single"
			if len(args) == 3 {
				multiplier = strings.ToLower(args[2])
			}

			req := request.ThrowRequest{Sector: &sector, Multiplier: multiplier}
			var result response.Game

			if err := client.Post(gamePath(args[0])+"/throws", req, &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}
}

func newGameZoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zone <game-id> <sector-index> <ring>",
		Short: "Record a dart by board zone",
		Long: `Record a dart by wedge index (0-19, clockwise from the 20) and ring
(double, outer_single, triple, inner_single, outer_bull, inner_bull).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid sector index: %w", err)
			}

			req := request.ThrowRequest{SectorIndex: &index, Ring: strings.ToLower(args[2])}
			var result response.Game

			if err := client.Post(gamePath(args[0])+"/throws", req, &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}
}

// parsePoint parses board coordinates
func parsePoint(xs, ys string) (float64, float64, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y: %w", err)
	}
	return x, y, nil
}

func newGameClickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "click <game-id> <x> <y>",
		Short: "Record a dart at a board position",
		Long: `Record a dart at board coordinates relative to the centre, with y
growing downwards (the 20 is straight up).

Example:
  dartsctl game click game-1 -- 0 -104`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePoint(args[1], args[2])
			if err != nil {
				return err
			}

			req := request.ThrowRequest{X: &x, Y: &y}
			var result response.Game

			if err := client.Post(gamePath(args[0])+"/throws", req, &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}
}

// newGameActionCmd builds a command that hits a body-less game endpoint
func newGameActionCmd(use, short, method, suffix string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <game-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Do(method, gamePath(args[0])+suffix, nil, &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}
}

func newGameBotThrowCmd() *cobra.Command {
	var (
		strategy string
		fullTurn bool
	)

	cmd := &cobra.Command{
		Use:   "bot-throw <game-id>",
		Short: "Let the practice bot throw for the current player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.BotThrowRequest{Strategy: strategy, FullTurn: fullTurn}
			var result response.BotThrowResponse

			if err := client.Post(gamePath(args[0])+"/bot-throw", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Bot strategy: random, aimed")
	cmd.Flags().BoolVar(&fullTurn, "full-turn", false, "Throw the remaining darts of the turn")

	return cmd
}

func newGameStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <game-id>",
		Short: "Show live statistics for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.GameStatistics

			if err := client.Get(gamePath(args[0])+"/statistics", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
