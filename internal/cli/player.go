package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/dartscore-go/internal/api/request"
	"github.com/mcoot/dartscore-go/internal/api/response"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Roster commands",
		Long: `Roster commands. Players can only be added or removed while no dart
of the game is being scored; renaming is always allowed.`,
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerRemoveCmd())
	cmd.AddCommand(newPlayerRenameCmd())

	return cmd
}

func playerPath(gameID, playerID string) string {
	return gamePath(gameID) + "/players/" + playerID
}

func newPlayerAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <game-id> <name>",
		Short: "Add a player to the game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.AddPlayerRequest{Name: args[1]}
			var result response.Game

			if err := client.Post(gamePath(args[0])+"/players", req, &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <game-id> <player-id>",
		Short: "Remove a player from the game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Delete(playerPath(args[0], args[1]), &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}
}

func newPlayerRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <game-id> <player-id> <name>",
		Short: "Rename a player",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.RenamePlayerRequest{Name: args[2]}
			var result response.Game

			if err := client.Patch(playerPath(args[0], args[1]), req, &result); err != nil {
				return err
			}

			printGame(result)
			return nil
		},
	}
}
