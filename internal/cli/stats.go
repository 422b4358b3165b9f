package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/model"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Exported statistics of finished games",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the statistics of every finished game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.StatisticsHistory

			if err := client.Get("/api/v1/statistics", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "player <player-id>",
		Short: "Show aggregate statistics for a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.PlayerAggregate

			if err := client.Get("/api/v1/statistics/players/"+args[0], &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}
