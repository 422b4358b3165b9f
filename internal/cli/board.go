package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/dartscore-go/internal/api/request"
	"github.com/mcoot/dartscore-go/internal/api/response"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Board geometry commands",
	}

	cmd.AddCommand(newBoardResolveCmd())

	return cmd
}

func newBoardResolveCmd() *cobra.Command {
	var (
		x, y  float64
		index int
		ring  string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a board position or zone to a score",
		Long: `Resolve either --x/--y board coordinates or a --ring (with --index for
numbered rings) without scoring it in any game.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req request.ThrowRequest
			switch {
			case ring != "":
				req.SectorIndex = &index
				req.Ring = ring
			case cmd.Flags().Changed("x") && cmd.Flags().Changed("y"):
				req.X = &x
				req.Y = &y
			default:
				return fmt.Errorf("either --ring or both --x and --y are required")
			}

			var result response.Resolution
			if err := client.Post("/api/v1/board/resolve", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "X coordinate (right of centre)")
	cmd.Flags().Float64Var(&y, "y", 0, "Y coordinate (below centre)")
	cmd.Flags().IntVar(&index, "index", 0, "Wedge index, clockwise from the 20")
	cmd.Flags().StringVar(&ring, "ring", "", "Ring name")

	return cmd
}
