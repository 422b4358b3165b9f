package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.Resolution:
		o.printResolution(v)
	case response.BotThrowResponse:
		o.printBotThrow(v)
	case model.GameStatistics:
		o.printStatistics(v)
	case response.StatisticsHistory:
		for i, s := range v.Games {
			if i > 0 {
				fmt.Println()
			}
			o.printStatistics(s)
		}
		if len(v.Games) == 0 {
			fmt.Println("No finished games")
		}
	case model.PlayerAggregate:
		o.printAggregate(v)
	case response.Health:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g response.Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Phase: %s\n", g.Phase)
	rule := "straight out"
	if g.DoubleOut {
		rule = "double out"
	}
	fmt.Printf("Rules: %s from %d, %s\n", g.GameType, g.StartingScore, rule)
	fmt.Printf("Turns: %d\n", g.TotalTurns)

	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		marker := " "
		if p.IsCurrentPlayer {
			marker = "*"
		}
		fmt.Printf(" %s %-20s %4d  darts %d/%d  (%s)\n", marker, p.Name, p.Score, p.DartsThrown, model.MaxDartsPerTurn, p.ID)
	}

	if len(g.Throws) > 0 {
		start := max(len(g.Throws)-model.MaxDartsPerTurn, 0)
		labels := make([]string, 0, len(g.Throws)-start)
		for _, t := range g.Throws[start:] {
			label := t.Label
			if !t.Applied {
				label += " (bust)"
			}
			labels = append(labels, label)
		}
		fmt.Printf("Last throws: %s\n", strings.Join(labels, ", "))
	}

	if g.Winner != nil {
		name := *g.Winner
		for _, p := range g.Players {
			if p.ID == *g.Winner {
				name = p.Name
			}
		}
		fmt.Printf("\nWinner: %s\n", name)
	}
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		fmt.Println("No games")
		return
	}
	for _, g := range l.Games {
		line := fmt.Sprintf("%s  %-12s  %d players", g.ID, g.Phase, g.PlayerCount)
		if g.Winner != "" {
			line += "  winner " + g.Winner
		}
		fmt.Println(line)
	}
}

func (o *Output) printResolution(r response.Resolution) {
	if !r.OnBoard || r.Hit == nil {
		fmt.Println("Off the board")
		return
	}
	fmt.Printf("%s (%d points)\n", r.Hit.Label, r.Hit.Points)
}

func (o *Output) printBotThrow(b response.BotThrowResponse) {
	for _, d := range b.Darts {
		where := d.Hit.Label
		if !d.OnBoard {
			where = "off the board"
		}
		fmt.Printf("Bot (%s) threw at (%.1f, %.1f): %s\n", d.Strategy, d.X, d.Y, where)
	}
	fmt.Println()
	o.printGame(b.Game)
}

func (o *Output) printStatistics(s model.GameStatistics) {
	fmt.Printf("Game: %s (%s from %d)\n", s.GameID, s.GameType, s.GameSettings.StartingScore)
	fmt.Printf("Turns: %d\n", s.TotalTurns)
	if s.EndTime != nil {
		fmt.Printf("Played: %s - %s\n", s.StartTime.Format("2006-01-02 15:04"), s.EndTime.Format("15:04"))
	}
	for _, p := range s.Players {
		fmt.Printf("  #%d %-20s score %4d  throws %3d  avg %6.2f  best %3d\n",
			p.FinishPosition, p.Name, p.FinalScore, p.TotalThrows, p.AverageScore, p.BestTurn)
	}
}

func (o *Output) printAggregate(a model.PlayerAggregate) {
	fmt.Printf("Player: %s\n", a.PlayerID)
	fmt.Printf("Games: %d (wins %d)\n", a.TotalGames, a.Wins)
	fmt.Printf("Average per throw: %.2f\n", a.AverageScore)
	fmt.Printf("Best turn: %d\n", a.BestTurn)
	fmt.Printf("Total throws: %d\n", a.TotalThrows)
}
