package bot

import (
	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/board"
)

// Strategy defines where a bot aims its next dart
type Strategy interface {
	// ChoosePoint returns board coordinates relative to the centre, y down
	ChoosePoint(g *model.GameState, layout board.Layout) (x, y float64)
}
