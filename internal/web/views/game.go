package views

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/board"
)

// RecentThrowCount is how many throws the history panel lists
const RecentThrowCount = 10

// GameView is everything the board page needs
type GameView struct {
	Game   *model.GameState
	Layout board.Layout
	Flash  *FlashMessage
}

// GamePage renders the board, score panel and recent throws of a game
func GamePage(v GameView) templ.Component {
	title := "Darts 501"
	if current := v.Game.CurrentPlayer(); current != nil && !v.Game.IsFinished {
		title = fmt.Sprintf("%s to throw - Darts 501", current.Name)
	}
	return Page(title, v.Flash, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		g := v.Game
		base := "/games/" + string(g.ID)

		p.printf(`<div id="game" data-game-id="%s" data-updated-at="%s" data-phase="%s">
`, esc(string(g.ID)), g.UpdatedAt.Format(time.RFC3339Nano), g.Phase())
		p.render(ctx, statusSection(g))

		p.printf(`<div class="game-layout">
<section class="board-section">
`)
		p.render(ctx, Board(v.Layout))
		p.printf(`<form id="click-form" method="post" action="%s/click" hidden>
<input type="hidden" name="x"><input type="hidden" name="y">
</form>
`, base)
		p.render(ctx, controls(g, base))
		p.printf(`</section>
<section class="side-section">
`)
		p.render(ctx, playerPanel(g))
		p.render(ctx, throwHistory(g))
		p.printf(`</section>
</div>
</div>
<script>%s</script>
`, pageScript)
		return p.err
	}))
}

func statusSection(g *model.GameState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<section id="game-status">
`)
		switch {
		case g.IsFinished:
			name := ""
			if winner := g.GetPlayer(g.Winner); winner != nil {
				name = winner.Name
			}
			p.printf(`<h2 id="winner">Winner: %s!</h2>
`, esc(name))
		case len(g.Players) == 0:
			p.printf(`<h2 id="empty-game">Add players to start a game</h2>
`)
		default:
			current := g.CurrentPlayer()
			p.printf(`<div id="current-player"><h2>Current player: <span class="name">%s</span></h2>
<span class="score">Score: %d</span> <span class="darts">Darts: %d/%d</span></div>
`, esc(current.Name), current.Score, current.DartsThrown, model.MaxDartsPerTurn)
		}
		p.printf(`<p class="game-meta">%s from %d, %s - turn %d</p>
</section>
`, esc(string(g.GameType)), g.StartingScore, outRule(g.DoubleOut), g.TotalTurns+1)
		return p.err
	})
}

func outRule(doubleOut bool) string {
	if doubleOut {
		return "double out"
	}
	return "straight out"
}

func controls(g *model.GameState, base string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<div id="controls">
`)
		if !g.Started && !g.IsFinished && len(g.Players) > 0 {
			p.printf(`<form method="post" action="%s/start"><button id="start" type="submit">Start game</button></form>
`, base)
		}
		if len(g.Throws) > 0 {
			p.printf(`<form method="post" action="%s/undo"><button id="undo" type="submit">Undo last dart</button></form>
`, base)
		}
		if current := g.CurrentPlayer(); current != nil && current.DartsThrown == model.MaxDartsPerTurn && !g.IsFinished {
			p.printf(`<form method="post" action="%s/next"><button id="next" type="submit">Next player</button></form>
`, base)
		}
		if current := g.CurrentPlayer(); current != nil && current.DartsThrown < model.MaxDartsPerTurn && !g.IsFinished {
			p.printf(`<form method="post" action="%s/bot"><button id="bot" type="submit">Throw for me</button></form>
`, base)
		}
		p.printf(`<form method="post" action="%s/reset"><button id="reset" type="submit">New game</button></form>
</div>
`, base)
		return p.err
	})
}

func playerPanel(g *model.GameState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<div id="players" class="player-panel"><h3>Players</h3>
`)
		for i, player := range g.Players {
			class := "player-card"
			if player.IsCurrentPlayer {
				class += " current"
			}
			p.printf(`<div class="%s" data-player-id="%s">
<h4 class="player-name">%s</h4>
<div class="player-score">%d</div>
<div class="player-darts">%d/%d</div>
<div class="player-position">#%d</div>
</div>
`, class, esc(string(player.ID)), esc(player.Name), player.Score, player.DartsThrown, model.MaxDartsPerTurn, i+1)
		}
		p.printf("</div>\n")
		return p.err
	})
}

func throwHistory(g *model.GameState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<div id="throws" class="throws-history"><h3>Recent throws</h3>
`)
		shown := 0
		for i := len(g.Throws) - 1; i >= 0 && shown < RecentThrowCount; i-- {
			t := g.Throws[i]
			name := ""
			if player := g.GetPlayer(t.PlayerID); player != nil {
				name = player.Name
			}
			class := "throw-item"
			if !t.Applied {
				class += " rejected"
			}
			p.printf(`<div class="%s"><span class="player-name">%s</span> <span class="throw-label">%s</span> <span class="throw-points">%d</span></div>
`, class, esc(name), esc(t.Hit().Label()), t.Points)
			shown++
		}
		if shown == 0 {
			p.printf(`<p class="no-throws">No throws yet</p>
`)
		}
		p.printf("</div>\n")
		return p.err
	})
}

// pageScript posts board clicks in board coordinates and follows the live feed
const pageScript = `
(function () {
  var root = document.getElementById("game");
  var gameId = root.dataset.gameId;
  var updatedAt = root.dataset.updatedAt;
  var svg = document.getElementById("dartboard");
  var form = document.getElementById("click-form");
  svg.addEventListener("click", function (ev) {
    var pt = svg.createSVGPoint();
    pt.x = ev.clientX;
    pt.y = ev.clientY;
    var local = pt.matrixTransform(svg.getScreenCTM().inverse());
    form.elements.x.value = local.x.toFixed(2);
    form.elements.y.value = local.y.toFixed(2);
    form.submit();
  });
  var source = new EventSource("/games/" + gameId + "/events");
  source.addEventListener("game-update", function (ev) {
    var g = JSON.parse(ev.data);
    if (g.id !== gameId || g.updated_at !== updatedAt) {
      window.location.href = "/games/" + g.id;
    }
  });
  source.addEventListener("game-deleted", function () {
    window.location.href = "/";
  });
})();
`
