package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/dartscore-go/internal/services/board"
)

// Board colours, alternating by wedge index
var (
	singleColours = [2]string{"#1b1b1b", "#f4e4bc"}
	scoreColours  = [2]string{"#c0392b", "#1e8449"}
)

// viewMargin leaves room for the numbers around the double ring
const viewMargin = 1.25

// Board renders the dartboard as SVG centred on the origin, so click
// coordinates in the SVG user space are board coordinates.
func Board(layout board.Layout) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		half := layout.DoubleOuter * viewMargin
		p.printf(`<svg id="dartboard" xmlns="http://www.w3.org/2000/svg" viewBox="%.0f %.0f %.0f %.0f">
`, -half, -half, 2*half, 2*half)
		p.printf(`<circle cx="0" cy="0" r="%.2f" fill="#0b0b0b"/>
`, half*0.98)

		for _, ring := range []board.Ring{board.RingDouble, board.RingOuterSingle, board.RingTriple, board.RingInnerSingle} {
			colours := singleColours
			if ring == board.RingDouble || ring == board.RingTriple {
				colours = scoreColours
			}
			for index := 0; index < board.SectorCount; index++ {
				sector, _ := board.SectorValue(index)
				p.printf(`<path class="zone" data-ring="%s" data-sector="%d" d="%s" fill="%s" stroke="#999" stroke-width="0.5"/>
`, ring, sector, layout.SectorPath(0, 0, index, ring), colours[index%2])
			}
		}

		p.printf(`<circle class="zone" data-ring="%s" data-sector="25" cx="0" cy="0" r="%.2f" fill="%s" stroke="#999" stroke-width="0.5"/>
`, board.RingOuterBull, layout.Radius(board.RingOuterBull), scoreColours[1])
		p.printf(`<circle class="zone" data-ring="%s" data-sector="25" cx="0" cy="0" r="%.2f" fill="%s" stroke="#999" stroke-width="0.5"/>
`, board.RingInnerBull, layout.Radius(board.RingInnerBull), scoreColours[0])

		for index := 0; index < board.SectorCount; index++ {
			sector, _ := board.SectorValue(index)
			x, y := layout.NumberPosition(0, 0, index)
			p.printf(`<text class="board-number" x="%.2f" y="%.2f">%d</text>
`, x, y, sector)
		}

		p.printf("</svg>\n")
		return p.err
	})
}
