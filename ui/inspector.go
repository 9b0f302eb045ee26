package ui

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/game"
)

func cellOf(d any) game.CellInfo       { return d.(game.CellInfo) }
func bodyOf(d any) *game.EntitySummary { return d.(game.CellInfo).Entity }
func pullOf(d any) float64             { return r2.Norm(cellOf(d).Gravity) }
func hasBody(d any) bool               { return bodyOf(d) != nil }

var cellSection = SectionDescriptor{
	ID:    "cell",
	Title: "Cell",
	Fields: []FieldDescriptor{
		TextField("coord", "Tile", func(d any) string {
			c := cellOf(d)
			return fmt.Sprintf("%d, %d", c.X, c.Y)
		}),
		NumberField("pull", "Pull", "%.4f", func(d any) float32 { return float32(pullOf(d)) }),
		NumberField("heading", "Heading", "%.0f deg", func(d any) float32 {
			g := cellOf(d).Gravity
			return float32(math.Atan2(g.Y, g.X) * 180 / math.Pi)
		}).When(func(d any) bool { return pullOf(d) > 0 }),
		TextField("owner", "Owner", func(d any) string {
			o := cellOf(d).Owner
			return fmt.Sprintf("%d, %d", o.X, o.Y)
		}).When(func(d any) bool { return cellOf(d).Occupied }),
	},
}

var bodySection = SectionDescriptor{
	ID:      "body",
	Title:   "Body",
	Visible: hasBody,
	Fields: []FieldDescriptor{
		TextField("kind", "Kind", func(d any) string { return bodyOf(d).Kind.Label() }),
		BarField("health", "Health", func(d any) float32 {
			e := bodyOf(d)
			if e.MaxHealth <= 0 {
				return 1
			}
			return float32(e.Health) / float32(e.MaxHealth)
		}).When(func(d any) bool { return !bodyOf(d).Kind.Invulnerable() }),
		NumberField("radius", "Radius", "%.0f tiles", func(d any) float32 { return float32(bodyOf(d).RadiusTiles) }),
		NumberField("speed", "Speed", "%.2f", func(d any) float32 {
			e := bodyOf(d)
			return float32(math.Hypot(e.VelX, e.VelY))
		}).When(func(d any) bool { return bodyOf(d).Moving() }),
		TextField("flags", "Flags", func(d any) string {
			e := bodyOf(d)
			flags := "movable"
			if e.Immutable {
				flags = "immutable"
			}
			if !e.Indexed {
				flags += ", adrift"
			}
			return flags
		}),
	},
}

// Inspector shows the field and occupant of one cell.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

func (ins *Inspector) SetPosition(x, y int32) {
	ins.x, ins.y = x, y
}

// Draw renders the panel for info and returns the y below it.
func (ins *Inspector) Draw(info game.CellInfo) int32 {
	r := ins.renderer
	pad := r.Theme.Padding

	height := pad*2 + r.SectionHeight(cellSection, info) + r.SectionHeight(bodySection, info)
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + pad
	for _, sd := range []SectionDescriptor{cellSection, bodySection} {
		y = r.DrawSection(ins.x+pad, y, sd, info, ins.width-pad*2)
	}
	return y
}
