package ui

import "fmt"

// FieldStatsData is the grid-wide readout.
type FieldStatsData struct {
	OccupiedCells int
	TotalCells    int
	MaxGravity    float64
	Movers        int
	Unindexed     int
	Particles     int
}

func statsOf(d any) FieldStatsData { return d.(FieldStatsData) }

var fieldSection = SectionDescriptor{
	ID:    "field",
	Title: "Field",
	Fields: []FieldDescriptor{
		TextField("occupied", "Occupied", func(d any) string {
			s := statsOf(d)
			return fmt.Sprintf("%d / %d", s.OccupiedCells, s.TotalCells)
		}),
		BarField("fill", "Fill", func(d any) float32 {
			s := statsOf(d)
			if s.TotalCells == 0 {
				return 0
			}
			return float32(s.OccupiedCells) / float32(s.TotalCells)
		}),
		NumberField("pull", "Max pull", "%.3f", func(d any) float32 { return float32(statsOf(d).MaxGravity) }),
		TextField("movers", "Movers", func(d any) string {
			s := statsOf(d)
			return fmt.Sprintf("%d (%d adrift)", s.Movers, s.Unindexed)
		}),
		NumberField("particles", "Particles", "%.0f", func(d any) float32 { return float32(statsOf(d).Particles) }),
	},
}

// FieldStatsPanel shows occupancy and field strength for the whole grid.
type FieldStatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

func NewFieldStatsPanel(x, y, width int32) *FieldStatsPanel {
	return &FieldStatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

func (f *FieldStatsPanel) SetPosition(x, y int32) {
	f.x, f.y = x, y
}

// Draw renders the panel and returns the y below it.
func (f *FieldStatsPanel) Draw(data FieldStatsData) int32 {
	r := f.renderer
	pad := r.Theme.Padding
	r.DrawPanel(f.x, f.y, f.width, r.SectionHeight(fieldSection, data)+pad*2)
	return r.DrawSection(f.x+pad, f.y+pad, fieldSection, data, f.width-pad*2)
}
