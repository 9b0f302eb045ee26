package renderer

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/gravwell/camera"
)

// backgroundResolution is world units per background texel.
const backgroundResolution = 2

// BackgroundRenderer draws a static nebula and starfield behind the grid.
// The texture is generated once from simplex noise and covers the world.
type BackgroundRenderer struct {
	texture        rl.Texture2D
	worldW, worldH float32
	seed           int64
	initialized    bool
}

// NewBackgroundRenderer creates a background for a world of the given size.
func NewBackgroundRenderer(worldW, worldH float64, seed int64) *BackgroundRenderer {
	return &BackgroundRenderer{
		worldW: float32(worldW),
		worldH: float32(worldH),
		seed:   seed,
	}
}

// Init uploads the texture (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	w := int(b.worldW) / backgroundResolution
	h := int(b.worldH) / backgroundResolution
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := rl.NewImageFromImage(NebulaImage(w, h, b.seed))
	b.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(b.texture, rl.FilterBilinear)

	b.initialized = true
}

// Draw renders the background under the camera.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	if !b.initialized {
		b.Init()
	}

	sx, sy := cam.WorldToScreen(0, 0)
	rl.DrawTexturePro(
		b.texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(b.texture.Width), Height: float32(b.texture.Height)},
		rl.Rectangle{X: sx, Y: sy, Width: b.worldW * cam.Zoom, Height: b.worldH * cam.Zoom},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadTexture(b.texture)
		b.initialized = false
	}
}

// NebulaImage generates a w x h nebula with scattered stars.
// The same seed always yields the same image.
func NebulaImage(w, h int, seed int64) *image.RGBA {
	noise := opensimplex.NewNormalized(seed)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	const scale = 1.0 / 180.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := fbm(noise, float64(x)*scale, float64(y)*scale, 4)
			// Second channel offset so the two hues drift apart
			m := fbm(noise, float64(x)*scale+31.7, float64(y)*scale-12.3, 3)

			glow := n * n
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(6 + glow*60 + m*m*20),
				G: uint8(8 + glow*25),
				B: uint8(18 + glow*90 + m*30),
				A: 255,
			})
		}
	}

	rng := rand.New(rand.NewSource(seed))
	stars := w * h / 350
	for i := 0; i < stars; i++ {
		x := rng.Intn(w)
		y := rng.Intn(h)
		v := uint8(140 + rng.Intn(116))
		img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: uint8(math.Min(255, float64(v)+20)), A: 255})
	}

	return img
}

// fbm sums octaves of normalized simplex noise into [0, 1].
func fbm(noise opensimplex.Noise, x, y float64, octaves int) float64 {
	var sum, amp, norm float64 = 0, 1, 0
	freq := 1.0
	for i := 0; i < octaves; i++ {
		sum += noise.Eval2(x*freq, y*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}
