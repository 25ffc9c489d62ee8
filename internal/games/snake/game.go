// Package snake implements the classic Snake game on a character grid.
// Movement advances on a fixed cadence derived from the configured speed,
// driven by the fixed timestep so the snake moves at the same rate at any
// display frame rate.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/arcadekit/engine/internal/config"
	"github.com/arcadekit/engine/internal/core"
	"github.com/arcadekit/engine/internal/registry"
)

// Visual characters for rendering
const (
	HeadChar = '█'
	BodyChar = '▓'
	FoodChar = '●'
	WallChar = '▒'
)

type point struct {
	x, y int
}

// Game implements the Snake game logic.
type Game struct {
	body      []point // Head first
	dir       core.Direction
	nextDir   core.Direction
	food      point
	growth    int // Segments still to grow
	score     int
	gameOver  bool
	victory   bool
	moveAccum float64 // Milliseconds accumulated toward the next move

	cfg     config.SnakeConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand
}

var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a new Snake game instance with default configuration.
func New() *Game {
	return NewWithConfig(config.DefaultSnakeConfig())
}

// NewWithConfig creates a Snake game with the given configuration.
func NewWithConfig(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	// Start centered, moving right, body trailing left.
	startX := runtime.ScreenW / 2
	startY := runtime.ScreenH / 2
	length := max(g.cfg.InitialLength, 1)
	g.body = make([]point, 0, length)
	for i := 0; i < length; i++ {
		g.body = append(g.body, point{x: startX - i, y: startY})
	}

	g.dir = core.DirRight
	g.nextDir = core.DirRight
	g.growth = 0
	g.score = 0
	g.gameOver = false
	g.victory = false
	g.moveAccum = 0

	g.placeFood()
}

// placeFood picks a random free cell inside the walls.
func (g *Game) placeFood() {
	occupied := make(map[point]bool, len(g.body))
	for _, p := range g.body {
		occupied[p] = true
	}

	free := make([]point, 0, g.runtime.ScreenW*g.runtime.ScreenH)
	for y := 1; y < g.runtime.ScreenH-1; y++ {
		for x := 1; x < g.runtime.ScreenW-1; x++ {
			if p := (point{x: x, y: y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		// The snake fills the board.
		g.victory = true
		g.gameOver = true
		return
	}
	g.food = free[g.rng.Intn(len(free))]
}

// Update latches the most recent direction input. Reversals are ignored so
// the snake cannot fold into its own neck.
func (g *Game) Update(_ core.FrameInfo, in core.GameInput) {
	for _, d := range core.Directions {
		if in.Has(d) && d != opposite(g.dir) {
			g.nextDir = d
		}
	}
}

func opposite(d core.Direction) core.Direction {
	switch d {
	case core.DirUp:
		return core.DirDown
	case core.DirDown:
		return core.DirUp
	case core.DirLeft:
		return core.DirRight
	default:
		return core.DirLeft
	}
}

// FixedUpdate accumulates fixed-step time and advances the snake one cell
// whenever the movement interval elapses.
func (g *Game) FixedUpdate(dtMS float64) {
	if g.gameOver {
		return
	}

	interval := 1000.0 / g.cfg.Speed
	g.moveAccum += dtMS
	for g.moveAccum >= interval {
		g.moveAccum -= interval
		g.step()
		if g.gameOver {
			return
		}
	}
}

// step advances the snake by one cell.
func (g *Game) step() {
	g.dir = g.nextDir

	head := g.body[0]
	switch g.dir {
	case core.DirUp:
		head.y--
	case core.DirDown:
		head.y++
	case core.DirLeft:
		head.x--
	case core.DirRight:
		head.x++
	}

	// Walls
	if head.x <= 0 || head.x >= g.runtime.ScreenW-1 ||
		head.y <= 0 || head.y >= g.runtime.ScreenH-1 {
		g.gameOver = true
		return
	}

	// Self collision. The tail cell is safe unless the snake is growing,
	// since it vacates this step.
	bodyToCheck := g.body
	if g.growth == 0 {
		bodyToCheck = g.body[:len(g.body)-1]
	}
	for _, p := range bodyToCheck {
		if p == head {
			g.gameOver = true
			return
		}
	}

	g.body = append([]point{head}, g.body...)

	if head == g.food {
		g.score++
		g.growth += g.cfg.GrowthPerFood
		if g.cfg.WinLength > 0 && len(g.body) >= g.cfg.WinLength {
			g.victory = true
			g.gameOver = true
			return
		}
		g.placeFood()
	}

	if g.growth > 0 {
		g.growth--
	} else {
		g.body = g.body[:len(g.body)-1]
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Walls
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 0, WallChar)
		dst.Set(x, dst.Height()-1, WallChar)
	}
	for y := 0; y < dst.Height(); y++ {
		dst.Set(0, y, WallChar)
		dst.Set(dst.Width()-1, y, WallChar)
	}

	dst.SetColored(g.food.x, g.food.y, FoodChar, core.ColorRed)

	for i, p := range g.body {
		if i == 0 {
			dst.SetColored(p.x, p.y, HeadChar, core.ColorGreen)
		} else {
			dst.SetColored(p.x, p.y, BodyChar, core.ColorGreen)
		}
	}

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))

	if g.gameOver {
		msg := "GAME OVER"
		if g.victory {
			msg = "YOU WIN!"
		}
		dst.DrawTextCentered(dst.Height()/2, msg)
		dst.DrawTextCentered(dst.Height()/2+1, "Press R to restart")
	}
}

// Status returns the current game status.
func (g *Game) Status() core.GameStatus {
	return core.GameStatus{
		Score:   g.score,
		Over:    g.gameOver && !g.victory,
		Victory: g.victory,
	}
}

// Register the game with the registry
func init() {
	registry.Register("snake", func() registry.Game {
		cfg, err := config.LoadSnake(configPath)
		if err != nil {
			cfg = config.DefaultSnakeConfig()
		}
		return NewWithConfig(cfg)
	})
}
