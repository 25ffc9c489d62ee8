// Package pong implements a classic Pong game with CPU opponent.
// Player controls the left paddle, CPU controls the right paddle.
// Ball and paddle physics run on the fixed timestep so gameplay is
// frame-rate independent.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/arcadekit/engine/internal/collision"
	"github.com/arcadekit/engine/internal/config"
	"github.com/arcadekit/engine/internal/core"
	"github.com/arcadekit/engine/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

// CPU tuning
const (
	cpuReactionMin = 0.6  // CPU tracking skill (0-1, 1 = perfect)
	cpuReactionMax = 0.85 // Max CPU skill
	ballRadius     = 0.5
	paddleWidth    = 1.0
	spinFactor     = 10.0 // Vertical speed added per unit of off-center hit
)

// Game implements the Pong game logic.
type Game struct {
	// Paddles
	paddle1Y float64 // Player (left) paddle top Y
	paddle2Y float64 // CPU (right) paddle top Y
	p1Move   float64 // -1, 0 or 1 from the current input snapshot

	// Ball
	ball    collision.Circle
	ballVel core.Vec2 // Cells per second

	// Scores
	score1 int
	score2 int

	// Game state
	gameOver    bool
	winner      int     // 1 or 2
	serving     bool    // True while waiting to serve
	serveTimeMS float64 // Remaining serve delay

	// Settings
	cfg       config.PongConfig
	runtime   core.RuntimeConfig
	height    int // Paddle height after screen scaling
	rng       *rand.Rand
	cpuSkill  float64
	elapsedMS float64
}

var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a new Pong game instance with default configuration.
func New() *Game {
	return NewWithConfig(config.DefaultPongConfig())
}

// NewWithConfig creates a Pong game with the given configuration.
func NewWithConfig(cfg config.PongConfig) *Game {
	return &Game{cfg: cfg, cpuSkill: cpuReactionMin}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	// Adjust paddle height based on screen size
	g.height = core.Clamp(runtime.ScreenH/5, 3, g.cfg.Paddle.Height)

	centerY := float64(runtime.ScreenH) / 2.0
	g.paddle1Y = centerY - float64(g.height)/2.0
	g.paddle2Y = centerY - float64(g.height)/2.0

	g.score1 = 0
	g.score2 = 0
	g.gameOver = false
	g.winner = 0
	g.cpuSkill = cpuReactionMin
	g.elapsedMS = 0

	g.startServe(1)
}

// startServe centers the ball and aims it at the player who was scored
// against.
func (g *Game) startServe(server int) {
	g.serving = true
	g.serveTimeMS = 1000

	g.ball = collision.NewCircle(
		float64(g.runtime.ScreenW)/2.0,
		float64(g.runtime.ScreenH)/2.0,
		ballRadius,
	)

	speed := g.cfg.Ball.Speed
	vx := speed
	if server == 1 {
		vx = -speed
	}
	// Random vertical angle
	angle := (g.rng.Float64() - 0.5) * 0.6 // -0.3 to 0.3
	g.ballVel = core.Vec2{X: vx, Y: speed * angle}
}

// Update records the player's movement intent from the input snapshot.
func (g *Game) Update(_ core.FrameInfo, in core.GameInput) {
	g.p1Move = 0
	if in.Has(core.DirUp) {
		g.p1Move = -1
	}
	if in.Has(core.DirDown) {
		g.p1Move = 1
	}
}

// FixedUpdate advances paddles, serve timing and ball physics by one fixed
// timestep.
func (g *Game) FixedUpdate(dtMS float64) {
	if g.gameOver {
		return
	}
	g.elapsedMS += dtMS
	dt := dtMS / 1000.0

	// Player paddle
	g.paddle1Y += g.p1Move * g.cfg.Paddle.Speed * dt
	maxY := float64(g.runtime.ScreenH - g.height - 1)
	g.paddle1Y = core.ClampF(g.paddle1Y, 1, maxY)

	g.updateCPU(dt)

	if g.serving {
		g.serveTimeMS -= dtMS
		if g.serveTimeMS <= 0 {
			g.serving = false
		}
		return
	}

	g.updateBall(dt)

	// Gradually increase CPU skill
	if g.cpuSkill < cpuReactionMax {
		g.cpuSkill = math.Min(cpuReactionMax, cpuReactionMin+g.elapsedMS/10000.0*0.02)
	}
}

// updateCPU tracks the ball with skill-limited speed.
func (g *Game) updateCPU(dt float64) {
	targetY := g.ball.Center.Y - float64(g.height)/2.0
	diff := targetY - g.paddle2Y

	// Only move while the ball is approaching
	if g.ballVel.X > 0 {
		moveSpeed := g.cfg.Paddle.Speed * g.cpuSkill * dt
		if math.Abs(diff) > moveSpeed {
			if diff > 0 {
				g.paddle2Y += moveSpeed
			} else {
				g.paddle2Y -= moveSpeed
			}
		}
	}

	maxY := float64(g.runtime.ScreenH - g.height - 1)
	g.paddle2Y = core.ClampF(g.paddle2Y, 1, maxY)
}

// paddleBoxes returns the collision boxes for both paddles.
func (g *Game) paddleBoxes() (collision.AABB, collision.AABB) {
	inset := float64(g.cfg.Paddle.Inset)
	left := collision.NewAABB(inset, g.paddle1Y, paddleWidth, float64(g.height))
	right := collision.NewAABB(
		float64(g.runtime.ScreenW)-inset-paddleWidth,
		g.paddle2Y, paddleWidth, float64(g.height),
	)
	return left, right
}

// updateBall integrates the ball and resolves wall, paddle and goal events.
func (g *Game) updateBall(dt float64) {
	g.ball.Center = g.ball.Center.Add(g.ballVel.Scale(dt))

	// Walls reflect off fixed normals.
	if g.ball.Center.Y <= 1 {
		g.ball.Center.Y = 1
		g.ballVel = collision.Reflect(g.ballVel, core.Vec2{X: 0, Y: 1}, g.cfg.Ball.Restitution)
	}
	if g.ball.Center.Y >= float64(g.runtime.ScreenH-2) {
		g.ball.Center.Y = float64(g.runtime.ScreenH - 2)
		g.ballVel = collision.Reflect(g.ballVel, core.Vec2{X: 0, Y: -1}, g.cfg.Ball.Restitution)
	}

	left, right := g.paddleBoxes()
	if g.ballVel.X < 0 && g.ball.IntersectsAABB(left) {
		g.bounceOffPaddle(left, core.Vec2{X: 1, Y: 0}, g.paddle1Y)
	}
	if g.ballVel.X > 0 && g.ball.IntersectsAABB(right) {
		g.bounceOffPaddle(right, core.Vec2{X: -1, Y: 0}, g.paddle2Y)
	}

	// Limit ball speed so spin cannot make it unplayable.
	maxSpeed := g.cfg.Ball.Speed * 3
	g.ballVel.X = core.ClampF(g.ballVel.X, -maxSpeed, maxSpeed)
	g.ballVel.Y = core.ClampF(g.ballVel.Y, -maxSpeed/2, maxSpeed/2)

	// Goals
	if g.ball.Center.X < 0 {
		g.score2++
		if g.score2 >= g.cfg.WinScore {
			g.gameOver = true
			g.winner = 2
		} else {
			g.startServe(2)
		}
	}
	if g.ball.Center.X > float64(g.runtime.ScreenW) {
		g.score1++
		if g.score1 >= g.cfg.WinScore {
			g.gameOver = true
			g.winner = 1
		} else {
			g.startServe(1)
		}
	}
}

// bounceOffPaddle reflects the ball off a paddle face and adds spin based on
// where it struck.
func (g *Game) bounceOffPaddle(box collision.AABB, normal core.Vec2, paddleY float64) {
	g.ballVel = collision.Reflect(g.ballVel, normal, g.cfg.Ball.Restitution)

	// Push the ball out of the paddle along the bounce normal.
	if normal.X > 0 {
		g.ball.Center.X = box.Right() + g.ball.Radius
	} else {
		g.ball.Center.X = box.X - g.ball.Radius
	}

	hitPos := (g.ball.Center.Y - paddleY) / float64(g.height)
	g.ballVel.Y += (hitPos - 0.5) * spinFactor

	// Rallies speed up slightly.
	g.ballVel.X *= 1.02
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Net
	centerX := dst.Width() / 2
	for y := 1; y < dst.Height()-1; y += 2 {
		dst.Set(centerX, y, NetChar)
	}

	left, right := g.paddleBoxes()
	for i := range g.height {
		dst.SetColored(int(left.X), int(g.paddle1Y)+i, PaddleChar, core.ColorCyan)
		dst.SetColored(int(right.X), int(g.paddle2Y)+i, PaddleChar, core.ColorMagenta)
	}

	// Ball blinks during serve
	if !g.serving || int(g.serveTimeMS/150)%2 == 0 {
		dst.SetColored(int(g.ball.Center.X), int(g.ball.Center.Y), BallChar, core.ColorYellow)
	}

	dst.DrawText(centerX-5, 0, fmt.Sprintf("%d", g.score1))
	dst.DrawText(centerX+4, 0, fmt.Sprintf("%d", g.score2))
	dst.DrawText(1, 0, "P1")
	dst.DrawText(dst.Width()-4, 0, "CPU")

	if g.gameOver {
		msg := "CPU WINS!"
		if g.winner == 1 {
			msg = "YOU WIN!"
		}
		g.drawCenteredMessage(dst, msg, fmt.Sprintf("%d - %d  |  Press R to restart", g.score1, g.score2))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// Status returns the current game status.
func (g *Game) Status() core.GameStatus {
	return core.GameStatus{
		Score:   g.score1,
		Over:    g.gameOver && g.winner != 1,
		Victory: g.gameOver && g.winner == 1,
	}
}

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		cfg, err := config.LoadPong(configPath)
		if err != nil {
			cfg = config.DefaultPongConfig()
		}
		return NewWithConfig(cfg)
	})
}
