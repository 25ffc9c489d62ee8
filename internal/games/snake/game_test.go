package snake

import (
	"testing"

	"github.com/arcadekit/engine/internal/config"
	"github.com/arcadekit/engine/internal/core"
)

func newTestGame() *Game {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 42})
	return g
}

// stepOnce advances exactly one movement interval.
func stepOnce(g *Game) {
	g.FixedUpdate(1000.0 / g.cfg.Speed)
}

func pressDir(g *Game, d core.Direction) {
	in := core.NewGameInput()
	in.SetDirection(d, true)
	g.Update(core.FrameInfo{}, in)
}

func TestResetInitialBody(t *testing.T) {
	g := newTestGame()

	if len(g.body) != g.cfg.InitialLength {
		t.Fatalf("body length = %d, expected %d", len(g.body), g.cfg.InitialLength)
	}
	head := g.body[0]
	if head.x != 20 || head.y != 10 {
		t.Errorf("head at (%d, %d), expected screen center", head.x, head.y)
	}
	// Body trails left of the head.
	for i, p := range g.body {
		if p.x != head.x-i || p.y != head.y {
			t.Errorf("segment %d at (%d, %d), expected (%d, %d)", i, p.x, p.y, head.x-i, head.y)
		}
	}
	if g.gameOver {
		t.Error("game started over")
	}
}

func TestMovesOnCadence(t *testing.T) {
	g := newTestGame()
	head := g.body[0]

	// Less than one interval: no movement.
	g.FixedUpdate(1000.0/g.cfg.Speed - 1)
	if g.body[0] != head {
		t.Error("snake moved before its interval elapsed")
	}

	// Completing the interval moves one cell right.
	g.FixedUpdate(1)
	if g.body[0].x != head.x+1 || g.body[0].y != head.y {
		t.Errorf("head at (%d, %d), expected (%d, %d)", g.body[0].x, g.body[0].y, head.x+1, head.y)
	}

	// A large step drains multiple moves.
	g.FixedUpdate(3 * 1000.0 / g.cfg.Speed)
	if g.body[0].x != head.x+4 {
		t.Errorf("head x = %d, expected %d after four intervals", g.body[0].x, head.x+4)
	}
}

func TestDirectionChange(t *testing.T) {
	g := newTestGame()
	head := g.body[0]

	pressDir(g, core.DirUp)
	stepOnce(g)

	if g.body[0].x != head.x || g.body[0].y != head.y-1 {
		t.Errorf("head at (%d, %d), expected it moved up", g.body[0].x, g.body[0].y)
	}
}

func TestReversalIgnored(t *testing.T) {
	g := newTestGame()
	head := g.body[0]

	// Moving right; pressing left must not fold the snake back.
	pressDir(g, core.DirLeft)
	stepOnce(g)

	if g.body[0].x != head.x+1 {
		t.Errorf("head at (%d, %d), reversal was applied", g.body[0].x, g.body[0].y)
	}
}

func TestEatFoodGrowsAndScores(t *testing.T) {
	g := newTestGame()
	lengthBefore := len(g.body)

	// Plant food directly in the snake's path.
	g.food = point{x: g.body[0].x + 1, y: g.body[0].y}
	stepOnce(g)

	if g.score != 1 {
		t.Errorf("score = %d, expected 1", g.score)
	}
	if len(g.body) != lengthBefore+g.cfg.GrowthPerFood {
		t.Errorf("body length = %d, expected %d", len(g.body), lengthBefore+g.cfg.GrowthPerFood)
	}
	if g.food == (point{x: g.body[0].x, y: g.body[0].y}) {
		t.Error("food was not replaced after being eaten")
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	g := newTestGame()

	// Run right into the wall.
	for i := 0; i < 40 && !g.gameOver; i++ {
		stepOnce(g)
	}

	if !g.gameOver {
		t.Fatal("snake passed through the wall")
	}
	st := g.Status()
	if !st.Over || st.Victory {
		t.Errorf("Status() = %+v, expected game over", st)
	}

	// A finished game stays frozen.
	head := g.body[0]
	stepOnce(g)
	if g.body[0] != head {
		t.Error("snake moved after game over")
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	g := newTestGame()

	// Give the snake enough length to hit itself on a tight loop.
	g.body = []point{
		{x: 20, y: 10}, {x: 19, y: 10}, {x: 18, y: 10},
		{x: 17, y: 10}, {x: 16, y: 10}, {x: 15, y: 10},
	}

	pressDir(g, core.DirUp)
	stepOnce(g)
	pressDir(g, core.DirLeft)
	stepOnce(g)
	pressDir(g, core.DirDown)
	stepOnce(g)

	if !g.gameOver {
		t.Error("snake survived moving into its own body")
	}
}

func TestTailCellIsSafe(t *testing.T) {
	g := newTestGame()

	// Close a square loop: the head moves onto the cell the tail vacates
	// this same step, which must not count as a self collision.
	g.body = []point{
		{x: 20, y: 11}, {x: 20, y: 10}, {x: 21, y: 10}, {x: 21, y: 11},
	}
	g.dir = core.DirLeft
	g.nextDir = core.DirRight // head at (20,11) moving right onto (21,11), the tail

	stepOnce(g)

	if g.gameOver {
		t.Error("moving onto the vacating tail cell ended the game")
	}
	if g.body[0] != (point{x: 21, y: 11}) {
		t.Errorf("head at (%d, %d), expected the old tail cell", g.body[0].x, g.body[0].y)
	}
}

func TestVictoryAtWinLength(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.WinLength = 4
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 42})

	g.food = point{x: g.body[0].x + 1, y: g.body[0].y}
	stepOnce(g)

	if !g.gameOver || !g.victory {
		t.Fatalf("gameOver = %v victory = %v, expected victory at win length", g.gameOver, g.victory)
	}
	st := g.Status()
	if !st.Victory || st.Over {
		t.Errorf("Status() = %+v, expected victory", st)
	}
}
