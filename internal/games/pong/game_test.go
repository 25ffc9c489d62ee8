package pong

import (
	"testing"

	"github.com/arcadekit/engine/internal/core"
)

func newTestGame() *Game {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

// endServe runs the serve delay out so the ball is live.
func endServe(g *Game) {
	for i := 0; i < 70; i++ {
		g.FixedUpdate(16.67)
	}
}

func TestResetCentersEverything(t *testing.T) {
	g := newTestGame()

	if g.score1 != 0 || g.score2 != 0 {
		t.Errorf("scores = %d/%d, expected 0/0", g.score1, g.score2)
	}
	if g.ball.Center.X != 40 || g.ball.Center.Y != 12 {
		t.Errorf("ball at (%v, %v), expected screen center", g.ball.Center.X, g.ball.Center.Y)
	}
	if !g.serving {
		t.Error("game did not start in serve")
	}
	if g.gameOver {
		t.Error("game started over")
	}
}

func TestServeDelayHoldsBall(t *testing.T) {
	g := newTestGame()

	g.FixedUpdate(500)
	if g.ball.Center.X != 40 {
		t.Errorf("ball moved during serve delay: x = %v", g.ball.Center.X)
	}
	if !g.serving {
		t.Error("serve ended early")
	}

	g.FixedUpdate(600)
	if g.serving {
		t.Error("serve did not end after its delay elapsed")
	}
	g.FixedUpdate(100)
	if g.ball.Center.X == 40 {
		t.Error("ball did not move after serve")
	}
}

func TestPaddleMovesWithInput(t *testing.T) {
	g := newTestGame()
	startY := g.paddle1Y

	in := core.NewGameInput()
	in.SetDirection(core.DirUp, true)
	g.Update(core.FrameInfo{}, in)
	g.FixedUpdate(100)

	if g.paddle1Y >= startY {
		t.Errorf("paddle1Y = %v, expected above %v", g.paddle1Y, startY)
	}

	// Released input stops movement.
	g.Update(core.FrameInfo{}, core.NewGameInput())
	held := g.paddle1Y
	g.FixedUpdate(100)
	if g.paddle1Y != held {
		t.Error("paddle moved without input")
	}
}

func TestPaddleClampedToField(t *testing.T) {
	g := newTestGame()

	in := core.NewGameInput()
	in.SetDirection(core.DirUp, true)
	g.Update(core.FrameInfo{}, in)
	for i := 0; i < 200; i++ {
		g.FixedUpdate(16.67)
	}

	if g.paddle1Y < 1 {
		t.Errorf("paddle1Y = %v, escaped the top wall", g.paddle1Y)
	}
}

func TestWallBounceReflectsVertically(t *testing.T) {
	g := newTestGame()
	endServe(g)

	g.ball.Center = core.Vec2{X: 40, Y: 1.2}
	g.ballVel = core.Vec2{X: 5, Y: -20}

	g.FixedUpdate(16.67)

	if g.ballVel.Y <= 0 {
		t.Errorf("ballVel.Y = %v after top wall, expected positive", g.ballVel.Y)
	}
	if g.ballVel.X != 5 {
		t.Errorf("ballVel.X = %v, wall bounce changed horizontal speed", g.ballVel.X)
	}
}

func TestPaddleBounceReversesBall(t *testing.T) {
	g := newTestGame()
	endServe(g)

	// Aim the ball at the middle of the left paddle.
	g.ball.Center = core.Vec2{X: 3.2, Y: g.paddle1Y + float64(g.height)/2}
	g.ballVel = core.Vec2{X: -25, Y: 0}

	g.FixedUpdate(16.67)

	if g.ballVel.X <= 0 {
		t.Errorf("ballVel.X = %v after paddle hit, expected positive", g.ballVel.X)
	}
	if g.ball.Center.X <= float64(g.cfg.Paddle.Inset) {
		t.Errorf("ball at x = %v, still inside the paddle", g.ball.Center.X)
	}
}

func TestGoalScoresAndReserves(t *testing.T) {
	g := newTestGame()
	endServe(g)

	g.ball.Center = core.Vec2{X: 0.5, Y: 12}
	g.ballVel = core.Vec2{X: -50, Y: 0}
	g.FixedUpdate(16.67)

	if g.score2 != 1 {
		t.Errorf("score2 = %d, expected 1 after a left goal", g.score2)
	}
	if !g.serving {
		t.Error("no re-serve after a goal")
	}
	if g.gameOver {
		t.Error("game ended before win score")
	}
}

func TestWinEndsGame(t *testing.T) {
	g := newTestGame()
	endServe(g)

	g.score1 = g.cfg.WinScore - 1
	g.ball.Center = core.Vec2{X: 79.5, Y: 12}
	g.ballVel = core.Vec2{X: 50, Y: 0}
	g.FixedUpdate(16.67)

	if !g.gameOver || g.winner != 1 {
		t.Fatalf("gameOver = %v winner = %d, expected player win", g.gameOver, g.winner)
	}
	st := g.Status()
	if !st.Victory || st.Over {
		t.Errorf("Status() = %+v, expected victory", st)
	}
	if st.Score != g.cfg.WinScore {
		t.Errorf("Status().Score = %d, expected %d", st.Score, g.cfg.WinScore)
	}

	// A finished game stays frozen.
	before := g.ball.Center
	g.FixedUpdate(16.67)
	if g.ball.Center != before {
		t.Error("ball moved after game over")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() core.Vec2 {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
		for i := 0; i < 300; i++ {
			g.FixedUpdate(16.67)
		}
		return g.ball.Center
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
}

func TestRenderDrawsBallAndPaddles(t *testing.T) {
	g := newTestGame()
	endServe(g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if screen.GetCell(int(g.ball.Center.X), int(g.ball.Center.Y)).Rune != BallChar {
		t.Error("ball not rendered at its position")
	}
	left, _ := g.paddleBoxes()
	if screen.GetCell(int(left.X), int(g.paddle1Y)).Rune != PaddleChar {
		t.Error("left paddle not rendered")
	}
}
