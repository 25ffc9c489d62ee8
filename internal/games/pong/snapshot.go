package pong

// Snapshot captures the complete game state for determinism checks and
// state-history capture. Primitive fields only for stable serialization.
type Snapshot struct {
	BallX    float64 `json:"ballX"`
	BallY    float64 `json:"ballY"`
	BallVX   float64 `json:"ballVx"`
	BallVY   float64 `json:"ballVy"`
	Paddle1Y float64 `json:"paddle1Y"`
	Paddle2Y float64 `json:"paddle2Y"`
	Score1   int     `json:"score1"`
	Score2   int     `json:"score2"`
	GameOver bool    `json:"gameOver"`
	Winner   int     `json:"winner"` // 0=none, 1=player, 2=CPU
	Serving  bool    `json:"serving"`
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() any {
	return Snapshot{
		BallX:    g.ball.Center.X,
		BallY:    g.ball.Center.Y,
		BallVX:   g.ballVel.X,
		BallVY:   g.ballVel.Y,
		Paddle1Y: g.paddle1Y,
		Paddle2Y: g.paddle2Y,
		Score1:   g.score1,
		Score2:   g.score2,
		GameOver: g.gameOver,
		Winner:   g.winner,
		Serving:  g.serving,
	}
}
