package snake

import "github.com/arcadekit/engine/internal/core"

// Snapshot captures the complete game state for determinism checks and
// state-history capture.
type Snapshot struct {
	Body     [][2]int       `json:"body"` // Head first, [x, y] pairs
	Dir      core.Direction `json:"dir"`
	FoodX    int            `json:"foodX"`
	FoodY    int            `json:"foodY"`
	Growth   int            `json:"growth"`
	Score    int            `json:"score"`
	GameOver bool           `json:"gameOver"`
	Victory  bool           `json:"victory"`
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() any {
	body := make([][2]int, len(g.body))
	for i, p := range g.body {
		body[i] = [2]int{p.x, p.y}
	}
	return Snapshot{
		Body:     body,
		Dir:      g.dir,
		FoodX:    g.food.x,
		FoodY:    g.food.y,
		Growth:   g.growth,
		Score:    g.score,
		GameOver: g.gameOver,
		Victory:  g.victory,
	}
}
