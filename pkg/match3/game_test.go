package match3

import (
	"testing"

	"github.com/decker502/minigames/pkg/config"
	"github.com/decker502/minigames/pkg/events"
	"github.com/decker502/minigames/pkg/minigame"
)

// newTestGame 初始化一个小棋盘的三消游戏
func newTestGame(t *testing.T, moves int) (*Game, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	cfg := &config.Match3Config{
		Cols: 4, Rows: 4, GemKinds: 3,
		Moves: moves, PointsPerGem: 10.0, Seed: 1,
	}
	g := NewGame(cfg)
	ctx := &minigame.Context{
		Bus:   bus,
		Score: minigame.NewScoreManager(g.ID(), bus, nil),
	}
	if err := g.OnInitialize(ctx); err != nil {
		t.Fatalf("OnInitialize() error: %v", err)
	}
	return g, bus
}

// craftSwapLayout 覆盖棋盘为已知布局
// 交换 (1,0) 和 (1,1) 会同时产生横向两组三连
func craftSwapLayout(t *testing.T, g *Game) {
	t.Helper()
	layout := [][]Gem{
		{1, 2, 1, 3},
		{2, 1, 2, 1},
		{1, 3, 1, 3},
		{3, 1, 3, 2},
	}
	for r, rowGems := range layout {
		for c, gem := range rowGems {
			g.Board().SetGem(Point{Col: c, Row: r}, gem)
		}
	}
}

// TestGameInitialState 测试初始化后的状态
func TestGameInitialState(t *testing.T) {
	g, _ := newTestGame(t, 30)

	if g.ID() != "match3" {
		t.Errorf("ID: got %q, want %q", g.ID(), "match3")
	}
	if g.State() != StateReady {
		t.Errorf("State: got %v, want %v", g.State(), StateReady)
	}
	if g.MovesLeft() != 30 {
		t.Errorf("MovesLeft: got %d, want 30", g.MovesLeft())
	}
	if g.Board() == nil {
		t.Fatal("Board: got nil")
	}
}

// TestValidSwapScoresAndConsumesMove 测试有效交换：计分、扣步数、发布结算事件
func TestValidSwapScoresAndConsumesMove(t *testing.T) {
	g, bus := newTestGame(t, 30)
	craftSwapLayout(t, g)

	var resolved []MatchResolved
	events.Subscribe(bus, func(e MatchResolved) { resolved = append(resolved, e) })

	if !g.TrySwap(Point{Col: 1, Row: 0}, Point{Col: 1, Row: 1}) {
		t.Fatal("valid swap was rejected")
	}

	if g.State() != StateReady {
		t.Errorf("State after swap: got %v, want %v", g.State(), StateReady)
	}
	if g.MovesLeft() != 29 {
		t.Errorf("MovesLeft: got %d, want 29", g.MovesLeft())
	}
	if len(resolved) != 1 {
		t.Fatalf("MatchResolved events: got %d, want 1", len(resolved))
	}
	if resolved[0].Cleared < 3 || resolved[0].Cascades < 1 {
		t.Errorf("resolution: got %+v", resolved[0])
	}
	if resolved[0].MovesLeft != 29 {
		t.Errorf("event MovesLeft: got %d, want 29", resolved[0].MovesLeft)
	}
	if g.ctx.Score.Score() <= 0 {
		t.Error("score not accumulated after valid swap")
	}
}

// TestInvalidSwapKeepsMove 测试无效交换不扣步数、不计分
func TestInvalidSwapKeepsMove(t *testing.T) {
	g, bus := newTestGame(t, 30)
	// 构造无匹配可能的棋盘
	layout := [][]Gem{
		{1, 2, 1, 2},
		{3, 1, 3, 1},
		{1, 2, 1, 2},
		{3, 1, 3, 1},
	}
	for r, rowGems := range layout {
		for c, gem := range rowGems {
			g.Board().SetGem(Point{Col: c, Row: r}, gem)
		}
	}

	count := 0
	events.Subscribe(bus, func(e MatchResolved) { count++ })

	if g.TrySwap(Point{Col: 0, Row: 0}, Point{Col: 1, Row: 0}) {
		t.Fatal("no-match swap was accepted")
	}
	if g.MovesLeft() != 30 {
		t.Errorf("MovesLeft after invalid swap: got %d, want 30", g.MovesLeft())
	}
	if count != 0 {
		t.Errorf("MatchResolved events after invalid swap: got %d, want 0", count)
	}
	// 回到 Ready，可以继续操作
	if g.State() != StateReady {
		t.Errorf("State: got %v, want %v", g.State(), StateReady)
	}
}

// TestSwapRejectedWhilePaused 测试暂停状态下交换被拒绝
func TestSwapRejectedWhilePaused(t *testing.T) {
	g, _ := newTestGame(t, 30)
	craftSwapLayout(t, g)

	g.OnPause()
	if g.State() != StatePaused {
		t.Fatalf("State after pause: got %v", g.State())
	}
	if g.TrySwap(Point{Col: 1, Row: 0}, Point{Col: 1, Row: 1}) {
		t.Error("swap accepted while paused")
	}
	if g.MovesLeft() != 30 {
		t.Errorf("MovesLeft: got %d, want 30", g.MovesLeft())
	}

	g.OnResume()
	if g.State() != StateReady {
		t.Errorf("State after resume: got %v", g.State())
	}
}

// TestMovesExhaustionEndsGame 测试步数耗尽进入终局，之后拒绝操作
func TestMovesExhaustionEndsGame(t *testing.T) {
	g, _ := newTestGame(t, 1)
	craftSwapLayout(t, g)

	if !g.TrySwap(Point{Col: 1, Row: 0}, Point{Col: 1, Row: 1}) {
		t.Fatal("valid swap was rejected")
	}
	if g.MovesLeft() != 0 {
		t.Errorf("MovesLeft: got %d, want 0", g.MovesLeft())
	}
	if g.State() != StateGameOver {
		t.Fatalf("State after last move: got %v, want %v", g.State(), StateGameOver)
	}

	// 终局后一切交换被拒绝
	craftSwapLayout(t, g)
	if g.TrySwap(Point{Col: 1, Row: 0}, Point{Col: 1, Row: 1}) {
		t.Error("swap accepted after game over")
	}
}

// TestCascadeMultiplierScoring 测试连锁作为得分倍率
func TestCascadeMultiplierScoring(t *testing.T) {
	g, _ := newTestGame(t, 30)
	craftSwapLayout(t, g)

	if !g.TrySwap(Point{Col: 1, Row: 0}, Point{Col: 1, Row: 1}) {
		t.Fatal("valid swap was rejected")
	}

	// 得分 = cleared * pointsPerGem * cascades；本布局 cleared>=6、cascades>=1
	if got := g.ctx.Score.Score(); got < 60 {
		t.Errorf("score: got %v, want >= 60", got)
	}
	// 结算后倍率复位
	if g.ctx.Score.Multiplier() != 1.0 {
		t.Errorf("multiplier after resolve: got %v, want 1.0", g.ctx.Score.Multiplier())
	}
}
