package match3

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/minigames/pkg/config"
	"github.com/decker502/minigames/pkg/events"
	"github.com/decker502/minigames/pkg/fsm"
	"github.com/decker502/minigames/pkg/minigame"
)

// State 三消玩法状态
type State int

const (
	// StateReady 等待玩家操作
	StateReady State = iota
	// StateSwapping 正在执行交换
	StateSwapping
	// StateResolving 正在结算消除与连锁
	StateResolving
	// StatePaused 已暂停
	StatePaused
	// StateGameOver 步数耗尽，终局
	StateGameOver
)

// String 返回状态的可读名称
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateSwapping:
		return "Swapping"
	case StateResolving:
		return "Resolving"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// gameplayRules 三消玩法状态转换规则表
func gameplayRules() fsm.Rules[State] {
	return fsm.Rules[State]{
		StateReady:     {StateSwapping, StatePaused, StateGameOver},
		StateSwapping:  {StateResolving, StateReady},
		StateResolving: {StateReady, StateGameOver},
		StatePaused:    {StateReady},
		StateGameOver:  {},
	}
}

// MatchResolved 一次有效交换的结算结果事件
type MatchResolved struct {
	Cleared   int // 本次消除的宝石数（含连锁）
	Cascades  int // 连锁次数
	MovesLeft int
}

// Game 三消小游戏，实现 minigame.Game 钩子接口
type Game struct {
	cfg   *config.Match3Config
	ctx   *minigame.Context
	board *Board
	state *fsm.Machine[State]

	movesLeft int
}

// NewGame 创建三消小游戏（初始化推迟到 OnInitialize）
func NewGame(cfg *config.Match3Config) *Game {
	return &Game{cfg: cfg}
}

// ID 实现 minigame.Game
func (g *Game) ID() string {
	return "match3"
}

// OnInitialize 构建棋盘与玩法状态机
func (g *Game) OnInitialize(ctx *minigame.Context) error {
	if err := g.cfg.Validate(); err != nil {
		return err
	}
	g.ctx = ctx

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	board, err := NewBoard(g.cfg.Cols, g.cfg.Rows, g.cfg.GemKinds, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("match3: board creation failed: %w", err)
	}
	g.board = board
	g.movesLeft = g.cfg.Moves
	g.state = fsm.NewMachine("match3", StateReady, gameplayRules(), ctx.Bus)
	return nil
}

// OnStart 实现 minigame.Game
func (g *Game) OnStart() error {
	log.Printf("[Match3] Starting: %dx%d board, %d moves", g.cfg.Cols, g.cfg.Rows, g.movesLeft)
	return nil
}

// OnPause 实现 minigame.Game
func (g *Game) OnPause() {
	g.state.TransitionTo(StatePaused)
}

// OnResume 实现 minigame.Game
func (g *Game) OnResume() {
	g.state.TransitionTo(StateReady)
}

// OnUpdate 实现 minigame.Game
// 三消没有持续推进的世界，更新是空操作（结算在 TrySwap 内同步完成）
func (g *Game) OnUpdate(deltaTime float64) error {
	return nil
}

// OnEnd 实现 minigame.Game
func (g *Game) OnEnd() {
	log.Printf("[Match3] Game over: score=%.0f", g.ctx.Score.Score())
}

// OnCleanup 实现 minigame.Game
func (g *Game) OnCleanup() {
	g.board = nil
}

// TrySwap 玩家请求交换两个格子
//
// 仅在 Ready 状态下接受。无效交换（不相邻或不产生匹配）还原棋盘、
// 不消耗步数。有效交换完成连锁结算、计分、扣步数，步数耗尽进入终局。
func (g *Game) TrySwap(p1, p2 Point) bool {
	if !g.state.TransitionTo(StateSwapping) {
		return false
	}
	ok, cleared, cascades := g.board.TrySwap(p1, p2)
	if !ok {
		g.state.TransitionTo(StateReady)
		return false
	}
	g.state.TransitionTo(StateResolving)

	// 连锁作为得分倍率：一次交换清掉的连锁越多，倍率越高
	g.ctx.Score.SetMultiplier(float64(cascades))
	g.ctx.Score.AddScore(float64(cleared) * g.cfg.PointsPerGem)
	g.ctx.Score.SetMultiplier(1.0)

	g.movesLeft--
	events.Publish(g.ctx.Bus, MatchResolved{
		Cleared:   cleared,
		Cascades:  cascades,
		MovesLeft: g.movesLeft,
	})

	if g.movesLeft <= 0 {
		g.state.TransitionTo(StateGameOver)
	} else {
		g.state.TransitionTo(StateReady)
	}
	return true
}

// Board 返回棋盘（场景绘制用）
func (g *Game) Board() *Board {
	return g.board
}

// MovesLeft 返回剩余步数
func (g *Game) MovesLeft() int {
	return g.movesLeft
}

// State 返回当前玩法状态
func (g *Game) State() State {
	return g.state.Current()
}
