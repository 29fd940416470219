// Package runner 实现 3D 无尽跑酷小游戏
//
// 玩法模型：玩家沿 Z 轴自动前进，三条赛道间横移，跳跃越过低障碍、
// 滑铲穿过高障碍、换道绕开全高障碍，沿途拾取收集物。速度随时间
// 爬升，得分 = 距离积分 + 拾取，碰撞即终局。
package runner

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/minigames/pkg/config"
	"github.com/decker502/minigames/pkg/events"
	"github.com/decker502/minigames/pkg/fsm"
	"github.com/decker502/minigames/pkg/minigame"
)

// State 跑酷玩法状态
type State int

const (
	// StateReady 等待开始
	StateReady State = iota
	// StateRunning 正常奔跑
	StateRunning
	// StateJumping 跳跃滞空中
	StateJumping
	// StateSliding 滑铲中
	StateSliding
	// StatePaused 已暂停
	StatePaused
	// StateGameOver 碰撞终局（可重开）
	StateGameOver
)

// String 返回状态的可读名称
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateJumping:
		return "Jumping"
	case StateSliding:
		return "Sliding"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// gameplayRules 跑酷玩法状态转换规则表
// 跳跃/滑铲只能从奔跑进入——"尝试跳跃"在错误状态下被安全拒绝
func gameplayRules() fsm.Rules[State] {
	return fsm.Rules[State]{
		StateReady:    {StateRunning},
		StateRunning:  {StateJumping, StateSliding, StatePaused, StateGameOver},
		StateJumping:  {StateRunning, StatePaused, StateGameOver},
		StateSliding:  {StateRunning, StatePaused, StateGameOver},
		StatePaused:   {StateRunning},
		StateGameOver: {StateReady},
	}
}

// 跑酷玩法事件

// PlayerJumped 玩家起跳
type PlayerJumped struct{}

// PlayerSlid 玩家滑铲
type PlayerSlid struct{}

// LaneChanged 玩家换道
type LaneChanged struct {
	Lane int
}

// ObstacleHit 撞上障碍（随即终局）
type ObstacleHit struct {
	Lane int
	Kind ObstacleKind
}

// CollectiblePicked 拾取收集物
type CollectiblePicked struct {
	Points float64
}

// Game 跑酷小游戏，实现 minigame.Game 钩子接口
type Game struct {
	cfg *config.RunnerConfig
	ctx *minigame.Context

	state *fsm.Machine[State]
	sub   *events.Subscription // 输入命令订阅

	lane       int
	distance   float64
	speed      float64
	jumpTimer  float64
	slideTimer float64

	world        *WorldGenerator
	obstacles    *ObstacleManager
	collectibles *CollectibleManager
}

// NewGame 创建跑酷小游戏（初始化推迟到 OnInitialize）
func NewGame(cfg *config.RunnerConfig) *Game {
	return &Game{cfg: cfg}
}

// ID 实现 minigame.Game
func (g *Game) ID() string {
	return "runner"
}

// OnInitialize 构建状态机、世界与生成器，订阅输入命令
func (g *Game) OnInitialize(ctx *minigame.Context) error {
	if err := g.cfg.Validate(); err != nil {
		return err
	}
	g.ctx = ctx

	g.state = fsm.NewMachine("runner", StateReady, gameplayRules(), ctx.Bus)
	// 上下文校验：世界未就绪时不允许离开 Ready
	g.state.SetGuard(func(from, to State) bool {
		if from == StateReady && g.world == nil {
			return false
		}
		return true
	})

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	g.world = NewWorldGenerator(g.cfg.SegmentLength, g.cfg.Horizon)
	g.obstacles = NewObstacleManager(g.cfg.ObstaclePoolSize, g.cfg.Lanes,
		g.cfg.ObstacleGap, g.cfg.ObstacleGapJitter, rng)
	g.collectibles = NewCollectibleManager(g.cfg.CollectiblePoolSize, g.cfg.Lanes,
		g.cfg.CollectibleGap, g.cfg.CollectiblePoints, rng)

	g.lane = g.cfg.Lanes / 2
	g.speed = g.cfg.BaseSpeed

	g.sub = events.Subscribe(ctx.Bus, func(e minigame.CommandEvent) {
		g.handleCommand(e.Command)
	})
	return nil
}

// OnStart 进入奔跑状态
func (g *Game) OnStart() error {
	if !g.state.TransitionTo(StateRunning) {
		return fmt.Errorf("runner: cannot start from gameplay state %v", g.state.Current())
	}
	log.Printf("[Runner] Starting: %d lanes, base speed %.1f", g.cfg.Lanes, g.cfg.BaseSpeed)
	return nil
}

// OnPause 实现 minigame.Game
func (g *Game) OnPause() {
	g.state.TransitionTo(StatePaused)
}

// OnResume 实现 minigame.Game
func (g *Game) OnResume() {
	g.state.TransitionTo(StateRunning)
}

// OnUpdate 每帧推进世界与碰撞判定
func (g *Game) OnUpdate(deltaTime float64) error {
	state := g.state.Current()
	if state != StateRunning && state != StateJumping && state != StateSliding {
		return nil
	}

	// 速度爬升与距离推进
	g.speed = math.Min(g.speed+g.cfg.SpeedRamp*deltaTime, g.cfg.MaxSpeed)
	g.distance += g.speed * deltaTime

	// 距离积分得分：速度越快倍率越高
	g.ctx.Score.SetMultiplier(g.speed / g.cfg.BaseSpeed)
	g.ctx.Score.AddContinuous(g.cfg.PointsPerMeter*g.speed, deltaTime)

	// 动作计时：滞空/滑铲结束后回到奔跑
	if state == StateJumping {
		g.jumpTimer -= deltaTime
		if g.jumpTimer <= 0 {
			g.state.TransitionTo(StateRunning)
		}
	}
	if state == StateSliding {
		g.slideTimer -= deltaTime
		if g.slideTimer <= 0 {
			g.state.TransitionTo(StateRunning)
		}
	}

	g.world.Update(g.distance)
	g.obstacles.Update(g.distance, g.cfg.Horizon)
	g.collectibles.Update(g.distance, g.cfg.Horizon)

	g.checkCollectibles()
	g.checkObstacles()
	return nil
}

// OnEnd 实现 minigame.Game
func (g *Game) OnEnd() {
	log.Printf("[Runner] Game over: distance=%.1fm, score=%.0f", g.distance, g.ctx.Score.Score())
}

// OnCleanup 释放事件订阅
func (g *Game) OnCleanup() {
	if g.sub != nil {
		g.sub.Dispose()
		g.sub = nil
	}
}

// handleCommand 消费输入命令事件
func (g *Game) handleCommand(cmd minigame.Command) {
	switch cmd {
	case minigame.CommandJump:
		g.TryJump()
	case minigame.CommandSlide:
		g.TrySlide()
	case minigame.CommandMoveLeft:
		g.moveLane(-1)
	case minigame.CommandMoveRight:
		g.moveLane(1)
	}
}

// TryJump 投机尝试起跳：状态机拒绝非法时机（滞空中、终局等）
func (g *Game) TryJump() bool {
	if !g.state.TransitionTo(StateJumping) {
		return false
	}
	g.jumpTimer = g.cfg.JumpDuration
	events.Publish(g.ctx.Bus, PlayerJumped{})
	return true
}

// TrySlide 投机尝试滑铲
func (g *Game) TrySlide() bool {
	if !g.state.TransitionTo(StateSliding) {
		return false
	}
	g.slideTimer = g.cfg.SlideDuration
	events.Publish(g.ctx.Bus, PlayerSlid{})
	return true
}

// moveLane 横移一条赛道（边缘处夹紧）
func (g *Game) moveLane(delta int) {
	state := g.state.Current()
	if state != StateRunning && state != StateJumping && state != StateSliding {
		return
	}
	lane := g.lane + delta
	if lane < 0 || lane >= g.cfg.Lanes {
		return
	}
	g.lane = lane
	events.Publish(g.ctx.Bus, LaneChanged{Lane: lane})
}

// checkObstacles 碰撞判定
// 同赛道、Z 窗口重叠且动作不匹配（低障碍需跳、高障碍需滑）即判撞
func (g *Game) checkObstacles() {
	state := g.state.Current()
	for _, o := range g.obstacles.Active() {
		if o.Lane != g.lane || math.Abs(o.Z-g.distance) > g.cfg.CollisionWindow {
			continue
		}
		cleared := (o.Kind == ObstacleLow && state == StateJumping) ||
			(o.Kind == ObstacleHigh && state == StateSliding)
		if cleared {
			continue
		}
		events.Publish(g.ctx.Bus, ObstacleHit{Lane: o.Lane, Kind: o.Kind})
		g.state.TransitionTo(StateGameOver)
		return
	}
}

// checkCollectibles 拾取判定
func (g *Game) checkCollectibles() {
	for _, c := range g.collectibles.Active() {
		if c.Lane != g.lane || math.Abs(c.Z-g.distance) > g.cfg.CollisionWindow {
			continue
		}
		g.ctx.Score.SetMultiplier(1.0)
		g.ctx.Score.AddScore(c.Points)
		events.Publish(g.ctx.Bus, CollectiblePicked{Points: c.Points})
		g.collectibles.Remove(c)
		return // 每帧最多拾取一个，下一帧继续
	}
}

// Lane 返回当前赛道
func (g *Game) Lane() int { return g.lane }

// Distance 返回已前进距离（米）
func (g *Game) Distance() float64 { return g.distance }

// Speed 返回当前速度（米/秒）
func (g *Game) Speed() float64 { return g.speed }

// State 返回当前玩法状态
func (g *Game) State() State { return g.state.Current() }

// Obstacles 返回赛道上的障碍（场景绘制用）
func (g *Game) Obstacles() []*Obstacle { return g.obstacles.Active() }

// Collectibles 返回赛道上的收集物（场景绘制用）
func (g *Game) Collectibles() []*Collectible { return g.collectibles.Active() }

// World 返回平台分段（场景绘制用）
func (g *Game) World() []Segment { return g.world.Segments() }
