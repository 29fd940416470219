package minigame

import (
	"fmt"
	"log"

	"github.com/decker502/minigames/pkg/events"
	"github.com/decker502/minigames/pkg/fsm"
	"github.com/decker502/minigames/pkg/services"
	"github.com/quasilyte/gdata/v2"
)

// Base 小游戏编排器
//
// 负责生命周期管理并在正确的时机调用具体游戏的模板钩子。
// 所有对外操作（Start/Pause/...）先检查生命周期状态，非法调用
// 记录警告并拒绝，不会让钩子在错误的状态下执行。
type Base struct {
	game      Game
	locator   *services.Locator
	bus       *events.Bus
	lifecycle *fsm.Machine[LifecycleState]
	score     *ScoreManager
	input     *InputManager
}

// NewBase 创建编排器
// 真正的依赖解析推迟到 InitializeAsync
func NewBase(game Game, locator *services.Locator) *Base {
	if game == nil {
		panic("minigame: NewBase called with nil game")
	}
	return &Base{
		game:    game,
		locator: locator,
		// 总线在 InitializeAsync 解析成功后补挂
		lifecycle: fsm.NewMachine("lifecycle:"+game.ID(), Uninitialized, lifecycleRules(), nil),
	}
}

// InitializeAsync 解析服务、构建子系统并调用初始化钩子
//
// 事件总线是硬依赖：未注册时返回错误，初始化中止（配置错误必须
// 响亮失败，区别于可选服务的静默缺失）。
func (b *Base) InitializeAsync() error {
	if !b.lifecycle.TransitionTo(Initializing) {
		return fmt.Errorf("minigame %s: cannot initialize from state %v",
			b.game.ID(), b.lifecycle.Current())
	}

	bus, ok := services.Resolve[*events.Bus](b.locator)
	if !ok {
		b.lifecycle.TransitionTo(Uninitialized)
		return fmt.Errorf("minigame %s: event bus is not registered (required service)", b.game.ID())
	}
	b.bus = bus
	b.lifecycle.SetBus(bus)

	// gdata 存储是可选服务：缺失时高分仅保留在内存中
	store, _ := services.Resolve[*gdata.Manager](b.locator)

	b.score = NewScoreManager(b.game.ID(), bus, store)
	if err := b.score.Load(); err != nil {
		log.Printf("[MiniGame:%s] Warning: failed to load high score: %v", b.game.ID(), err)
	}
	b.input = NewInputManager(bus, DefaultBindings())

	ctx := &Context{
		Bus:     bus,
		Locator: b.locator,
		Score:   b.score,
		Input:   b.input,
	}
	if err := b.game.OnInitialize(ctx); err != nil {
		b.lifecycle.TransitionTo(Uninitialized)
		return fmt.Errorf("minigame %s: initialization failed: %w", b.game.ID(), err)
	}

	b.lifecycle.TransitionTo(Ready)
	log.Printf("[MiniGame:%s] Initialized", b.game.ID())
	return nil
}

// Start 开始游玩，仅在 Ready 状态下有效
func (b *Base) Start() error {
	if b.lifecycle.Current() != Ready {
		log.Printf("[MiniGame:%s] Rejected Start: lifecycle is %v, want Ready",
			b.game.ID(), b.lifecycle.Current())
		return fmt.Errorf("minigame %s: cannot start from state %v",
			b.game.ID(), b.lifecycle.Current())
	}
	if err := b.game.OnStart(); err != nil {
		return fmt.Errorf("minigame %s: start failed: %w", b.game.ID(), err)
	}
	b.lifecycle.TransitionTo(Playing)
	return nil
}

// Pause 暂停，仅在 Playing 状态下有效（非法调用记录并忽略）
func (b *Base) Pause() {
	if b.lifecycle.TransitionTo(Paused) {
		b.game.OnPause()
	}
}

// Resume 恢复，仅在 Paused 状态下有效
func (b *Base) Resume() {
	if b.lifecycle.TransitionTo(Playing) {
		b.game.OnResume()
	}
}

// End 结束游玩并保存高分
func (b *Base) End() {
	if !b.lifecycle.TransitionTo(Ended) {
		return
	}
	b.game.OnEnd()
	if err := b.score.Save(); err != nil {
		log.Printf("[MiniGame:%s] Warning: failed to save high score: %v", b.game.ID(), err)
	}
	log.Printf("[MiniGame:%s] Ended (score=%.0f, high=%.0f)",
		b.game.ID(), b.score.Score(), b.score.HighScore())
}

// Cleanup 清理资源（事件订阅等），之后编排器不可再用
func (b *Base) Cleanup() {
	if !b.lifecycle.TransitionTo(CleaningUp) {
		return
	}
	b.game.OnCleanup()
	if b.input != nil {
		b.input.Dispose()
	}
}

// Update 每帧驱动：轮询输入并调用游戏的更新钩子
//
// 更新钩子只在 Playing 状态执行。钩子内的 panic 和错误在这里被
// 捕获并记录——单个子系统的一帧故障不应中断整个帧循环。
// 初始化阶段的失败则相反，见 InitializeAsync。
func (b *Base) Update(deltaTime float64) {
	state := b.lifecycle.Current()
	if state != Playing && state != Paused {
		return
	}
	// 暂停时仍然轮询：恢复命令同样经过输入管理器
	b.input.Poll()
	if state != Playing {
		return
	}
	b.safeUpdate(deltaTime)
}

// safeUpdate 带边界保护的更新钩子调用
func (b *Base) safeUpdate(deltaTime float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[MiniGame:%s] Recovered from panic in update: %v", b.game.ID(), r)
		}
	}()
	if err := b.game.OnUpdate(deltaTime); err != nil {
		log.Printf("[MiniGame:%s] Update error (frame skipped): %v", b.game.ID(), err)
	}
}

// Lifecycle 返回当前生命周期状态
func (b *Base) Lifecycle() LifecycleState {
	return b.lifecycle.Current()
}

// Score 返回得分管理器（初始化之后可用）
func (b *Base) Score() *ScoreManager {
	return b.score
}

// Input 返回输入管理器（初始化之后可用）
func (b *Base) Input() *InputManager {
	return b.input
}
