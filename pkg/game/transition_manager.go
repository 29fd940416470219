package game

import (
	"fmt"
	"log"

	"github.com/decker502/minigames/pkg/events"
)

// transitionPhase 过渡序列的推进阶段
type transitionPhase int

const (
	phaseIdle transitionPhase = iota
	phaseFadeOut
	phaseLoading
	phaseFadeIn
)

// TransitionManager 场景过渡编排器
//
// 固定序列：淡出 -> （可选加载界面 +）异步场景加载 -> 淡入，
// 每一步发布对应的生命周期事件。序列按 tick 协作推进（Update 每帧
// 调用一次），从不阻塞调用线程。
//
// 并发约束：同一时间只允许一次过渡。IsTransitioning 为 true 时的
// 第二次请求被拒绝（记录日志），不排队也不打断——调用方需要自行
// 串行化过渡请求。
type TransitionManager struct {
	bus    *events.Bus
	scenes *SceneManager

	strategies map[TransitionType]Transition
	loading    *LoadingScreen // 可选

	active        Transition
	data          SceneTransitionData
	phase         transitionPhase
	transitioning bool

	loadElapsed float64
	loadTimeout float64 // 加载轮询的最大等待时间（秒），<=0 表示不限
}

// NewTransitionManager 创建过渡编排器
func NewTransitionManager(bus *events.Bus, scenes *SceneManager) *TransitionManager {
	return &TransitionManager{
		bus:        bus,
		scenes:     scenes,
		strategies: make(map[TransitionType]Transition),
	}
}

// RegisterTransition 按类型注册过渡策略，同类型重复注册覆盖
func (tm *TransitionManager) RegisterTransition(t Transition) {
	if t == nil {
		panic("game: RegisterTransition called with nil transition")
	}
	tm.strategies[t.Type()] = t
}

// SetLoadingScreen 绑定加载界面（可选）
func (tm *TransitionManager) SetLoadingScreen(ls *LoadingScreen) {
	tm.loading = ls
}

// SetLoadTimeout 设置加载轮询的最大等待时间（秒）
//
// 这是桥接协作式序列与外部异步加载原语的安全网：超时后记录错误
// 并继续淡入，避免卡死的加载把 IsTransitioning 标志永久占住。
func (tm *TransitionManager) SetLoadTimeout(seconds float64) {
	tm.loadTimeout = seconds
}

// IsTransitioning 返回是否有过渡正在进行
func (tm *TransitionManager) IsTransitioning() bool {
	return tm.transitioning
}

// TransitionAsync 请求一次过渡
//
// 过渡进行中再次请求会被拒绝并返回错误，第一次过渡的序列不受影响。
func (tm *TransitionManager) TransitionAsync(data SceneTransitionData) error {
	if tm.transitioning {
		log.Printf("[TransitionManager] Rejected transition to %q: transition already in progress",
			data.TargetScene)
		return fmt.Errorf("transition manager: transition already in progress")
	}
	strategy, ok := tm.strategies[data.Type]
	if !ok {
		return fmt.Errorf("transition manager: no strategy registered for type %v", data.Type)
	}

	log.Printf("[TransitionManager] Starting %v transition to scene %q (duration=%.2fs, loadingScreen=%v)",
		data.Type, data.TargetScene, data.Duration, data.ShowLoadingScreen)

	tm.transitioning = true
	tm.active = strategy
	tm.data = data
	tm.active.Initialize(data)

	events.Publish(tm.bus, TransitionStarted{Data: data})
	events.Publish(tm.bus, FadeOutStarted{})
	tm.active.BeginFadeOut()
	tm.phase = phaseFadeOut
	return nil
}

// Update 推进当前过渡序列一帧
func (tm *TransitionManager) Update(deltaTime float64) {
	switch tm.phase {
	case phaseIdle:
		return

	case phaseFadeOut:
		if !tm.active.Step(deltaTime) {
			return
		}
		events.Publish(tm.bus, FadeOutCompleted{})
		tm.beginLoad()

	case phaseLoading:
		tm.loadElapsed += deltaTime
		if tm.scenes.IsLoading() {
			if tm.loadTimeout > 0 && tm.loadElapsed > tm.loadTimeout {
				log.Printf("[TransitionManager] Scene %q load exceeded %.1fs timeout, proceeding to fade-in",
					tm.data.TargetScene, tm.loadTimeout)
				tm.beginFadeIn()
			}
			return
		}
		tm.beginFadeIn()

	case phaseFadeIn:
		if !tm.active.Step(deltaTime) {
			return
		}
		events.Publish(tm.bus, FadeInCompleted{})
		tm.active.Reset()
		tm.transitioning = false
		tm.phase = phaseIdle
		events.Publish(tm.bus, TransitionCompleted{Data: tm.data})
	}
}

// beginLoad 淡出结束后启动场景加载
func (tm *TransitionManager) beginLoad() {
	if tm.data.ShowLoadingScreen && tm.loading != nil {
		tm.loading.Show(tm.data.LoadingText)
	}
	tm.loadElapsed = 0
	if err := tm.scenes.LoadSceneAsync(tm.data.TargetScene); err != nil {
		// 加载无法启动（场景未注册等）：跳过加载阶段直接淡入，
		// 过渡序列仍然走完，避免标志位卡住
		log.Printf("[TransitionManager] Scene load failed: %v", err)
		tm.beginFadeIn()
		return
	}
	tm.phase = phaseLoading
}

// beginFadeIn 进入淡入阶段
func (tm *TransitionManager) beginFadeIn() {
	if tm.loading != nil {
		tm.loading.Hide()
	}
	events.Publish(tm.bus, FadeInStarted{})
	tm.active.BeginFadeIn()
	tm.phase = phaseFadeIn
}
