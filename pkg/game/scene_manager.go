package game

import (
	"fmt"
	"log"

	"github.com/decker502/minigames/pkg/events"
	"github.com/decker502/minigames/pkg/services"
	"github.com/hajimehoshi/ebiten/v2"
)

// pendingScene 一次进行中（或已预载完成）的场景加载
type pendingScene struct {
	name     string
	scene    Scene
	loader   Loader // nil 表示无需分帧加载
	progress float64
	activate bool // 完成后是否立即激活（预载为 false）
}

// SceneManager manages the game's high-level state by controlling which
// scene is active. It owns the named scene registry, drives cooperative
// per-tick scene loading with progress events, and clears scene-scoped
// services whenever the active scene is replaced.
//
// Only one load may be in flight at a time; a second load request while
// IsLoading is true is rejected. Callers that need fades around the load
// go through TransitionManager instead of calling LoadSceneAsync directly.
type SceneManager struct {
	bus     *events.Bus
	locator *services.Locator

	factories   map[string]SceneFactory
	current     Scene
	currentName string

	loading   *pendingScene // 进行中的加载
	preloaded *pendingScene // 已完成、等待激活的预载场景
}

// NewSceneManager creates a scene manager. The locator may be nil in tests;
// when present its scene tier is cleared on every scene activation.
func NewSceneManager(bus *events.Bus, locator *services.Locator) *SceneManager {
	return &SceneManager{
		bus:       bus,
		locator:   locator,
		factories: make(map[string]SceneFactory),
	}
}

// Register adds a named scene factory. Re-registering a name overwrites.
func (sm *SceneManager) Register(name string, factory SceneFactory) {
	if factory == nil {
		panic("game: Register called with nil scene factory")
	}
	sm.factories[name] = factory
}

// CurrentScene returns the active scene, or nil before the first load.
func (sm *SceneManager) CurrentScene() Scene {
	return sm.current
}

// CurrentSceneName returns the name of the active scene.
func (sm *SceneManager) CurrentSceneName() string {
	return sm.currentName
}

// IsLoading reports whether a scene load is in flight.
func (sm *SceneManager) IsLoading() bool {
	return sm.loading != nil
}

// LoadingProgress returns the in-flight load progress (0..1),
// or 1.0 when no load is in flight.
func (sm *SceneManager) LoadingProgress() float64 {
	if sm.loading == nil {
		return 1.0
	}
	return sm.loading.progress
}

// LoadSceneAsync begins loading the named scene and activates it on
// completion. Scenes without a Loader activate within this call.
func (sm *SceneManager) LoadSceneAsync(name string) error {
	return sm.beginLoad(name, true)
}

// ReloadCurrentSceneAsync reloads the active scene from its factory.
func (sm *SceneManager) ReloadCurrentSceneAsync() error {
	if sm.currentName == "" {
		return fmt.Errorf("scene manager: no current scene to reload")
	}
	return sm.beginLoad(sm.currentName, true)
}

// PreloadSceneAsync loads the named scene but keeps it inactive until
// ActivatePreloadedSceneAsync is called.
func (sm *SceneManager) PreloadSceneAsync(name string) error {
	return sm.beginLoad(name, false)
}

// ActivatePreloadedSceneAsync swaps in the previously preloaded scene.
func (sm *SceneManager) ActivatePreloadedSceneAsync() error {
	if sm.preloaded == nil {
		return fmt.Errorf("scene manager: no preloaded scene to activate")
	}
	p := sm.preloaded
	sm.preloaded = nil
	sm.activate(p)
	return nil
}

// beginLoad 启动一次加载；同一时间只允许一次加载在途
func (sm *SceneManager) beginLoad(name string, activate bool) error {
	if sm.loading != nil {
		log.Printf("[SceneManager] Rejected load of %q: load of %q already in progress",
			name, sm.loading.name)
		return fmt.Errorf("scene manager: load already in progress")
	}
	factory, ok := sm.factories[name]
	if !ok {
		return fmt.Errorf("scene manager: scene %q is not registered", name)
	}

	log.Printf("[SceneManager] Loading scene: %s", name)
	scene := factory()
	if scene == nil {
		return fmt.Errorf("scene manager: factory for %q returned nil", name)
	}

	p := &pendingScene{name: name, scene: scene, activate: activate}
	if loader, ok := scene.(Loader); ok {
		p.loader = loader
		sm.loading = p
		events.Publish(sm.bus, SceneLoadingStarted{Scene: name})
		return nil
	}

	// 场景无需分帧加载：进度直接到 1，同步完成
	events.Publish(sm.bus, SceneLoadingStarted{Scene: name})
	p.progress = 1.0
	events.Publish(sm.bus, SceneLoadingProgress{Scene: name, Progress: 1.0})
	sm.finishLoad(p)
	return nil
}

// Update steps the in-flight load (one LoadStep per tick) or, when idle,
// updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.loading != nil {
		p := sm.loading
		progress, done := p.loader.LoadStep()
		p.progress = clampProgress(progress)
		events.Publish(sm.bus, SceneLoadingProgress{Scene: p.name, Progress: p.progress})
		if done {
			if p.progress < 1.0 {
				p.progress = 1.0
				events.Publish(sm.bus, SceneLoadingProgress{Scene: p.name, Progress: 1.0})
			}
			sm.loading = nil
			sm.finishLoad(p)
		}
		return
	}
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

// finishLoad 完成加载：发布完成事件，按需激活或存为预载
func (sm *SceneManager) finishLoad(p *pendingScene) {
	events.Publish(sm.bus, SceneLoadingCompleted{Scene: p.name})
	if p.activate {
		sm.activate(p)
		return
	}
	sm.preloaded = p
	log.Printf("[SceneManager] Scene %s preloaded, awaiting activation", p.name)
}

// activate 切换活动场景
//
// 切换前必须清除场景级服务：旧场景的服务引用不能泄漏给新场景。
// 新场景在激活后的首个 Update 中注册自己的场景级服务。
func (sm *SceneManager) activate(p *pendingScene) {
	if sm.locator != nil {
		sm.locator.ClearSceneServices()
	}
	sm.current = p.scene
	sm.currentName = p.name
	log.Printf("[SceneManager] Switched to scene: %s", p.name)
}

// Draw renders the currently active scene to the provided screen.
// During a load the previous scene keeps drawing (the fade overlay
// covers the swap).
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
