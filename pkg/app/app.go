// Package app 提供游戏应用的核心包装器
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/decker502/minigames/pkg/config"
	"github.com/decker502/minigames/pkg/events"
	"github.com/decker502/minigames/pkg/game"
	"github.com/decker502/minigames/pkg/scenes"
	"github.com/decker502/minigames/pkg/services"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scene 启动场景名（空则进入主菜单）
	Scene string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	bus          *events.Bus
	locator      *services.Locator
	sceneManager *game.SceneManager
	transitions  *game.TransitionManager
	loading      *game.LoadingScreen

	overlay  *game.EbitenOverlay
	progress *game.EbitenProgressView
	settings *game.SettingsManager

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 组装顺序：服务注册（总线、存储、配置） -> 场景管理 -> 过渡编排。
// 小游戏在进入各自场景时再初始化，启动阶段不触碰玩法代码。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	bus := events.NewBus()
	locator := services.NewLocator()
	services.RegisterGlobal(locator, bus)

	// 本地存储：失败时降级为无存档模式（高分只存内存）
	store, err := gdata.Open(gdata.Config{AppName: "minigames"})
	if err != nil {
		log.Printf("[App] Warning: local storage unavailable, high scores will not persist: %v", err)
	} else {
		services.RegisterGlobal(locator, store)
	}

	// 设置：读取存档并应用全屏偏好
	settings := game.NewSettingsManager(store)
	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 配置文件缺失时使用内置默认值，解析错误才视为启动失败
	transitionCfg, err := config.LoadTransitionConfig("configs/transition.yaml")
	if err != nil {
		return nil, fmt.Errorf("过渡配置加载失败: %w", err)
	}
	runnerCfg, err := config.LoadRunnerConfig("configs/runner.yaml")
	if err != nil {
		return nil, fmt.Errorf("跑酷配置加载失败: %w", err)
	}
	match3Cfg, err := config.LoadMatch3Config("configs/match3.yaml")
	if err != nil {
		return nil, fmt.Errorf("三消配置加载失败: %w", err)
	}
	services.RegisterGlobal(locator, transitionCfg)
	services.RegisterGlobal(locator, runnerCfg)
	services.RegisterGlobal(locator, match3Cfg)

	// 场景管理器与场景工厂
	sceneManager := game.NewSceneManager(bus, locator)
	sceneManager.Register("menu", func() game.Scene { return scenes.NewMenuScene(locator) })
	sceneManager.Register("runner", func() game.Scene { return scenes.NewRunnerScene(locator) })
	sceneManager.Register("match3", func() game.Scene { return scenes.NewMatch3Scene(locator) })

	// 过渡编排：淡入淡出 + 加载界面
	overlay := game.NewEbitenOverlay()
	progress := game.NewEbitenProgressView()
	loading := game.NewLoadingScreen(bus, progress)

	transitions := game.NewTransitionManager(bus, sceneManager)
	transitions.RegisterTransition(game.NewFadeTransition(overlay))
	transitions.RegisterTransition(game.NewCutTransition())
	transitions.SetLoadingScreen(loading)
	transitions.SetLoadTimeout(transitionCfg.LoadTimeoutSeconds)
	services.RegisterGlobal(locator, transitions)

	// 启动场景：默认主菜单，可经命令行直达小游戏
	startScene := cfg.Scene
	if startScene == "" {
		startScene = "menu"
	}
	if err := sceneManager.LoadSceneAsync(startScene); err != nil {
		return nil, fmt.Errorf("启动场景 %q 加载失败: %w", startScene, err)
	}
	log.Printf("[App] Starting scene: %s", startScene)

	return &App{
		bus:          bus,
		locator:      locator,
		sceneManager: sceneManager,
		transitions:  transitions,
		loading:      loading,
		overlay:      overlay,
		progress:     progress,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}

	deltaTime := 1.0 / 60.0
	a.transitions.Update(deltaTime)
	a.sceneManager.Update(deltaTime)
	a.loading.Update(deltaTime)
	return nil
}

// Draw 渲染游戏画面：场景在底层，加载界面与淡入淡出遮罩依次叠加
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	a.progress.Draw(screen)
	a.overlay.Draw(screen)
}

// Layout 返回游戏的逻辑屏幕尺寸，与实际窗口大小无关
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}
