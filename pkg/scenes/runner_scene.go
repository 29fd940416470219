package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/minigames/pkg/config"
	"github.com/decker502/minigames/pkg/events"
	"github.com/decker502/minigames/pkg/game"
	"github.com/decker502/minigames/pkg/minigame"
	"github.com/decker502/minigames/pkg/runner"
	"github.com/decker502/minigames/pkg/services"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 加载分期：第 1 步做真实初始化，其余模拟资源准备的分帧推进，
// 让加载界面的进度条有内容可显示
const loadStepTotal = 8

// RunnerScene 跑酷小游戏的宿主场景
//
// 场景实现 game.Loader，初始化在加载阶段分帧完成；进入后等待玩家
// 按空格开始，终局后按回车返回主菜单。
type RunnerScene struct {
	locator *services.Locator
	base    *minigame.Base
	rg      *runner.Game

	loadStep int
	loadErr  error
	ended    bool
	pauseSub *events.Subscription
}

// NewRunnerScene 创建跑酷场景（初始化推迟到加载阶段）
func NewRunnerScene(locator *services.Locator) *RunnerScene {
	return &RunnerScene{locator: locator}
}

// LoadStep 实现 game.Loader
func (s *RunnerScene) LoadStep() (float64, bool) {
	s.loadStep++
	if s.loadStep == 1 {
		s.initialize()
	}
	if s.loadStep >= loadStepTotal {
		return 1.0, true
	}
	return float64(s.loadStep) / float64(loadStepTotal), false
}

// initialize 构建小游戏编排器并完成初始化
func (s *RunnerScene) initialize() {
	cfg, ok := services.Resolve[*config.RunnerConfig](s.locator)
	if !ok {
		cfg = config.DefaultRunnerConfig()
	}
	s.rg = runner.NewGame(cfg)
	s.base = minigame.NewBase(s.rg, s.locator)
	if err := s.base.InitializeAsync(); err != nil {
		s.loadErr = err
		log.Printf("[RunnerScene] Initialization failed: %v", err)
		return
	}
	// 暂停命令由宿主场景消费，跳跃/滑铲/换道由游戏自身消费
	bus, _ := services.Resolve[*events.Bus](s.locator)
	s.pauseSub = events.Subscribe(bus, func(e minigame.CommandEvent) {
		if e.Command == minigame.CommandPause {
			s.togglePause()
		}
	})
}

// togglePause 在 Playing/Paused 之间切换
func (s *RunnerScene) togglePause() {
	switch s.base.Lifecycle() {
	case minigame.Playing:
		s.base.Pause()
	case minigame.Paused:
		s.base.Resume()
	}
}

// Update 实现 game.Scene
func (s *RunnerScene) Update(deltaTime float64) {
	if s.loadErr != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.returnToMenu()
		}
		return
	}

	switch s.base.Lifecycle() {
	case minigame.Ready:
		// 不自动开局：等玩家确认，给读规则的时间
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := s.base.Start(); err != nil {
				log.Printf("[RunnerScene] Start failed: %v", err)
			}
		}
	case minigame.Playing:
		if !s.ended && s.rg.State() == runner.StateGameOver {
			s.ended = true
			s.base.End()
		}
	case minigame.Ended:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.returnToMenu()
		}
	}
	s.base.Update(deltaTime)
}

// returnToMenu 清理小游戏并过渡回主菜单
func (s *RunnerScene) returnToMenu() {
	if s.base != nil {
		s.base.Cleanup()
	}
	if s.pauseSub != nil {
		s.pauseSub.Dispose()
		s.pauseSub = nil
	}
	tm, ok := services.Resolve[*game.TransitionManager](s.locator)
	if !ok {
		log.Printf("[RunnerScene] Transition manager is not registered")
		return
	}
	cfg, ok := services.Resolve[*config.TransitionConfig](s.locator)
	if !ok {
		cfg = config.DefaultTransitionConfig()
	}
	if err := tm.TransitionAsync(transitionData(cfg, "menu")); err != nil {
		log.Printf("[RunnerScene] Failed to return to menu: %v", err)
	}
}

// Draw 实现 game.Scene
//
// 伪 3D 投影：赛道纵深压缩到屏幕 Y 轴，离玩家越远的物体越小越靠上
func (s *RunnerScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 28, B: 34, A: 255})
	if s.loadErr != nil {
		ebitenutil.DebugPrintAt(screen, "Failed to load runner, press ENTER to return", 240, 280)
		return
	}
	if s.rg == nil || s.base == nil {
		return
	}

	laneW := 120.0
	left := float64(config.GameWindowWidth)/2 - laneW*1.5
	groundY := 500.0

	// 赛道
	for lane := 0; lane < 3; lane++ {
		drawRect(screen, left+float64(lane)*laneW, 120, laneW-4, groundY-120,
			color.RGBA{R: 40, G: 44, B: 52, A: 255})
	}

	// 障碍与收集物：Z 距离映射为屏幕高度
	project := func(z float64) float64 {
		d := z - s.rg.Distance()
		return groundY - d*6.0
	}
	for _, o := range s.rg.Obstacles() {
		y := project(o.Z)
		if y < 120 || y > groundY {
			continue
		}
		clr := color.RGBA{R: 200, G: 80, B: 80, A: 255}
		h := 24.0
		switch o.Kind {
		case runner.ObstacleHigh:
			clr = color.RGBA{R: 220, G: 160, B: 60, A: 255}
			h = 40.0
		case runner.ObstacleFull:
			clr = color.RGBA{R: 150, G: 60, B: 180, A: 255}
			h = 56.0
		}
		drawRect(screen, left+float64(o.Lane)*laneW+24, y-h, laneW-52, h, clr)
	}
	for _, c := range s.rg.Collectibles() {
		y := project(c.Z)
		if y < 120 || y > groundY {
			continue
		}
		drawRect(screen, left+float64(c.Lane)*laneW+48, y-14, 16, 14,
			color.RGBA{R: 240, G: 210, B: 80, A: 255})
	}

	// 玩家：跳跃升高、滑铲压扁
	py, ph := groundY-36.0, 36.0
	switch s.rg.State() {
	case runner.StateJumping:
		py -= 48
	case runner.StateSliding:
		py, ph = groundY-18.0, 18.0
	}
	drawRect(screen, left+float64(s.rg.Lane())*laneW+36, py, laneW-72, ph,
		color.RGBA{R: 90, G: 180, B: 230, A: 255})

	// HUD
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("dist %.0fm  speed %.1f  score %.0f  high %.0f",
			s.rg.Distance(), s.rg.Speed(), s.base.Score().Score(), s.base.Score().HighScore()), 16, 16)

	switch s.base.Lifecycle() {
	case minigame.Ready:
		ebitenutil.DebugPrintAt(screen, "SPACE start / arrows move / SPACE jump / DOWN slide / P pause", 170, 560)
	case minigame.Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED - press P to resume", 320, 280)
	case minigame.Ended:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press ENTER for menu", 300, 280)
	}
}
