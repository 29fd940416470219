package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/minigames/pkg/config"
	"github.com/decker502/minigames/pkg/game"
	"github.com/decker502/minigames/pkg/minigame"
	"github.com/decker502/minigames/pkg/services"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// MenuScene 主菜单：列出可玩的小游戏与各自的历史最高分
type MenuScene struct {
	locator *services.Locator

	runnerHigh float64
	match3High float64
}

// NewMenuScene 创建主菜单场景
// 高分在构造时读取一次——从游戏返回菜单会重建场景，自然拿到最新值
func NewMenuScene(locator *services.Locator) *MenuScene {
	s := &MenuScene{locator: locator}
	store, _ := services.Resolve[*gdata.Manager](locator)
	s.runnerHigh = minigame.LoadHighScore(store, "runner")
	s.match3High = minigame.LoadHighScore(store, "match3")
	return s
}

// Update 实现 game.Scene
func (s *MenuScene) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		s.startGame("runner")
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		s.startGame("match3")
	}
}

// startGame 经由过渡编排器切换到小游戏场景
func (s *MenuScene) startGame(name string) {
	tm, ok := services.Resolve[*game.TransitionManager](s.locator)
	if !ok {
		log.Printf("[MenuScene] Transition manager is not registered, cannot start %q", name)
		return
	}
	cfg, ok := services.Resolve[*config.TransitionConfig](s.locator)
	if !ok {
		cfg = config.DefaultTransitionConfig()
	}
	if err := tm.TransitionAsync(transitionData(cfg, name)); err != nil {
		log.Printf("[MenuScene] Failed to start %q: %v", name, err)
	}
}

// Draw 实现 game.Scene
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 22, B: 38, A: 255})

	cx := float64(config.GameWindowWidth) / 2
	drawRect(screen, cx-220, 110, 440, 56, color.RGBA{R: 46, G: 58, B: 96, A: 255})
	ebitenutil.DebugPrintAt(screen, "MINI GAMES", int(cx)-36, 130)

	drawRect(screen, cx-180, 230, 360, 44, color.RGBA{R: 60, G: 90, B: 70, A: 255})
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("[1] Endless Runner    high: %.0f", s.runnerHigh), int(cx)-140, 244)

	drawRect(screen, cx-180, 300, 360, 44, color.RGBA{R: 90, G: 66, B: 60, A: 255})
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("[2] Match-3           high: %.0f", s.match3High), int(cx)-140, 314)

	ebitenutil.DebugPrintAt(screen, "Press 1 or 2 to play, F11 fullscreen", int(cx)-130, 420)
}
