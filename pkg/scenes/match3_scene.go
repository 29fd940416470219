package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/minigames/pkg/config"
	"github.com/decker502/minigames/pkg/events"
	"github.com/decker502/minigames/pkg/game"
	"github.com/decker502/minigames/pkg/match3"
	"github.com/decker502/minigames/pkg/minigame"
	"github.com/decker502/minigames/pkg/services"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// gemPalette 宝石种类到颜色的映射（最多 7 种）
var gemPalette = []color.RGBA{
	{R: 220, G: 80, B: 80, A: 255},
	{R: 80, G: 180, B: 90, A: 255},
	{R: 90, G: 120, B: 230, A: 255},
	{R: 235, G: 200, B: 70, A: 255},
	{R: 180, G: 90, B: 210, A: 255},
	{R: 80, G: 200, B: 200, A: 255},
	{R: 230, G: 140, B: 70, A: 255},
}

// Match3Scene 三消小游戏的宿主场景
//
// 键盘光标操作：方向键移动光标，回车选中/交换。交换请求经由
// 游戏的状态机校验，非法交换不消耗步数。
type Match3Scene struct {
	locator *services.Locator
	base    *minigame.Base
	mg      *match3.Game

	loadStep int
	loadErr  error
	ended    bool

	cursor   match3.Point
	selected *match3.Point
	cmdSub   *events.Subscription
}

// NewMatch3Scene 创建三消场景（初始化推迟到加载阶段）
func NewMatch3Scene(locator *services.Locator) *Match3Scene {
	return &Match3Scene{locator: locator}
}

// LoadStep 实现 game.Loader
func (s *Match3Scene) LoadStep() (float64, bool) {
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
func (s *Match3Scene) initialize() {
	cfg, ok := services.Resolve[*config.Match3Config](s.locator)
	if !ok {
		cfg = config.DefaultMatch3Config()
	}
	s.mg = match3.NewGame(cfg)
	s.base = minigame.NewBase(s.mg, s.locator)
	if err := s.base.InitializeAsync(); err != nil {
		s.loadErr = err
		log.Printf("[Match3Scene] Initialization failed: %v", err)
		return
	}
	// 三消里下箭头移动光标，不是滑铲
	s.base.Input().Bind(ebiten.KeyArrowDown, minigame.CommandMoveDown)
	// 三消游戏本体不消费输入命令，光标与选择全部在宿主场景处理
	bus, _ := services.Resolve[*events.Bus](s.locator)
	s.cmdSub = events.Subscribe(bus, func(e minigame.CommandEvent) {
		s.handleCommand(e.Command)
	})
}

// handleCommand 消费输入命令：移动光标、选中与交换、暂停
func (s *Match3Scene) handleCommand(cmd minigame.Command) {
	switch cmd {
	case minigame.CommandPause:
		s.togglePause()
		return
	}
	if s.base.Lifecycle() != minigame.Playing || s.mg.State() != match3.StateReady {
		return
	}
	switch cmd {
	case minigame.CommandMoveLeft:
		s.moveCursor(-1, 0)
	case minigame.CommandMoveRight:
		s.moveCursor(1, 0)
	case minigame.CommandMoveUp:
		s.moveCursor(0, -1)
	case minigame.CommandMoveDown:
		s.moveCursor(0, 1)
	case minigame.CommandConfirm:
		s.confirm()
	}
}

// moveCursor 移动光标（棋盘边界处夹紧）
func (s *Match3Scene) moveCursor(dc, dr int) {
	next := match3.Point{Col: s.cursor.Col + dc, Row: s.cursor.Row + dr}
	if s.mg.Board().InBounds(next) {
		s.cursor = next
	}
}

// confirm 第一次回车选中光标格，第二次请求交换
// 交换目标不相邻时改为重新选中，不视为失误
func (s *Match3Scene) confirm() {
	if s.selected == nil {
		p := s.cursor
		s.selected = &p
		return
	}
	from := *s.selected
	s.selected = nil
	if from == s.cursor {
		return // 再次确认同一格 = 取消选择
	}
	if !match3.Adjacent(from, s.cursor) {
		p := s.cursor
		s.selected = &p
		return
	}
	s.mg.TrySwap(from, s.cursor)
}

// togglePause 在 Playing/Paused 之间切换
func (s *Match3Scene) togglePause() {
	switch s.base.Lifecycle() {
	case minigame.Playing:
		s.base.Pause()
	case minigame.Paused:
		s.base.Resume()
	}
}

// Update 实现 game.Scene
func (s *Match3Scene) Update(deltaTime float64) {
	if s.loadErr != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.returnToMenu()
		}
		return
	}

	switch s.base.Lifecycle() {
	case minigame.Ready:
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := s.base.Start(); err != nil {
				log.Printf("[Match3Scene] Start failed: %v", err)
			}
		}
	case minigame.Playing:
		if !s.ended && s.mg.State() == match3.StateGameOver {
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
func (s *Match3Scene) returnToMenu() {
	if s.base != nil {
		s.base.Cleanup()
	}
	if s.cmdSub != nil {
		s.cmdSub.Dispose()
		s.cmdSub = nil
	}
	tm, ok := services.Resolve[*game.TransitionManager](s.locator)
	if !ok {
		log.Printf("[Match3Scene] Transition manager is not registered")
		return
	}
	cfg, ok := services.Resolve[*config.TransitionConfig](s.locator)
	if !ok {
		cfg = config.DefaultTransitionConfig()
	}
	if err := tm.TransitionAsync(transitionData(cfg, "menu")); err != nil {
		log.Printf("[Match3Scene] Failed to return to menu: %v", err)
	}
}

// Draw 实现 game.Scene
func (s *Match3Scene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 26, G: 24, B: 36, A: 255})
	if s.loadErr != nil {
		ebitenutil.DebugPrintAt(screen, "Failed to load match-3, press ENTER to return", 240, 280)
		return
	}
	if s.mg == nil || s.base == nil || s.mg.Board() == nil {
		return
	}

	board := s.mg.Board()
	const cell = 52.0
	left := float64(config.GameWindowWidth)/2 - cell*float64(board.Cols())/2
	top := 90.0

	for col := 0; col < board.Cols(); col++ {
		for row := 0; row < board.Rows(); row++ {
			p := match3.Point{Col: col, Row: row}
			x := left + float64(col)*cell
			y := top + float64(row)*cell
			drawRect(screen, x, y, cell-3, cell-3, color.RGBA{R: 42, G: 40, B: 56, A: 255})
			gem := board.At(p)
			if gem != match3.GemNone {
				clr := gemPalette[(int(gem)-1)%len(gemPalette)]
				drawRect(screen, x+5, y+5, cell-13, cell-13, clr)
			}
			if s.selected != nil && *s.selected == p {
				drawRect(screen, x, y, cell-3, 3, color.RGBA{R: 255, G: 255, B: 255, A: 255})
				drawRect(screen, x, y+cell-6, cell-3, 3, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
			if s.cursor == p {
				drawRect(screen, x, y, 3, cell-3, color.RGBA{R: 255, G: 255, B: 255, A: 255})
				drawRect(screen, x+cell-6, y, 3, cell-3, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("moves %d  score %.0f  high %.0f",
			s.mg.MovesLeft(), s.base.Score().Score(), s.base.Score().HighScore()), 16, 16)

	switch s.base.Lifecycle() {
	case minigame.Ready:
		ebitenutil.DebugPrintAt(screen, "SPACE start / arrows move cursor / ENTER select & swap / P pause", 150, 560)
	case minigame.Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED - press P to resume", 320, 540)
	case minigame.Ended:
		ebitenutil.DebugPrintAt(screen, "OUT OF MOVES - press ENTER for menu", 290, 540)
	}
}
