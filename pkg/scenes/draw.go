// Package scenes 提供具体场景：主菜单与两个小游戏的宿主场景
//
// 场景负责把小游戏接到引擎宿主上：转发每帧更新、读取玩法状态做
// 原始图形绘制（本仓库刻意不做 UI 组件库，只画色块和调试文字）。
package scenes

import (
	"image/color"

	"github.com/decker502/minigames/pkg/config"
	"github.com/decker502/minigames/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// pixel 1x1 白色像素，所有色块绘制的基础
// 延迟创建，避免在无图形上下文的测试环境里初始化
var pixel *ebiten.Image

// drawRect 绘制实心矩形
func drawRect(screen *ebiten.Image, x, y, w, h float64, clr color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(pixel, op)
}

// transitionData 基于全局过渡配置构造一次过渡请求
func transitionData(cfg *config.TransitionConfig, target string) game.SceneTransitionData {
	return game.SceneTransitionData{
		Type:              game.TransitionFade,
		TargetScene:       target,
		Duration:          cfg.DurationSeconds,
		CurveName:         cfg.CurveName,
		FadeColor:         cfg.FadeColor.RGBA(),
		ShowLoadingScreen: cfg.ShowLoadingScreen,
		LoadingText:       cfg.LoadingText,
	}
}
