package game

import (
	"image/color"

	"github.com/decker502/minigames/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ebiten 版的 Overlay / ProgressView 实现
// 核心过渡逻辑只依赖接口，渲染细节集中在这一个文件里

// EbitenOverlay 全屏淡入淡出遮罩
type EbitenOverlay struct {
	clr   OverlayColor
	alpha float64
	pixel *ebiten.Image // 1x1 白色像素，延迟创建（避免测试环境初始化图形上下文）
}

// NewEbitenOverlay 创建遮罩，默认黑色全透明
func NewEbitenOverlay() *EbitenOverlay {
	return &EbitenOverlay{clr: OverlayColor{A: 255}}
}

// SetAlpha 实现 Overlay 接口
func (o *EbitenOverlay) SetAlpha(alpha float64) {
	o.alpha = alpha
}

// SetColor 实现 Overlay 接口
func (o *EbitenOverlay) SetColor(c OverlayColor) {
	o.clr = c
}

// Draw 将遮罩绘制到屏幕最上层
func (o *EbitenOverlay) Draw(screen *ebiten.Image) {
	if o.alpha <= 0 {
		return
	}
	if o.pixel == nil {
		o.pixel = ebiten.NewImage(1, 1)
		o.pixel.Fill(color.White)
	}
	bounds := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bounds.Dx()), float64(bounds.Dy()))
	op.ColorScale.ScaleWithColor(color.RGBA{R: o.clr.R, G: o.clr.G, B: o.clr.B, A: o.clr.A})
	op.ColorScale.ScaleAlpha(float32(o.alpha))
	screen.DrawImage(o.pixel, op)
}

// EbitenProgressView 加载界面的进度条与文字
type EbitenProgressView struct {
	progress float64
	text     string
	visible  bool
	pixel    *ebiten.Image
}

// NewEbitenProgressView 创建进度条视图
func NewEbitenProgressView() *EbitenProgressView {
	return &EbitenProgressView{}
}

// SetProgress 实现 ProgressView 接口
func (v *EbitenProgressView) SetProgress(p float64) {
	v.progress = p
}

// SetText 实现 ProgressView 接口
func (v *EbitenProgressView) SetText(text string) {
	v.text = text
}

// SetVisible 实现 ProgressView 接口
func (v *EbitenProgressView) SetVisible(visible bool) {
	v.visible = visible
}

// Draw 绘制进度条底槽、填充与文字
func (v *EbitenProgressView) Draw(screen *ebiten.Image) {
	if !v.visible {
		return
	}
	if v.pixel == nil {
		v.pixel = ebiten.NewImage(1, 1)
		v.pixel.Fill(color.White)
	}

	// 底槽
	v.drawRect(screen, config.LoadingBarX, config.LoadingBarY,
		config.LoadingBarWidth, config.LoadingBarHeight,
		color.RGBA{R: 60, G: 48, B: 36, A: 255})

	// 填充（按显示进度裁剪宽度）
	fillWidth := config.LoadingBarWidth * v.progress
	if fillWidth > 0 {
		v.drawRect(screen, config.LoadingBarX+2, config.LoadingBarY+2,
			fillWidth-4, config.LoadingBarHeight-4,
			color.RGBA{R: 96, G: 180, B: 60, A: 255})
	}

	ebitenutil.DebugPrintAt(screen, v.text,
		int(config.LoadingBarX), int(config.LoadingBarY)-18)
}

func (v *EbitenProgressView) drawRect(screen *ebiten.Image, x, y, w, h float64, clr color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(v.pixel, op)
}
