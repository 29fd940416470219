package game

import (
	"log"

	"github.com/decker502/minigames/pkg/utils"
)

// Overlay 淡入淡出遮罩的渲染目标
//
// 过渡核心只需要"设置透明度/颜色"两个原语，具体渲染实现
//（ebiten 版见 overlay_ebiten.go）在核心之外。
type Overlay interface {
	SetAlpha(alpha float64)
	SetColor(c OverlayColor)
}

// OverlayColor 遮罩颜色（避免核心依赖具体颜色模型之外的东西）
type OverlayColor struct {
	R, G, B, A uint8
}

// FadeTransition 淡入淡出过渡策略
//
// 每帧按缓动曲线采样一次遮罩透明度：淡出 0 -> 1，淡入 1 -> 0。
// 曲线单调时采样序列同样单调。遮罩未配置时记录错误并跳过视觉步骤，
// 缺失的视觉资源只导致优雅降级，不阻塞场景加载本身。
type FadeTransition struct {
	overlay  Overlay
	curve    utils.Curve
	duration float64
	elapsed  float64
	fadingIn bool
	running  bool
	warned   bool
}

// NewFadeTransition 创建淡入淡出过渡
// overlay 可为 nil（降级模式：视觉步骤被跳过，序列立即完成）
func NewFadeTransition(overlay Overlay) *FadeTransition {
	return &FadeTransition{
		overlay:  overlay,
		curve:    utils.EaseLinear,
		duration: 0.5,
	}
}

// Type 实现 Transition 接口
func (f *FadeTransition) Type() TransitionType {
	return TransitionFade
}

// Duration 返回单侧阶段时长（秒）
func (f *FadeTransition) Duration() float64 {
	return f.duration
}

// IsRunning 返回是否有阶段正在推进
func (f *FadeTransition) IsRunning() bool {
	return f.running
}

// Initialize 应用过渡参数
func (f *FadeTransition) Initialize(data SceneTransitionData) {
	if data.Duration > 0 {
		f.duration = data.Duration
	}
	f.curve = utils.CurveForName(data.CurveName)
	if f.overlay != nil {
		f.overlay.SetColor(OverlayColor{
			R: data.FadeColor.R,
			G: data.FadeColor.G,
			B: data.FadeColor.B,
			A: data.FadeColor.A,
		})
	}
	f.elapsed = 0
	f.running = false
	f.warned = false
}

// BeginFadeOut 启动淡出阶段
func (f *FadeTransition) BeginFadeOut() {
	f.begin(false)
}

// BeginFadeIn 启动淡入阶段
func (f *FadeTransition) BeginFadeIn() {
	f.begin(true)
}

func (f *FadeTransition) begin(fadingIn bool) {
	f.fadingIn = fadingIn
	f.elapsed = 0
	f.running = true
	if f.overlay == nil && !f.warned {
		log.Printf("[FadeTransition] No overlay configured, skipping fade visuals")
		f.warned = true
	}
}

// Step 推进当前阶段一帧
// 返回 true 表示阶段完成。遮罩缺失时立即完成（降级）。
func (f *FadeTransition) Step(deltaTime float64) bool {
	if !f.running {
		return true
	}
	if f.overlay == nil {
		f.running = false
		return true
	}

	f.elapsed += deltaTime
	t := 1.0
	if f.duration > 0 {
		t = utils.Clamp01(f.elapsed / f.duration)
	}
	alpha := f.curve(t)
	if f.fadingIn {
		alpha = 1 - alpha
	}
	f.overlay.SetAlpha(alpha)

	if t >= 1.0 {
		f.running = false
		return true
	}
	return false
}

// Reset 恢复初始状态，遮罩透明度归零
func (f *FadeTransition) Reset() {
	f.elapsed = 0
	f.running = false
	if f.overlay != nil {
		f.overlay.SetAlpha(0)
	}
}

// CutTransition 瞬切策略：没有视觉阶段，Begin 后下一次 Step 即完成
// 用于 -scene 直入等不需要淡入淡出的切换，同时保持事件序列完整
type CutTransition struct {
	running bool
}

// NewCutTransition 创建瞬切过渡
func NewCutTransition() *CutTransition {
	return &CutTransition{}
}

// Type 实现 Transition 接口
func (c *CutTransition) Type() TransitionType { return TransitionCut }

// Duration 瞬切没有时长
func (c *CutTransition) Duration() float64 { return 0 }

// IsRunning 返回是否有阶段待完成
func (c *CutTransition) IsRunning() bool { return c.running }

// Initialize 瞬切无参数
func (c *CutTransition) Initialize(SceneTransitionData) {}

// BeginFadeOut 启动（空）淡出阶段
func (c *CutTransition) BeginFadeOut() { c.running = true }

// BeginFadeIn 启动（空）淡入阶段
func (c *CutTransition) BeginFadeIn() { c.running = true }

// Step 立即完成当前阶段
func (c *CutTransition) Step(float64) bool {
	c.running = false
	return true
}

// Reset 恢复初始状态
func (c *CutTransition) Reset() { c.running = false }
