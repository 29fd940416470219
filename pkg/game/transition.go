package game

import "image/color"

// TransitionType 过渡视觉策略类型
// 过渡策略按类型注册到 TransitionManager，新增视觉策略无需改动管理器
type TransitionType int

const (
	// TransitionFade 淡入淡出遮罩过渡
	TransitionFade TransitionType = iota
	// TransitionCut 瞬切（无视觉过渡，仍执行完整的加载与事件序列）
	TransitionCut
)

// String 返回过渡类型的可读名称
func (t TransitionType) String() string {
	switch t {
	case TransitionFade:
		return "Fade"
	case TransitionCut:
		return "Cut"
	default:
		return "Unknown"
	}
}

// SceneTransitionData 一次过渡请求的参数
// 每次请求新建一份，过渡完成后丢弃
type SceneTransitionData struct {
	Type              TransitionType
	TargetScene       string
	Duration          float64 // 单侧淡入/淡出时长（秒）
	CurveName         string  // 缓动曲线名称
	FadeColor         color.RGBA
	ShowLoadingScreen bool
	LoadingText       string
}

// Transition 过渡视觉策略接口
//
// 策略是按 tick 推进的协作式序列：BeginFadeOut/BeginFadeIn 启动阶段，
// Step 每帧推进一次并在阶段完成时返回 true。策略绝不阻塞调用线程。
type Transition interface {
	// Type 返回策略注册键
	Type() TransitionType
	// Duration 返回当前参数下单侧阶段的时长（秒）
	Duration() float64
	// IsRunning 返回是否有阶段正在推进
	IsRunning() bool
	// Initialize 应用一次过渡请求的参数
	Initialize(data SceneTransitionData)
	// BeginFadeOut 启动淡出阶段（遮罩透明度 0 -> 1）
	BeginFadeOut()
	// BeginFadeIn 启动淡入阶段（遮罩透明度 1 -> 0）
	BeginFadeIn()
	// Step 推进当前阶段，返回该阶段是否完成
	Step(deltaTime float64) bool
	// Reset 过渡结束后恢复初始状态
	Reset()
}

// 过渡生命周期事件，按固定顺序发布：
// TransitionStarted, FadeOutStarted, FadeOutCompleted, (加载进度...),
// FadeInStarted, FadeInCompleted, TransitionCompleted

// TransitionStarted 过渡开始
type TransitionStarted struct {
	Data SceneTransitionData
}

// FadeOutStarted 淡出开始
type FadeOutStarted struct{}

// FadeOutCompleted 淡出完成
type FadeOutCompleted struct{}

// FadeInStarted 淡入开始
type FadeInStarted struct{}

// FadeInCompleted 淡入完成
type FadeInCompleted struct{}

// TransitionCompleted 过渡完成（IsTransitioning 随之恢复 false）
type TransitionCompleted struct {
	Data SceneTransitionData
}
