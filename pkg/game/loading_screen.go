package game

import (
	"log"
	"math"

	"github.com/decker502/minigames/pkg/config"
	"github.com/decker502/minigames/pkg/events"
)

// ProgressView 加载界面的渲染目标
// 核心只需要"设置进度 / 设置文字 / 显示隐藏"三个原语
type ProgressView interface {
	SetProgress(p float64)
	SetText(text string)
	SetVisible(visible bool)
}

// LoadingScreen 加载界面组件
//
// 订阅 SceneLoadingProgress 事件并把显示进度向最新上报值平滑插值，
// 而不是直接跳变——外部加载原语的进度粒度很粗（甚至一步到 1.0），
// 平滑让进度条动画与轮询节奏解耦。
type LoadingScreen struct {
	view ProgressView
	sub  *events.Subscription

	target    float64 // 最新上报的真实进度
	displayed float64 // 当前显示的平滑进度
	visible   bool
	warned    bool
}

// NewLoadingScreen 创建加载界面并订阅进度事件
// view 可为 nil（降级模式：记录错误并跳过视觉步骤）
func NewLoadingScreen(bus *events.Bus, view ProgressView) *LoadingScreen {
	ls := &LoadingScreen{view: view}
	ls.sub = events.Subscribe(bus, func(e SceneLoadingProgress) {
		ls.target = e.Progress
	})
	return ls
}

// Show 显示加载界面并重置进度
func (ls *LoadingScreen) Show(text string) {
	ls.visible = true
	ls.target = 0
	ls.displayed = 0
	if ls.view == nil {
		if !ls.warned {
			log.Printf("[LoadingScreen] No progress view configured, skipping loading visuals")
			ls.warned = true
		}
		return
	}
	ls.view.SetText(text)
	ls.view.SetProgress(0)
	ls.view.SetVisible(true)
}

// Hide 隐藏加载界面
func (ls *LoadingScreen) Hide() {
	ls.visible = false
	if ls.view != nil {
		ls.view.SetVisible(false)
	}
}

// IsVisible 返回加载界面是否可见
func (ls *LoadingScreen) IsVisible() bool {
	return ls.visible
}

// DisplayedProgress 返回当前显示的平滑进度（测试用）
func (ls *LoadingScreen) DisplayedProgress() float64 {
	return ls.displayed
}

// Update 每帧推进显示进度向真实进度逼近
func (ls *LoadingScreen) Update(deltaTime float64) {
	if !ls.visible {
		return
	}
	step := math.Min(1.0, config.LoadingSmoothSpeed*deltaTime)
	ls.displayed += (ls.target - ls.displayed) * step
	// 足够接近时吸附，保证进度条最终填满
	if ls.target >= 1.0 && ls.target-ls.displayed < 0.005 {
		ls.displayed = 1.0
	}
	if ls.view != nil {
		ls.view.SetProgress(ls.displayed)
	}
}

// Dispose 释放进度事件订阅
func (ls *LoadingScreen) Dispose() {
	if ls.sub != nil {
		ls.sub.Dispose()
		ls.sub = nil
	}
}
