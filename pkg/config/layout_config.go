package config

// 窗口与布局常量

const (
	// GameWindowWidth 逻辑屏幕宽度（与实际窗口大小无关，引擎自动缩放）
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// LoadingBarX 加载进度条 X 坐标
	LoadingBarX = 250.0

	// LoadingBarY 加载进度条 Y 坐标
	LoadingBarY = 520.0

	// LoadingBarWidth 加载进度条宽度
	LoadingBarWidth = 300.0

	// LoadingBarHeight 加载进度条高度
	LoadingBarHeight = 24.0

	// LoadingSmoothSpeed 进度条显示值逼近真实进度的速率（每秒）
	// 显示进度向最新上报值平滑插值而不是直接跳变，避免粗粒度进度造成的视觉跳动
	LoadingSmoothSpeed = 6.0
)
