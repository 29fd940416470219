package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., menu, match-3 board, runner track).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Loader 可选接口：场景声明自己需要分帧加载
//
// LoadStep 每个 tick 被场景管理器调用一次，返回当前进度（0..1）和
// 是否完成。这是协作式的"异步场景加载"原语：加载在帧间推进，
// 只挂起加载序列本身，不阻塞引擎主循环。
type Loader interface {
	LoadStep() (progress float64, done bool)
}

// SceneFactory 场景工厂函数类型
// 按名称注册，加载时创建新场景实例，避免包间循环依赖
type SceneFactory func() Scene

// SceneLoadingStarted 场景开始加载事件
type SceneLoadingStarted struct {
	Scene string
}

// SceneLoadingProgress 场景加载进度事件（0..1）
// 加载界面等监听者据此独立播放进度动画，与轮询节奏解耦
type SceneLoadingProgress struct {
	Scene    string
	Progress float64
}

// SceneLoadingCompleted 场景加载完成事件
type SceneLoadingCompleted struct {
	Scene string
}
