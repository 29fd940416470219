package minigame

import (
	"github.com/decker502/minigames/pkg/events"
	"github.com/decker502/minigames/pkg/services"
)

// Context 传递给具体小游戏的依赖上下文
//
// 依赖通过上下文显式传入而不是让小游戏自己做全局查找，
// Service Locator 仅保留给宿主强制晚绑定构造的位置（场景工厂）。
type Context struct {
	Bus     *events.Bus
	Locator *services.Locator
	Score   *ScoreManager
	Input   *InputManager
}

// Game 具体小游戏需要实现的模板钩子
//
// 钩子由 Base 在生命周期转换的正确时机调用，具体游戏不需要
// 自己校验生命周期状态。
type Game interface {
	// ID 返回小游戏标识（用于日志与高分持久化的键）
	ID() string
	// OnInitialize 构建玩法状态机、世界与事件订阅
	// 返回错误会中止初始化并向上传播（初始化失败必须响亮）
	OnInitialize(ctx *Context) error
	// OnStart 开始游玩（Ready -> Playing 之前调用，出错则不开始）
	OnStart() error
	// OnPause 暂停钩子
	OnPause()
	// OnResume 恢复钩子
	OnResume()
	// OnUpdate 每帧更新，仅在 Playing 状态下被调用
	// 返回的错误会被记录但不会中断帧循环
	OnUpdate(deltaTime float64) error
	// OnEnd 结束钩子（最终得分已可读取）
	OnEnd()
	// OnCleanup 清理钩子：释放事件订阅等资源
	OnCleanup()
}
