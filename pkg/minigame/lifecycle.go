// Package minigame 提供小游戏的生命周期编排与通用子系统
//
// 每个具体小游戏（三消、跑酷）实现 Game 钩子接口，由 Base 负责：
// 解析服务 -> 构建得分/输入管理器 -> 调用初始化钩子 -> 驱动每帧更新。
// 小游戏自身的玩法状态机与这里的生命周期状态机相互独立。
package minigame

import "github.com/decker502/minigames/pkg/fsm"

// LifecycleState 小游戏生命周期状态
type LifecycleState int

const (
	// Uninitialized 尚未初始化
	Uninitialized LifecycleState = iota
	// Initializing 正在解析服务并构建子系统
	Initializing
	// Ready 初始化完成，等待开始
	Ready
	// Playing 进行中
	Playing
	// Paused 已暂停
	Paused
	// Ended 已结束（得分结算完成）
	Ended
	// CleaningUp 正在清理，终止状态
	CleaningUp
)

// String 返回生命周期状态的可读名称
func (s LifecycleState) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initializing:
		return "Initializing"
	case Ready:
		return "Ready"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Ended:
		return "Ended"
	case CleaningUp:
		return "CleaningUp"
	default:
		return "Unknown"
	}
}

// lifecycleRules 生命周期转换规则表
//
// Uninitialized -> Initializing -> Ready -> Playing <-> Paused -> Ended -> CleaningUp
// Initializing 失败回退到 Uninitialized。CleaningUp 是终止状态。
func lifecycleRules() fsm.Rules[LifecycleState] {
	return fsm.Rules[LifecycleState]{
		Uninitialized: {Initializing},
		Initializing:  {Ready, Uninitialized},
		Ready:         {Playing, CleaningUp},
		Playing:       {Paused, Ended},
		Paused:        {Playing, Ended},
		Ended:         {CleaningUp},
		CleaningUp:    {},
	}
}
