// Package fsm 提供通用的有限状态机基类
//
// 每个小游戏用它管理自己的玩法状态（Ready/Running/Jumping/...），
// 小游戏生命周期（Uninitialized -> ... -> CleaningUp）也复用同一实现。
package fsm

import (
	"log"

	"github.com/decker502/minigames/pkg/events"
)

// Rules 状态转换规则表：当前状态 -> 允许的后继状态集合
//
// 规则表在构造时填充一次，之后不可变。终止状态（如 GameOver）
// 就是后继集合为空（或仅含重开状态）的普通状态，状态机本身
// 没有特殊的终止逻辑。
type Rules[S comparable] map[S][]S

// StateChanged 状态切换事件，携带旧状态和新状态
// 在 TransitionTo 返回前同步投递给所有订阅者
type StateChanged[S comparable] struct {
	Machine string // 状态机名称，用于区分同类型的多个实例
	Old     S
	New     S
}

// Guard 上下文校验钩子
// 规则表之外的附加校验（例如"只有落地时才能再次起跳"），返回 false 拒绝转换
type Guard[S comparable] func(from, to S) bool

// Machine 带转换规则表的有限状态机
//
// 非法转换的处理策略是"拒绝并继续"：记录警告、状态不变、不抛错。
// 玩法代码依赖这一策略做投机转换（比如直接尝试跳跃而不预先判断可行性），
// 不要把拒绝改成 panic 或 error。
type Machine[S comparable] struct {
	name    string
	current S
	rules   map[S]map[S]struct{}
	guard   Guard[S]
	bus     *events.Bus
}

// NewMachine 创建状态机
//
// 参数：
//   - name: 状态机名称（日志与事件中用于区分实例）
//   - initial: 初始状态
//   - rules: 转换规则表，构造后不可再修改
//   - bus: 事件总线，可为 nil（此时不发布 StateChanged 事件）
func NewMachine[S comparable](name string, initial S, rules Rules[S], bus *events.Bus) *Machine[S] {
	compiled := make(map[S]map[S]struct{}, len(rules))
	for from, tos := range rules {
		set := make(map[S]struct{}, len(tos))
		for _, to := range tos {
			set[to] = struct{}{}
		}
		compiled[from] = set
	}
	return &Machine[S]{
		name:    name,
		current: initial,
		rules:   compiled,
		bus:     bus,
	}
}

// SetGuard 设置上下文校验钩子（在规则表校验通过后调用）
func (m *Machine[S]) SetGuard(guard Guard[S]) {
	m.guard = guard
}

// SetBus 绑定事件总线
// 供构造时总线尚不可用的调用方（如小游戏生命周期）在初始化阶段补挂
func (m *Machine[S]) SetBus(bus *events.Bus) {
	m.bus = bus
}

// Current 返回当前状态
func (m *Machine[S]) Current() S {
	return m.current
}

// CanTransitionTo 检查从当前状态到 target 是否被规则表允许
func (m *Machine[S]) CanTransitionTo(target S) bool {
	set, ok := m.rules[m.current]
	if !ok {
		return false
	}
	_, allowed := set[target]
	return allowed
}

// TransitionTo 尝试切换到目标状态
//
// 成功：更新当前状态，发布一条 StateChanged(old, new) 事件，返回 true。
// 失败（规则表不允许或 guard 拒绝）：记录警告，状态不变，零事件，返回 false。
func (m *Machine[S]) TransitionTo(target S) bool {
	if !m.CanTransitionTo(target) {
		log.Printf("[StateMachine:%s] Rejected transition %v -> %v (not in successor set)",
			m.name, m.current, target)
		return false
	}
	if m.guard != nil && !m.guard(m.current, target) {
		log.Printf("[StateMachine:%s] Rejected transition %v -> %v (guard declined)",
			m.name, m.current, target)
		return false
	}
	old := m.current
	m.current = target
	if m.bus != nil {
		events.Publish(m.bus, StateChanged[S]{Machine: m.name, Old: old, New: target})
	}
	return true
}
