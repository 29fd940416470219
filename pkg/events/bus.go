// Package events 提供进程内的类型化发布/订阅事件总线
//
// 事件总线是各子系统之间解耦通知的唯一通道：场景过渡、状态机切换、
// 输入命令、得分变化都通过它广播。总线假定单线程访问（引擎主循环），
// 不提供跨线程保证。
package events

import (
	"fmt"
	"reflect"
)

// Bus 类型化事件总线
//
// 投递语义：
//   - Publish 同步投递，按订阅注册顺序调用每个处理器
//   - 只匹配事件的具体类型，不做任何继承/接口匹配
//   - 发布过程中新增的订阅不会收到本次在途事件，只参与之后的发布
//     （通过 pending 缓冲实现，外层发布循环结束后统一合并）
//   - 处理器内部取消订阅不会破坏正在进行的迭代
type Bus struct {
	slots   map[reflect.Type][]*Subscription
	pending []*Subscription
	depth   int                    // 当前发布嵌套深度
	dirty   map[reflect.Type]bool // 投递期间被取消的订阅所在的类型，待压缩
}

// Subscription 一次订阅的句柄
//
// 订阅者持有句柄并负责在销毁时调用 Dispose()，否则总线会永久持有
// 对订阅者的引用。Dispose 是幂等的，重复调用为空操作。
type Subscription struct {
	bus    *Bus
	typ    reflect.Type
	invoke func(any)
	active bool
}

// NewBus 创建一个空的事件总线
func NewBus() *Bus {
	return &Bus{
		slots: make(map[reflect.Type][]*Subscription),
		dirty: make(map[reflect.Type]bool),
	}
}

// typeOf 返回事件类型 E 的反射类型标记（总线的分发键）
func typeOf[E any]() reflect.Type {
	return reflect.TypeOf((*E)(nil)).Elem()
}

// Subscribe 注册类型 E 的事件处理器，返回可释放的订阅句柄
//
// handler 为 nil 时立即 panic（前置条件违规，不容忍静默失败）。
// 若当前正处于发布过程中，订阅进入 pending 缓冲，本次在途事件不会投递给它。
func Subscribe[E any](b *Bus, handler func(E)) *Subscription {
	if handler == nil {
		panic("events: Subscribe called with nil handler")
	}
	sub := &Subscription{
		bus:    b,
		typ:    typeOf[E](),
		active: true,
		invoke: func(v any) {
			handler(v.(E))
		},
	}
	if b.depth > 0 {
		b.pending = append(b.pending, sub)
	} else {
		b.slots[sub.typ] = append(b.slots[sub.typ], sub)
	}
	return sub
}

// Publish 同步投递事件给所有当前已注册的 E 类型订阅者
//
// 没有订阅者时为静默空操作。event 为 nil（指针/接口等可空类型）时 panic。
// 投递在 Publish 返回前全部完成。
func Publish[E any](b *Bus, event E) {
	if isNilEvent(event) {
		panic(fmt.Sprintf("events: Publish called with nil %v event", typeOf[E]()))
	}
	list := b.slots[typeOf[E]()]
	if len(list) == 0 {
		return
	}
	b.depth++
	for _, sub := range list {
		if sub.active {
			sub.invoke(event)
		}
	}
	b.depth--
	if b.depth == 0 {
		b.flush()
	}
}

// Unsubscribe 取消订阅，等价于 sub.Dispose()
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub != nil {
		sub.Dispose()
	}
}

// Dispose 释放订阅，之后该处理器不再收到任何事件
//
// 幂等：第二次及以后的调用为空操作。在处理器内部调用是安全的，
// 实际的槽位压缩推迟到当前发布循环结束之后。
func (s *Subscription) Dispose() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	if s.bus.depth > 0 {
		s.bus.dirty[s.typ] = true
		return
	}
	s.bus.compact(s.typ)
}

// flush 合并 pending 订阅并压缩投递期间产生的失效槽位
// 只在最外层发布循环结束（depth 归零）时调用
func (b *Bus) flush() {
	for _, sub := range b.pending {
		if sub.active {
			b.slots[sub.typ] = append(b.slots[sub.typ], sub)
		}
	}
	b.pending = nil
	for typ := range b.dirty {
		b.compact(typ)
		delete(b.dirty, typ)
	}
}

// compact 移除指定类型槽位中已失效的订阅
func (b *Bus) compact(typ reflect.Type) {
	list := b.slots[typ]
	kept := list[:0]
	for _, sub := range list {
		if sub.active {
			kept = append(kept, sub)
		}
	}
	if len(kept) == 0 {
		delete(b.slots, typ)
		return
	}
	b.slots[typ] = kept
}

// SubscriberCount 返回类型 E 当前的活跃订阅数（含 pending），主要用于测试
func SubscriberCount[E any](b *Bus) int {
	typ := typeOf[E]()
	n := 0
	for _, sub := range b.slots[typ] {
		if sub.active {
			n++
		}
	}
	for _, sub := range b.pending {
		if sub.typ == typ && sub.active {
			n++
		}
	}
	return n
}

// isNilEvent 检查可空类型的事件值是否为 nil
func isNilEvent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
