package minigame

import "log"

// Pool 固定容量的可复用对象池
//
// 目标是消除持续生成期间的逐帧分配抖动：Acquire 优先复用空闲实例，
// Release 把实例重置回默认配置后归还。"释放时重置"是池子的显式契约，
// 不依赖使用方自觉——配置必须是幂等的（同一实例可反复 配置->使用->释放）。
type Pool[T any] struct {
	newFn     func() T
	resetFn   func(T)
	free      []T
	capacity  int
	allocated int // 历史累计分配数（诊断用）
	reused    int // 历史累计复用数（诊断用）
}

// NewPool 创建对象池
//
// 参数：
//   - capacity: 空闲列表容量，超出容量的 Release 直接丢弃实例
//   - newFn: 实例构造函数，必须非 nil
//   - resetFn: 释放时的重置函数，可为 nil（实例无需重置）
func NewPool[T any](capacity int, newFn func() T, resetFn func(T)) *Pool[T] {
	if newFn == nil {
		panic("minigame: NewPool called with nil constructor")
	}
	if capacity <= 0 {
		panic("minigame: NewPool called with non-positive capacity")
	}
	return &Pool[T]{
		newFn:    newFn,
		resetFn:  resetFn,
		free:     make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Prewarm 预先分配 n 个空闲实例（不超过容量）
func (p *Pool[T]) Prewarm(n int) {
	for len(p.free) < n && len(p.free) < p.capacity {
		p.free = append(p.free, p.newFn())
	}
}

// Acquire 取出一个实例：优先复用空闲实例，否则新分配
// 超出容量的分配是允许的（高峰期不拒绝服务），只是释放时不再入池
func (p *Pool[T]) Acquire() T {
	if n := len(p.free); n > 0 {
		item := p.free[n-1]
		p.free = p.free[:n-1]
		p.reused++
		return item
	}
	p.allocated++
	if p.allocated == p.capacity+1 {
		log.Printf("[Pool] Allocations exceeded capacity %d, consider a larger pool", p.capacity)
	}
	return p.newFn()
}

// Release 重置实例并归还空闲列表
// 空闲列表已满时实例被丢弃（交给 GC）
func (p *Pool[T]) Release(item T) {
	if p.resetFn != nil {
		p.resetFn(item)
	}
	if len(p.free) < p.capacity {
		p.free = append(p.free, item)
	}
}

// FreeCount 返回当前空闲实例数
func (p *Pool[T]) FreeCount() int {
	return len(p.free)
}

// Capacity 返回空闲列表容量
func (p *Pool[T]) Capacity() int {
	return p.capacity
}
