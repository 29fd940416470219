// Package services 提供按类型解析的服务注册表（Service Locator）
//
// 引擎宿主在应用控制之外实例化顶层对象（场景由工厂函数晚绑定创建），
// 构造函数注入在这些位置不可行，因此保留 Service Locator 模式。
// 注册表通过泛型包装函数提供完全类型化的入口，不存在字符串键。
//
// 生命周期分两级：
//   - Global：进程生命周期内有效
//   - Scene：绑定当前场景，场景卸载时整体清除
package services

import (
	"fmt"
	"reflect"
)

// Locator 按类型键解析实例的注册表
//
// 解析顺序：先查场景级，再回退到全局级。
// 同一类型键同一生命周期层最多一个实例，重复注册覆盖旧值。
// 仅限单线程（引擎主循环）访问。
type Locator struct {
	global map[reflect.Type]any
	scene  map[reflect.Type]any
}

// NewLocator 创建一个空的服务注册表
func NewLocator() *Locator {
	return &Locator{
		global: make(map[reflect.Type]any),
		scene:  make(map[reflect.Type]any),
	}
}

// keyOf 返回类型 T 的注册键（接口类型同样适用）
func keyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterGlobal 注册全局生命周期的服务实例
// 同类型重复注册会覆盖已有实例
func RegisterGlobal[T any](l *Locator, instance T) {
	l.global[keyOf[T]()] = instance
}

// RegisterScene 注册场景生命周期的服务实例
// 场景卸载时由 ClearSceneServices 统一清除
func RegisterScene[T any](l *Locator, instance T) {
	l.scene[keyOf[T]()] = instance
}

// Resolve 按类型解析服务实例
//
// 先查场景级，未命中再查全局级。未注册不是错误（很多服务是可选的，
// 例如测试场景可能没有注册设置管理器），返回零值和 false，
// 由调用方自行判断。
func Resolve[T any](l *Locator) (T, bool) {
	key := keyOf[T]()
	if v, ok := l.scene[key]; ok {
		return v.(T), true
	}
	if v, ok := l.global[key]; ok {
		return v.(T), true
	}
	var zero T
	return zero, false
}

// MustResolve 解析硬依赖服务，未注册时 panic
//
// 仅用于缺失即属配置错误的服务（如事件总线），普通服务用 Resolve。
func MustResolve[T any](l *Locator) T {
	v, ok := Resolve[T](l)
	if !ok {
		panic(fmt.Sprintf("services: required service %v is not registered", keyOf[T]()))
	}
	return v
}

// ClearSceneServices 清除所有场景级注册，不影响全局级
//
// 必须在每次场景卸载时调用，保证旧场景的服务引用不会泄漏到新场景。
func (l *Locator) ClearSceneServices() {
	l.scene = make(map[reflect.Type]any)
}

// SceneServiceCount 返回当前场景级注册数量，主要用于测试
func (l *Locator) SceneServiceCount() int {
	return len(l.scene)
}

// 全局默认注册表（架构规范允许的唯一全局变量，测试请使用 NewLocator）
var defaultLocator = NewLocator()

// Default 返回全局默认注册表
func Default() *Locator {
	return defaultLocator
}
