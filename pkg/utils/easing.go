// Package utils 提供通用工具函数
package utils

import (
	"log"
	"math"
)

// Curve 缓动曲线函数类型
//
// 曲线接受进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 过渡动画（淡入淡出、进度条平滑）通过曲线控制速度变化，使动画更自然。
//
// 参考：https://easings.net/
type Curve func(t float64) float64

// EaseLinear 线性缓动（匀速，无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 特点：开始慢，结束较快
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInCubic 三次方缓入
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（推荐用于淡出遮罩）
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 特点：开始慢，中间快，结束慢
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutExpo 指数缓出
// 特点：开始非常快，结束非常慢
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// 按名称注册的曲线表，供 YAML 配置引用
var curvesByName = map[string]Curve{
	"linear":     EaseLinear,
	"inQuad":     EaseInQuad,
	"outQuad":    EaseOutQuad,
	"inCubic":    EaseInCubic,
	"outCubic":   EaseOutCubic,
	"inOutCubic": EaseInOutCubic,
	"outExpo":    EaseOutExpo,
}

// CurveForName 根据配置中的名称查找缓动曲线
//
// 未知名称不是致命错误：记录警告并退回线性曲线，保证过渡仍然可以运行。
func CurveForName(name string) Curve {
	if c, ok := curvesByName[name]; ok {
		return c
	}
	log.Printf("[Easing] Unknown curve name %q, falling back to linear", name)
	return EaseLinear
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1] 范围内
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
