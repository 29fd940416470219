package runner

import "log"

// Segment 一段平台，按 Z 轴（前进方向）排布
type Segment struct {
	StartZ float64
	Length float64
}

// End 返回分段的末端坐标
func (s Segment) End() float64 {
	return s.StartZ + s.Length
}

// WorldGenerator 平台分段生成器
//
// 保证玩家前方始终有覆盖到视距（horizon）的平台分段，
// 身后超出保留余量的分段被修剪。分段是小值对象，直接复用切片存储。
type WorldGenerator struct {
	segments      []Segment
	segmentLength float64
	horizon       float64
	nextZ         float64
}

// NewWorldGenerator 创建生成器并铺设初始分段
func NewWorldGenerator(segmentLength, horizon float64) *WorldGenerator {
	w := &WorldGenerator{
		segmentLength: segmentLength,
		horizon:       horizon,
	}
	w.Update(0)
	return w
}

// Update 按玩家位置推进生成与修剪
func (w *WorldGenerator) Update(playerZ float64) {
	for w.nextZ < playerZ+w.horizon {
		w.segments = append(w.segments, Segment{StartZ: w.nextZ, Length: w.segmentLength})
		w.nextZ += w.segmentLength
	}
	// 修剪身后的分段（保留一段余量，避免镜头边缘穿帮）
	const keepBehind = 10.0
	trimmed := 0
	for len(w.segments) > 0 && w.segments[0].End() < playerZ-keepBehind {
		w.segments = w.segments[1:]
		trimmed++
	}
	if trimmed > 0 {
		log.Printf("[WorldGenerator] Trimmed %d segments behind z=%.1f", trimmed, playerZ)
	}
}

// Segments 返回当前活动的分段
func (w *WorldGenerator) Segments() []Segment {
	return w.segments
}
