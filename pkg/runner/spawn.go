package runner

import (
	"math/rand"

	"github.com/decker502/minigames/pkg/minigame"
)

// ObstacleKind 障碍类型，决定可用的闪避方式
type ObstacleKind int

const (
	// ObstacleLow 低障碍，跳跃越过
	ObstacleLow ObstacleKind = iota
	// ObstacleHigh 高障碍，滑铲穿过
	ObstacleHigh
	// ObstacleFull 全高障碍，只能换道
	ObstacleFull
)

// String 返回障碍类型的可读名称
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleLow:
		return "Low"
	case ObstacleHigh:
		return "High"
	case ObstacleFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// Obstacle 障碍实例（池化对象）
type Obstacle struct {
	Lane int
	Z    float64
	Kind ObstacleKind
}

// Collectible 收集物实例（池化对象）
type Collectible struct {
	Lane   int
	Z      float64
	Points float64
}

// ObstacleManager 障碍生成器
//
// 池化生成：到达生成阈值时从对象池取实例、重新配置后投入赛道，
// 越过玩家身后的实例归还池子。配置是幂等的，同一实例可反复使用。
type ObstacleManager struct {
	pool   *minigame.Pool[*Obstacle]
	active []*Obstacle
	rng    *rand.Rand

	lanes     int
	gap       float64
	gapJitter float64
	nextZ     float64
}

// NewObstacleManager 创建障碍生成器
func NewObstacleManager(poolSize, lanes int, gap, gapJitter float64, rng *rand.Rand) *ObstacleManager {
	om := &ObstacleManager{
		pool: minigame.NewPool(poolSize,
			func() *Obstacle { return &Obstacle{} },
			func(o *Obstacle) { *o = Obstacle{} }, // 释放时重置回默认配置
		),
		rng:       rng,
		lanes:     lanes,
		gap:       gap,
		gapJitter: gapJitter,
		nextZ:     gap * 2, // 起步留出安全距离
	}
	om.pool.Prewarm(poolSize / 2)
	return om
}

// Update 生成视距内的新障碍，回收身后的旧障碍
func (om *ObstacleManager) Update(playerZ, horizon float64) {
	for om.nextZ < playerZ+horizon {
		o := om.pool.Acquire()
		o.Lane = om.rng.Intn(om.lanes)
		o.Z = om.nextZ
		o.Kind = ObstacleKind(om.rng.Intn(3))
		om.active = append(om.active, o)
		om.nextZ += om.gap + om.rng.Float64()*om.gapJitter
	}
	om.recycle(playerZ)
}

// recycle 释放越过玩家身后的障碍
func (om *ObstacleManager) recycle(playerZ float64) {
	const keepBehind = 5.0
	kept := om.active[:0]
	for _, o := range om.active {
		if o.Z < playerZ-keepBehind {
			om.pool.Release(o)
			continue
		}
		kept = append(kept, o)
	}
	om.active = kept
}

// Active 返回当前赛道上的障碍
func (om *ObstacleManager) Active() []*Obstacle {
	return om.active
}

// Remove 立即移除并回收一个障碍（碰撞结算后）
func (om *ObstacleManager) Remove(target *Obstacle) {
	for i, o := range om.active {
		if o == target {
			om.active = append(om.active[:i], om.active[i+1:]...)
			om.pool.Release(o)
			return
		}
	}
}

// CollectibleManager 收集物生成器，结构与障碍生成器对应
type CollectibleManager struct {
	pool   *minigame.Pool[*Collectible]
	active []*Collectible
	rng    *rand.Rand

	lanes  int
	gap    float64
	points float64
	nextZ  float64
}

// NewCollectibleManager 创建收集物生成器
func NewCollectibleManager(poolSize, lanes int, gap, points float64, rng *rand.Rand) *CollectibleManager {
	cm := &CollectibleManager{
		pool: minigame.NewPool(poolSize,
			func() *Collectible { return &Collectible{} },
			func(c *Collectible) { *c = Collectible{} },
		),
		rng:    rng,
		lanes:  lanes,
		gap:    gap,
		points: points,
		nextZ:  gap,
	}
	cm.pool.Prewarm(poolSize / 2)
	return cm
}

// Update 生成视距内的新收集物，回收身后的旧收集物
func (cm *CollectibleManager) Update(playerZ, horizon float64) {
	for cm.nextZ < playerZ+horizon {
		c := cm.pool.Acquire()
		c.Lane = cm.rng.Intn(cm.lanes)
		c.Z = cm.nextZ
		c.Points = cm.points
		cm.active = append(cm.active, c)
		cm.nextZ += cm.gap
	}
	const keepBehind = 5.0
	kept := cm.active[:0]
	for _, c := range cm.active {
		if c.Z < playerZ-keepBehind {
			cm.pool.Release(c)
			continue
		}
		kept = append(kept, c)
	}
	cm.active = kept
}

// Active 返回当前赛道上的收集物
func (cm *CollectibleManager) Active() []*Collectible {
	return cm.active
}

// Remove 立即移除并回收一个收集物（拾取后）
func (cm *CollectibleManager) Remove(target *Collectible) {
	for i, c := range cm.active {
		if c == target {
			cm.active = append(cm.active[:i], cm.active[i+1:]...)
			cm.pool.Release(c)
			return
		}
	}
}
