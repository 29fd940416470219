package minigame

import (
	"fmt"
	"log"

	"github.com/decker502/minigames/pkg/events"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量：高分统一存在 "scores" 对象下，按游戏 ID 分属性
const scoresObject = "scores"

// scoreData 高分的持久化结构（YAML 编码后存入 gdata）
type scoreData struct {
	HighScore float64 `yaml:"highScore"`
}

// ScoreChanged 得分变化事件
type ScoreChanged struct {
	GameID string
	Score  float64
	Delta  float64
}

// NewHighScore 新高分事件
// 每次总分超过旧高分时恰好发布一次
type NewHighScore struct {
	GameID string
	Score  float64
}

// ScoreCalculator 得分计算钩子
// 具体游戏可替换默认实现（base * multiplier）来定制加成公式
type ScoreCalculator func(base, multiplier float64) float64

// ScoreManager 得分管理器
//
// 得分来自两类来源：离散拾取（AddScore）和按时间/距离的持续累积
//（AddContinuous），统一经过倍率和计算钩子。高分通过 gdata 持久化，
// store 为 nil 时进入降级模式（仅内存）。
type ScoreManager struct {
	gameID     string
	bus        *events.Bus
	store      *gdata.Manager
	score      float64
	multiplier float64
	highScore  float64
	calc       ScoreCalculator
}

// NewScoreManager 创建得分管理器，初始倍率为 1
func NewScoreManager(gameID string, bus *events.Bus, store *gdata.Manager) *ScoreManager {
	return &ScoreManager{
		gameID:     gameID,
		bus:        bus,
		store:      store,
		multiplier: 1.0,
		calc: func(base, multiplier float64) float64 {
			return base * multiplier
		},
	}
}

// SetCalculator 替换得分计算钩子（nil 忽略）
func (sm *ScoreManager) SetCalculator(calc ScoreCalculator) {
	if calc != nil {
		sm.calc = calc
	}
}

// SetMultiplier 设置当前倍率
func (sm *ScoreManager) SetMultiplier(m float64) {
	sm.multiplier = m
}

// Multiplier 返回当前倍率
func (sm *ScoreManager) Multiplier() float64 {
	return sm.multiplier
}

// AddScore 累积一次离散得分（拾取、消除）
func (sm *ScoreManager) AddScore(points float64) {
	sm.add(points)
}

// AddContinuous 按帧累积持续得分
// rate 为每秒得分速率，deltaTime 为本帧时长
func (sm *ScoreManager) AddContinuous(rate, deltaTime float64) {
	sm.add(rate * deltaTime)
}

// add 应用计算钩子并发布事件，按调用顺序累积
func (sm *ScoreManager) add(base float64) {
	delta := sm.calc(base, sm.multiplier)
	if delta == 0 {
		return
	}
	sm.score += delta
	if sm.bus != nil {
		events.Publish(sm.bus, ScoreChanged{GameID: sm.gameID, Score: sm.score, Delta: delta})
	}
	if sm.score > sm.highScore {
		sm.highScore = sm.score
		if sm.bus != nil {
			events.Publish(sm.bus, NewHighScore{GameID: sm.gameID, Score: sm.score})
		}
	}
}

// Score 返回当前得分
func (sm *ScoreManager) Score() float64 {
	return sm.score
}

// HighScore 返回历史最高分
func (sm *ScoreManager) HighScore() float64 {
	return sm.highScore
}

// Reset 清零当前得分（高分保留），用于重开一局
func (sm *ScoreManager) Reset() {
	old := sm.score
	sm.score = 0
	if old != 0 && sm.bus != nil {
		events.Publish(sm.bus, ScoreChanged{GameID: sm.gameID, Score: 0, Delta: -old})
	}
}

// Load 从 gdata 加载历史高分
// store 为 nil 或数据不存在时保持 0，不报错
func (sm *ScoreManager) Load() error {
	if sm.store == nil {
		return nil
	}
	if !sm.store.ObjectPropExists(scoresObject, sm.gameID) {
		return nil
	}
	data, err := sm.store.LoadObjectProp(scoresObject, sm.gameID)
	if err != nil {
		return fmt.Errorf("failed to load high score: %w", err)
	}
	var loaded scoreData
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal high score: %w", err)
	}
	sm.highScore = loaded.HighScore
	return nil
}

// Save 将历史高分保存到 gdata
// 降级模式下为空操作
func (sm *ScoreManager) Save() error {
	if sm.store == nil {
		return nil
	}
	data, err := yaml.Marshal(scoreData{HighScore: sm.highScore})
	if err != nil {
		return fmt.Errorf("failed to marshal high score: %w", err)
	}
	if err := sm.store.SaveObjectProp(scoresObject, sm.gameID, data); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	log.Printf("[ScoreManager:%s] High score saved: %.0f", sm.gameID, sm.highScore)
	return nil
}

// LoadHighScore 独立读取某个游戏的历史高分（菜单展示用）
func LoadHighScore(store *gdata.Manager, gameID string) float64 {
	if store == nil || !store.ObjectPropExists(scoresObject, gameID) {
		return 0
	}
	data, err := store.LoadObjectProp(scoresObject, gameID)
	if err != nil {
		log.Printf("[ScoreManager:%s] Failed to read high score: %v", gameID, err)
		return 0
	}
	var loaded scoreData
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		log.Printf("[ScoreManager:%s] Failed to parse high score: %v", gameID, err)
		return 0
	}
	return loaded.HighScore
}
