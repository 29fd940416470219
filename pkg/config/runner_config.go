package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// RunnerConfig 跑酷小游戏数值配置
type RunnerConfig struct {
	Lanes         int     `yaml:"lanes"`         // 赛道数量
	BaseSpeed     float64 `yaml:"baseSpeed"`     // 初始前进速度（米/秒）
	MaxSpeed      float64 `yaml:"maxSpeed"`      // 速度上限
	SpeedRamp     float64 `yaml:"speedRamp"`     // 每秒速度增量
	JumpDuration  float64 `yaml:"jumpDuration"`  // 跳跃滞空时长（秒）
	SlideDuration float64 `yaml:"slideDuration"` // 滑铲时长（秒）

	SegmentLength float64 `yaml:"segmentLength"` // 平台分段长度（米）
	Horizon       float64 `yaml:"horizon"`       // 玩家前方的生成视距（米）

	ObstacleGap       float64 `yaml:"obstacleGap"`       // 障碍基础间距（米）
	ObstacleGapJitter float64 `yaml:"obstacleGapJitter"` // 障碍间距随机抖动（米）
	CollectibleGap    float64 `yaml:"collectibleGap"`    // 收集物间距（米）
	CollisionWindow   float64 `yaml:"collisionWindow"`   // 碰撞判定的前后窗口（米）

	ObstaclePoolSize    int `yaml:"obstaclePoolSize"`    // 障碍对象池容量
	CollectiblePoolSize int `yaml:"collectiblePoolSize"` // 收集物对象池容量

	PointsPerMeter    float64 `yaml:"pointsPerMeter"`    // 每米的持续得分
	CollectiblePoints float64 `yaml:"collectiblePoints"` // 单个收集物得分
}

// DefaultRunnerConfig 返回默认跑酷配置
func DefaultRunnerConfig() *RunnerConfig {
	return &RunnerConfig{
		Lanes:               3,
		BaseSpeed:           8.0,
		MaxSpeed:            20.0,
		SpeedRamp:           0.25,
		JumpDuration:        0.6,
		SlideDuration:       0.7,
		SegmentLength:       25.0,
		Horizon:             60.0,
		ObstacleGap:         14.0,
		ObstacleGapJitter:   6.0,
		CollectibleGap:      9.0,
		CollisionWindow:     0.8,
		ObstaclePoolSize:    16,
		CollectiblePoolSize: 24,
		PointsPerMeter:      1.0,
		CollectiblePoints:   25.0,
	}
}

// Validate 校验配置合法性
func (c *RunnerConfig) Validate() error {
	if c.Lanes < 1 {
		return fmt.Errorf("runner config: lanes must be >= 1, got %d", c.Lanes)
	}
	if c.BaseSpeed <= 0 || c.MaxSpeed < c.BaseSpeed {
		return fmt.Errorf("runner config: invalid speed range [%v, %v]", c.BaseSpeed, c.MaxSpeed)
	}
	if c.ObstaclePoolSize <= 0 || c.CollectiblePoolSize <= 0 {
		return fmt.Errorf("runner config: pool sizes must be positive")
	}
	return nil
}

// LoadRunnerConfig 从 YAML 文件加载跑酷配置
// 文件不存在时使用默认配置
func LoadRunnerConfig(path string) (*RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Config] Runner config %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read runner config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse runner config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
