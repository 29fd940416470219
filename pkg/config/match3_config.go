package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Match3Config 三消小游戏数值配置
type Match3Config struct {
	Cols         int     `yaml:"cols"`         // 棋盘列数
	Rows         int     `yaml:"rows"`         // 棋盘行数
	GemKinds     int     `yaml:"gemKinds"`     // 宝石种类数
	Moves        int     `yaml:"moves"`        // 可用步数，耗尽即 GameOver
	PointsPerGem float64 `yaml:"pointsPerGem"` // 每颗消除宝石的基础得分
	Seed         int64   `yaml:"seed"`         // 随机种子，0 表示按时间取种
}

// DefaultMatch3Config 返回默认三消配置
func DefaultMatch3Config() *Match3Config {
	return &Match3Config{
		Cols:         8,
		Rows:         8,
		GemKinds:     5,
		Moves:        30,
		PointsPerGem: 10.0,
		Seed:         0,
	}
}

// Validate 校验配置合法性
//
// 宝石种类至少 3 种：2 种会使"初始无匹配"的填充无解。
func (c *Match3Config) Validate() error {
	if c.Cols < 3 || c.Rows < 3 {
		return fmt.Errorf("match3 config: board must be at least 3x3, got %dx%d", c.Cols, c.Rows)
	}
	if c.GemKinds < 3 {
		return fmt.Errorf("match3 config: gemKinds must be >= 3, got %d", c.GemKinds)
	}
	if c.Moves <= 0 {
		return fmt.Errorf("match3 config: moves must be positive, got %d", c.Moves)
	}
	return nil
}

// LoadMatch3Config 从 YAML 文件加载三消配置
// 文件不存在时使用默认配置
func LoadMatch3Config(path string) (*Match3Config, error) {
	cfg := DefaultMatch3Config()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Config] Match3 config %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read match3 config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse match3 config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
