package config

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// ColorConfig YAML 中的颜色表示
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// RGBA 转换为标准库颜色类型
func (c ColorConfig) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// TransitionConfig 场景过渡默认参数
//
// 每次过渡请求都会基于这份配置构造 SceneTransitionData，
// 调用方可以按需覆盖单项参数。
type TransitionConfig struct {
	DurationSeconds    float64     `yaml:"durationSeconds"`    // 单侧淡入/淡出时长（秒）
	CurveName          string      `yaml:"curveName"`          // 缓动曲线名称，见 utils.CurveForName
	FadeColor          ColorConfig `yaml:"fadeColor"`          // 遮罩颜色
	ShowLoadingScreen  bool        `yaml:"showLoadingScreen"`  // 是否显示加载界面
	LoadingText        string      `yaml:"loadingText"`        // 加载界面文字
	LoadTimeoutSeconds float64     `yaml:"loadTimeoutSeconds"` // 场景加载轮询的最大等待时间（安全网）
}

// DefaultTransitionConfig 返回默认过渡配置
func DefaultTransitionConfig() *TransitionConfig {
	return &TransitionConfig{
		DurationSeconds:    0.5,
		CurveName:          "inOutCubic",
		FadeColor:          ColorConfig{R: 0, G: 0, B: 0, A: 255},
		ShowLoadingScreen:  true,
		LoadingText:        "Loading...",
		LoadTimeoutSeconds: 10.0,
	}
}

// LoadTransitionConfig 从 YAML 文件加载过渡配置
//
// 文件不存在不是错误（使用默认配置），文件存在但解析失败返回错误。
func LoadTransitionConfig(path string) (*TransitionConfig, error) {
	cfg := DefaultTransitionConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Config] Transition config %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read transition config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse transition config: %w", err)
	}
	if cfg.DurationSeconds < 0 {
		return nil, fmt.Errorf("invalid transition duration: %v", cfg.DurationSeconds)
	}
	return cfg, nil
}
