package minigame

import (
	"os"
	"testing"

	"github.com/decker502/minigames/pkg/events"
	"github.com/quasilyte/gdata/v2"
)

// newTestStore 在临时目录下创建 gdata manager
func newTestStore(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: "test_scores"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestAddScoreAppliesMultiplier 测试离散得分经过倍率
func TestAddScoreAppliesMultiplier(t *testing.T) {
	sm := NewScoreManager("test", nil, nil)

	sm.AddScore(10)
	if sm.Score() != 10 {
		t.Errorf("Score after AddScore(10) at x1: got %v, want 10", sm.Score())
	}

	sm.SetMultiplier(2.0)
	sm.AddScore(10)
	if sm.Score() != 30 {
		t.Errorf("Score after AddScore(10) at x2: got %v, want 30", sm.Score())
	}
}

// TestAddContinuous 测试按时间累积的持续得分
func TestAddContinuous(t *testing.T) {
	sm := NewScoreManager("test", nil, nil)

	// 每秒 60 分，模拟 1 秒（60 帧）
	for i := 0; i < 60; i++ {
		sm.AddContinuous(60.0, 1.0/60.0)
	}
	if got := sm.Score(); got < 59.99 || got > 60.01 {
		t.Errorf("Score after 1s at 60/s: got %v, want ~60", got)
	}
}

// TestScoreChangedEvents 测试每次得分变化发布事件
func TestScoreChangedEvents(t *testing.T) {
	bus := events.NewBus()
	sm := NewScoreManager("test", bus, nil)

	var changes []ScoreChanged
	events.Subscribe(bus, func(e ScoreChanged) { changes = append(changes, e) })

	sm.AddScore(10)
	sm.AddScore(5)

	if len(changes) != 2 {
		t.Fatalf("ScoreChanged events: got %d, want 2", len(changes))
	}
	if changes[0].Delta != 10 || changes[0].Score != 10 {
		t.Errorf("first event: got %+v", changes[0])
	}
	if changes[1].Delta != 5 || changes[1].Score != 15 {
		t.Errorf("second event: got %+v", changes[1])
	}
	if changes[1].GameID != "test" {
		t.Errorf("GameID: got %q, want %q", changes[1].GameID, "test")
	}
}

// TestNewHighScoreEvent 测试总分超过旧高分时发布新高分事件
func TestNewHighScoreEvent(t *testing.T) {
	bus := events.NewBus()
	sm := NewScoreManager("test", bus, nil)
	sm.highScore = 20 // 模拟已加载的历史高分

	var highs []NewHighScore
	events.Subscribe(bus, func(e NewHighScore) { highs = append(highs, e) })

	sm.AddScore(15) // 15 < 20，无事件
	if len(highs) != 0 {
		t.Fatalf("NewHighScore below previous high: got %d events", len(highs))
	}

	sm.AddScore(10) // 25 > 20，一次事件
	if len(highs) != 1 {
		t.Fatalf("NewHighScore events: got %d, want 1", len(highs))
	}
	if highs[0].Score != 25 {
		t.Errorf("NewHighScore.Score: got %v, want 25", highs[0].Score)
	}

	sm.AddScore(5) // 30 > 25，仍在刷新高分
	if len(highs) != 2 {
		t.Errorf("NewHighScore events after second beat: got %d, want 2", len(highs))
	}
	if sm.HighScore() != 30 {
		t.Errorf("HighScore: got %v, want 30", sm.HighScore())
	}
}

// TestSetCalculator 测试替换得分计算钩子
func TestSetCalculator(t *testing.T) {
	sm := NewScoreManager("test", nil, nil)
	// 平方加成公式
	sm.SetCalculator(func(base, multiplier float64) float64 {
		return base * multiplier * multiplier
	})
	sm.SetMultiplier(3.0)
	sm.AddScore(2)
	if sm.Score() != 18 {
		t.Errorf("Score with custom calculator: got %v, want 18", sm.Score())
	}

	// nil 钩子被忽略
	sm.SetCalculator(nil)
	sm.AddScore(2)
	if sm.Score() != 36 {
		t.Errorf("Score after SetCalculator(nil): got %v, want 36", sm.Score())
	}
}

// TestScoreReset 测试清零当前得分但保留高分
func TestScoreReset(t *testing.T) {
	bus := events.NewBus()
	sm := NewScoreManager("test", bus, nil)
	sm.AddScore(50)

	var last ScoreChanged
	events.Subscribe(bus, func(e ScoreChanged) { last = e })

	sm.Reset()
	if sm.Score() != 0 {
		t.Errorf("Score after Reset: got %v, want 0", sm.Score())
	}
	if sm.HighScore() != 50 {
		t.Errorf("HighScore after Reset: got %v, want 50", sm.HighScore())
	}
	if last.Delta != -50 || last.Score != 0 {
		t.Errorf("Reset event: got %+v", last)
	}
}

// TestHighScoreSaveLoadRoundTrip 测试高分的持久化往返
func TestHighScoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	sm1 := NewScoreManager("runner", nil, store)
	sm1.AddScore(123)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewScoreManager("runner", nil, store)
	if err := sm2.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if sm2.HighScore() != 123 {
		t.Errorf("HighScore after reload: got %v, want 123", sm2.HighScore())
	}

	// 不同游戏 ID 互不影响
	sm3 := NewScoreManager("match3", nil, store)
	if err := sm3.Load(); err != nil {
		t.Fatalf("Load() error for other game: %v", err)
	}
	if sm3.HighScore() != 0 {
		t.Errorf("HighScore for other game: got %v, want 0", sm3.HighScore())
	}
}

// TestLoadHighScoreStandalone 测试菜单用的独立高分读取
func TestLoadHighScoreStandalone(t *testing.T) {
	store := newTestStore(t)

	sm := NewScoreManager("match3", nil, store)
	sm.AddScore(77)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if got := LoadHighScore(store, "match3"); got != 77 {
		t.Errorf("LoadHighScore: got %v, want 77", got)
	}
	if got := LoadHighScore(store, "unknown"); got != 0 {
		t.Errorf("LoadHighScore for unknown game: got %v, want 0", got)
	}
	if got := LoadHighScore(nil, "match3"); got != 0 {
		t.Errorf("LoadHighScore with nil store: got %v, want 0", got)
	}
}

// TestScoreDegradedMode 测试 store 为 nil 时加载保存不报错
func TestScoreDegradedMode(t *testing.T) {
	sm := NewScoreManager("test", nil, nil)
	if err := sm.Load(); err != nil {
		t.Errorf("Load() error in degraded mode: %v", err)
	}
	sm.AddScore(10)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() error in degraded mode: %v", err)
	}
}
