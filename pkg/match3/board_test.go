package match3

import (
	"math/rand"
	"testing"
)

// newTestBoard 创建固定种子的棋盘
func newTestBoard(t *testing.T, cols, rows, kinds int) *Board {
	t.Helper()
	b, err := NewBoard(cols, rows, kinds, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewBoard() error: %v", err)
	}
	return b
}

// fillBoard 用脚本布局覆盖整个棋盘
// layout[row][col]，与屏幕方向一致（行 0 在顶部）
func fillBoard(t *testing.T, b *Board, layout [][]Gem) {
	t.Helper()
	if len(layout) != b.Rows() {
		t.Fatalf("layout rows: got %d, want %d", len(layout), b.Rows())
	}
	for r, rowGems := range layout {
		for c, g := range rowGems {
			b.SetGem(Point{Col: c, Row: r}, g)
		}
	}
}

// TestNewBoardValidation 测试棋盘参数校验
func TestNewBoardValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewBoard(2, 8, 5, rng); err == nil {
		t.Error("NewBoard accepted 2 columns")
	}
	if _, err := NewBoard(8, 8, 2, rng); err == nil {
		t.Error("NewBoard accepted 2 gem kinds")
	}
	if _, err := NewBoard(8, 8, 5, nil); err == nil {
		t.Error("NewBoard accepted nil rng")
	}
}

// TestInitialFillHasNoMatches 测试初始填充没有现成匹配
func TestInitialFillHasNoMatches(t *testing.T) {
	// 多个种子抽查
	for seed := int64(1); seed <= 20; seed++ {
		b, err := NewBoard(8, 8, 3, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("NewBoard() error: %v", err)
		}
		if matches := b.FindMatches(); len(matches) != 0 {
			t.Errorf("seed %d: initial board has %d matched cells", seed, len(matches))
		}
		// 全盘无空格
		for c := 0; c < 8; c++ {
			for r := 0; r < 8; r++ {
				if b.At(Point{Col: c, Row: r}) == GemNone {
					t.Fatalf("seed %d: empty cell at (%d,%d)", seed, c, r)
				}
			}
		}
	}
}

// TestAdjacent 测试正交相邻判定
func TestAdjacent(t *testing.T) {
	cases := []struct {
		a, b Point
		want bool
	}{
		{Point{1, 1}, Point{2, 1}, true},
		{Point{1, 1}, Point{1, 0}, true},
		{Point{1, 1}, Point{2, 2}, false}, // 对角
		{Point{1, 1}, Point{1, 1}, false}, // 同格
		{Point{1, 1}, Point{3, 1}, false}, // 隔一格
	}
	for _, c := range cases {
		if got := Adjacent(c.a, c.b); got != c.want {
			t.Errorf("Adjacent(%v, %v): got %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

// TestFindMatchesRowAndColumn 测试横纵向匹配检测与去重
func TestFindMatchesRowAndColumn(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	// 第 0 行三连 1，第 0 列三连 1（共享角格 (0,0)）
	fillBoard(t, b, [][]Gem{
		{1, 1, 1, 2},
		{1, 2, 3, 3},
		{1, 3, 2, 2},
		{2, 2, 3, 3},
	})

	matches := b.FindMatches()
	// 角格去重：3 + 3 - 1 = 5
	if len(matches) != 5 {
		t.Errorf("matched cells: got %d, want 5 (%v)", len(matches), matches)
	}
}

// TestTrySwapInvalidNoMatch 测试不产生匹配的交换被还原
func TestTrySwapInvalidNoMatch(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	layout := [][]Gem{
		{1, 2, 1, 2},
		{3, 1, 3, 1},
		{1, 2, 1, 2},
		{3, 1, 3, 1},
	}
	fillBoard(t, b, layout)

	p1 := Point{Col: 0, Row: 0}
	p2 := Point{Col: 1, Row: 0}
	ok, cleared, cascades := b.TrySwap(p1, p2)
	if ok || cleared != 0 || cascades != 0 {
		t.Errorf("TrySwap: got ok=%v cleared=%d cascades=%d, want rejection", ok, cleared, cascades)
	}

	// 棋盘应完全还原
	for r, rowGems := range layout {
		for c, g := range rowGems {
			if got := b.At(Point{Col: c, Row: r}); got != g {
				t.Errorf("cell (%d,%d) after reverted swap: got %v, want %v", c, r, got, g)
			}
		}
	}
}

// TestTrySwapNonAdjacent 测试不相邻的交换直接拒绝
func TestTrySwapNonAdjacent(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	if ok, _, _ := b.TrySwap(Point{0, 0}, Point{2, 0}); ok {
		t.Error("TrySwap accepted non-adjacent cells")
	}
	if ok, _, _ := b.TrySwap(Point{0, 0}, Point{1, 1}); ok {
		t.Error("TrySwap accepted diagonal cells")
	}
	if ok, _, _ := b.TrySwap(Point{0, 0}, Point{-1, 0}); ok {
		t.Error("TrySwap accepted out-of-bounds cell")
	}
}

// TestTrySwapValidClearsAndRefills 测试有效交换：消除、下落、补充
func TestTrySwapValidClearsAndRefills(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	// 交换 (1,0) 和 (1,1) 后第 1 行成三连 2
	fillBoard(t, b, [][]Gem{
		{1, 2, 1, 3},
		{2, 1, 2, 1},
		{1, 3, 1, 3},
		{3, 1, 3, 2},
	})

	ok, cleared, cascades := b.TrySwap(Point{Col: 1, Row: 0}, Point{Col: 1, Row: 1})
	if !ok {
		t.Fatal("valid swap was rejected")
	}
	if cleared < 3 {
		t.Errorf("cleared: got %d, want >= 3", cleared)
	}
	if cascades < 1 {
		t.Errorf("cascades: got %d, want >= 1", cascades)
	}

	// 结算后棋盘没有空格也没有剩余匹配
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			if b.At(Point{Col: c, Row: r}) == GemNone {
				t.Errorf("empty cell at (%d,%d) after resolve", c, r)
			}
		}
	}
	if m := b.FindMatches(); len(m) != 0 {
		t.Errorf("matches remain after resolve: %v", m)
	}
}

// TestApplyGravity 测试重力下落的列压缩
func TestApplyGravity(t *testing.T) {
	b := newTestBoard(t, 3, 4, 3)
	// 第 0 列从上到下：1, 空, 2, 空
	fillBoard(t, b, [][]Gem{
		{1, 1, 2},
		{GemNone, 2, 1},
		{2, 1, 2},
		{GemNone, 2, 1},
	})

	b.applyGravity()

	// 第 0 列压缩后：空, 空, 1, 2
	col0 := []Gem{
		b.At(Point{Col: 0, Row: 0}),
		b.At(Point{Col: 0, Row: 1}),
		b.At(Point{Col: 0, Row: 2}),
		b.At(Point{Col: 0, Row: 3}),
	}
	want := []Gem{GemNone, GemNone, 1, 2}
	for i := range want {
		if col0[i] != want[i] {
			t.Fatalf("column 0 after gravity: got %v, want %v", col0, want)
		}
	}
}

// TestResolveCascades 测试连锁：一次消除引发的下落再次成匹配
func TestResolveCascades(t *testing.T) {
	b := newTestBoard(t, 3, 4, 3)
	// 第 3 行（底部）三连 1 先消，第 0 列上方的 2 落下后与底部的 2 成纵向三连
	// 布局精心构造：消除底行后每列下落，第 0 列变成 [空,空,2,2]…
	// 用确定种子让 refill 可预测并不产生额外匹配比较困难，
	// 这里只验证 cascades 计数 >= 1 且结算后无剩余匹配
	fillBoard(t, b, [][]Gem{
		{2, 3, 2},
		{3, 2, 3},
		{2, 3, 2},
		{1, 1, 1},
	})

	cleared, cascades := b.Resolve()
	if cleared < 3 {
		t.Errorf("cleared: got %d, want >= 3", cleared)
	}
	if cascades < 1 {
		t.Errorf("cascades: got %d, want >= 1", cascades)
	}
	if m := b.FindMatches(); len(m) != 0 {
		t.Errorf("matches remain after Resolve: %v", m)
	}
}

// TestAtOutOfBounds 测试越界访问返回空格
func TestAtOutOfBounds(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	if g := b.At(Point{Col: -1, Row: 0}); g != GemNone {
		t.Errorf("At(-1,0): got %v, want GemNone", g)
	}
	if g := b.At(Point{Col: 0, Row: 4}); g != GemNone {
		t.Errorf("At(0,4): got %v, want GemNone", g)
	}
}
