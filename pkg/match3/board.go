// Package match3 实现三消小游戏
package match3

import (
	"fmt"
	"math/rand"
)

// Gem 宝石种类，0 表示空格，1..kinds 为有效种类
type Gem int

// GemNone 空格
const GemNone Gem = 0

// Point 棋盘坐标（列、行），行 0 在顶部
type Point struct {
	Col int
	Row int
}

// Board 三消棋盘
//
// 负责纯粹的棋盘操作：交换、匹配检测、重力下落、补充与连锁结算。
// 不持有状态机与得分——那些属于 Game 层。随机源由外部注入，
// 测试用固定种子保证确定性。
type Board struct {
	cols  int
	rows  int
	kinds int
	cells [][]Gem // cells[col][row]
	rng   *rand.Rand
}

// NewBoard 创建棋盘并填充初始宝石
// 初始填充保证没有现成的三连（否则开局就会自动消除）
func NewBoard(cols, rows, kinds int, rng *rand.Rand) (*Board, error) {
	if cols < 3 || rows < 3 {
		return nil, fmt.Errorf("match3: board must be at least 3x3, got %dx%d", cols, rows)
	}
	if kinds < 3 {
		return nil, fmt.Errorf("match3: need at least 3 gem kinds, got %d", kinds)
	}
	if rng == nil {
		return nil, fmt.Errorf("match3: nil random source")
	}
	b := &Board{cols: cols, rows: rows, kinds: kinds, rng: rng}
	b.cells = make([][]Gem, cols)
	for c := range b.cells {
		b.cells[c] = make([]Gem, rows)
	}
	b.fillWithoutMatches()
	return b, nil
}

// Cols 返回列数
func (b *Board) Cols() int { return b.cols }

// Rows 返回行数
func (b *Board) Rows() int { return b.rows }

// At 返回指定格子的宝石，越界返回 GemNone
func (b *Board) At(p Point) Gem {
	if !b.InBounds(p) {
		return GemNone
	}
	return b.cells[p.Col][p.Row]
}

// SetGem 直接放置宝石（测试与关卡编辑用）
func (b *Board) SetGem(p Point, g Gem) {
	if b.InBounds(p) {
		b.cells[p.Col][p.Row] = g
	}
}

// InBounds 检查坐标是否在棋盘内
func (b *Board) InBounds(p Point) bool {
	return p.Col >= 0 && p.Col < b.cols && p.Row >= 0 && p.Row < b.rows
}

// Adjacent 检查两个格子是否正交相邻
func Adjacent(a, bp Point) bool {
	dc := a.Col - bp.Col
	dr := a.Row - bp.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc+dr == 1
}

// fillWithoutMatches 初始填充：逐格随机取种类，避开会立即成三连的选择
// 左侧两格或上方两格同色时换一种（kinds >= 3 保证总有可选项）
func (b *Board) fillWithoutMatches() {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			for {
				g := Gem(b.rng.Intn(b.kinds) + 1)
				if c >= 2 && b.cells[c-1][r] == g && b.cells[c-2][r] == g {
					continue
				}
				if r >= 2 && b.cells[c][r-1] == g && b.cells[c][r-2] == g {
					continue
				}
				b.cells[c][r] = g
				break
			}
		}
	}
}

// swap 无条件交换两个格子的内容
func (b *Board) swap(p1, p2 Point) {
	b.cells[p1.Col][p1.Row], b.cells[p2.Col][p2.Row] =
		b.cells[p2.Col][p2.Row], b.cells[p1.Col][p1.Row]
}

// FindMatches 扫描全盘，返回所有处于 3+ 连中的格子（去重）
func (b *Board) FindMatches() []Point {
	matched := make(map[Point]struct{})

	// 横向扫描
	for r := 0; r < b.rows; r++ {
		runStart := 0
		for c := 1; c <= b.cols; c++ {
			if c < b.cols && b.cells[c][r] != GemNone && b.cells[c][r] == b.cells[runStart][r] {
				continue
			}
			if c-runStart >= 3 {
				for i := runStart; i < c; i++ {
					matched[Point{Col: i, Row: r}] = struct{}{}
				}
			}
			runStart = c
		}
	}

	// 纵向扫描
	for c := 0; c < b.cols; c++ {
		runStart := 0
		for r := 1; r <= b.rows; r++ {
			if r < b.rows && b.cells[c][r] != GemNone && b.cells[c][r] == b.cells[c][runStart] {
				continue
			}
			if r-runStart >= 3 {
				for i := runStart; i < r; i++ {
					matched[Point{Col: c, Row: i}] = struct{}{}
				}
			}
			runStart = r
		}
	}

	if len(matched) == 0 {
		return nil
	}
	points := make([]Point, 0, len(matched))
	for p := range matched {
		points = append(points, p)
	}
	return points
}

// clear 清除指定格子，返回清除数量
func (b *Board) clear(points []Point) int {
	for _, p := range points {
		b.cells[p.Col][p.Row] = GemNone
	}
	return len(points)
}

// applyGravity 每列宝石下落填补空格
func (b *Board) applyGravity() {
	for c := 0; c < b.cols; c++ {
		write := b.rows - 1
		for r := b.rows - 1; r >= 0; r-- {
			if b.cells[c][r] != GemNone {
				b.cells[c][write] = b.cells[c][r]
				if write != r {
					b.cells[c][r] = GemNone
				}
				write--
			}
		}
		for r := write; r >= 0; r-- {
			b.cells[c][r] = GemNone
		}
	}
}

// refill 用随机宝石填充剩余空格（顶部落下的新宝石）
func (b *Board) refill() {
	for c := 0; c < b.cols; c++ {
		for r := 0; r < b.rows; r++ {
			if b.cells[c][r] == GemNone {
				b.cells[c][r] = Gem(b.rng.Intn(b.kinds) + 1)
			}
		}
	}
}

// Resolve 结算当前棋盘上的所有匹配，含连锁
// 返回总清除数和连锁次数（至少 1 次才有意义，0 表示无匹配）
func (b *Board) Resolve() (cleared, cascades int) {
	for {
		matches := b.FindMatches()
		if len(matches) == 0 {
			return cleared, cascades
		}
		cascades++
		cleared += b.clear(matches)
		b.applyGravity()
		b.refill()
	}
}

// TrySwap 尝试交换两个相邻格子
//
// 只有交换后产生至少一个匹配才算有效；无效交换会被还原，
// 棋盘保持不变。有效交换随即完成整个连锁结算。
func (b *Board) TrySwap(p1, p2 Point) (ok bool, cleared, cascades int) {
	if !b.InBounds(p1) || !b.InBounds(p2) || !Adjacent(p1, p2) {
		return false, 0, 0
	}
	b.swap(p1, p2)
	if len(b.FindMatches()) == 0 {
		b.swap(p1, p2) // 还原
		return false, 0, 0
	}
	cleared, cascades = b.Resolve()
	return true, cleared, cascades
}
