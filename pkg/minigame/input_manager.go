package minigame

import (
	"log"

	"github.com/decker502/minigames/pkg/events"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Command 离散输入命令
// 输入管理器把原始按键状态翻译成命令对象，以事件形式广播，
// 玩法代码只认命令、不认按键
type Command int

const (
	// CommandJump 跳跃
	CommandJump Command = iota
	// CommandSlide 滑铲
	CommandSlide
	// CommandMoveLeft 左移
	CommandMoveLeft
	// CommandMoveRight 右移
	CommandMoveRight
	// CommandMoveUp 上移（光标类玩法）
	CommandMoveUp
	// CommandMoveDown 下移（光标类玩法）
	CommandMoveDown
	// CommandConfirm 确认/选择
	CommandConfirm
	// CommandPause 暂停/恢复
	CommandPause
)

// String 返回命令的可读名称
func (c Command) String() string {
	switch c {
	case CommandJump:
		return "Jump"
	case CommandSlide:
		return "Slide"
	case CommandMoveLeft:
		return "MoveLeft"
	case CommandMoveRight:
		return "MoveRight"
	case CommandMoveUp:
		return "MoveUp"
	case CommandMoveDown:
		return "MoveDown"
	case CommandConfirm:
		return "Confirm"
	case CommandPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// CommandEvent 输入命令事件
type CommandEvent struct {
	Command Command
}

// KeySource 按键采样函数：返回某个键本帧是否刚被按下
// 默认实现轮询 ebiten，测试注入脚本化的按键状态
type KeySource func(key ebiten.Key) bool

// DefaultBindings 返回默认键位映射
// 具体游戏可在初始化钩子里通过 Bind 调整
func DefaultBindings() map[ebiten.Key]Command {
	return map[ebiten.Key]Command{
		ebiten.KeySpace:      CommandJump,
		ebiten.KeyArrowDown:  CommandSlide,
		ebiten.KeyArrowLeft:  CommandMoveLeft,
		ebiten.KeyArrowRight: CommandMoveRight,
		ebiten.KeyArrowUp:    CommandMoveUp,
		ebiten.KeyS:          CommandMoveDown,
		ebiten.KeyEnter:      CommandConfirm,
		ebiten.KeyP:          CommandPause,
	}
}

// InputManager 输入管理器
//
// 每帧轮询一次键位映射，把刚按下的键翻译成 CommandEvent 发布到总线。
// 锁定期间（场景过渡等）轮询是空操作：记录一次日志后静默忽略。
type InputManager struct {
	bus        *events.Bus
	bindings   map[ebiten.Key]Command
	order      []ebiten.Key // 轮询顺序固定，保证命令发布顺序确定
	source     KeySource
	locked     bool
	lockLogged bool
}

// NewInputManager 创建输入管理器
func NewInputManager(bus *events.Bus, bindings map[ebiten.Key]Command) *InputManager {
	im := &InputManager{
		bus:      bus,
		bindings: make(map[ebiten.Key]Command),
		source:   inpututil.IsKeyJustPressed,
	}
	for key, cmd := range bindings {
		im.Bind(key, cmd)
	}
	return im
}

// Bind 绑定（或重绑定）一个按键到命令
func (im *InputManager) Bind(key ebiten.Key, cmd Command) {
	if _, exists := im.bindings[key]; !exists {
		im.order = append(im.order, key)
	}
	im.bindings[key] = cmd
}

// Unbind 解除一个按键绑定
func (im *InputManager) Unbind(key ebiten.Key) {
	if _, exists := im.bindings[key]; !exists {
		return
	}
	delete(im.bindings, key)
	for i, k := range im.order {
		if k == key {
			im.order = append(im.order[:i], im.order[i+1:]...)
			break
		}
	}
}

// SetSource 替换按键采样函数（测试用）
func (im *InputManager) SetSource(source KeySource) {
	if source != nil {
		im.source = source
	}
}

// Poll 轮询一帧输入并发布命令事件
// 锁定状态下为空操作
func (im *InputManager) Poll() {
	if im.locked {
		if !im.lockLogged {
			log.Printf("[InputManager] Input is locked, ignoring polls")
			im.lockLogged = true
		}
		return
	}
	for _, key := range im.order {
		if im.source(key) {
			events.Publish(im.bus, CommandEvent{Command: im.bindings[key]})
		}
	}
}

// Lock 锁定输入（例如场景过渡期间）
func (im *InputManager) Lock() {
	im.locked = true
}

// Unlock 解锁输入
func (im *InputManager) Unlock() {
	im.locked = false
	im.lockLogged = false
}

// IsLocked 返回输入是否被锁定
func (im *InputManager) IsLocked() bool {
	return im.locked
}

// Dispose 释放资源（当前无订阅，保留作为生命周期对称的清理入口）
func (im *InputManager) Dispose() {
	im.bindings = make(map[ebiten.Key]Command)
	im.order = nil
}
