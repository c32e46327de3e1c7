package engine

import "regexp"

// BoardState 棋盘状态的不透明句柄
// 引擎只负责在模型和渲染器之间传递，从不解释内部结构
type BoardState any

// BoardModel 棋盘模型，每个游戏提供一个实现
// 模型持有权威的对局状态和规则，不需要自己做并发保护，
// 引擎保证对单个实例的访问是串行的
type BoardModel interface {
	// CurrentBoard 当前棋盘状态，开局播报时交给渲染器
	CurrentBoard() BoardState

	// ValidateMove 廉价的结构预检，不改变状态
	ValidateMove(move string) bool

	// MakeMove 执行落子，返回新的棋盘状态
	// 不合法的落子返回 *BadMoveError（带用户可读原因），状态不变
	MakeMove(move string, playerIndex int, isComputer bool) (BoardState, error)

	// DetermineGameOver 判定对局是否结束
	// 返回获胜者名字、"draw" 或 ""（未结束）
	DetermineGameOver(players []string) string
}

// TurnSkipper 可选扩展：带跳过回合规则的游戏实现它
// 下一位玩家没有合法落子时，引擎宣布换人并跳过该回合
type TurnSkipper interface {
	HasLegalMoves(playerIndex int) bool
}

// Snapshotter 可选扩展：支持跨进程重启持久化的模型实现它
// 没有实现的模型对应的会话只存在于内存
type Snapshotter interface {
	Snapshot() ([]byte, error)
	Restore(data []byte) error
}

// Renderer 消息渲染器，把状态和事件转成聊天文本
type Renderer interface {
	// RenderBoard 渲染当前棋盘
	RenderBoard(state BoardState) string

	// PlayerToken 回合索引对应的棋子标记
	PlayerToken(turnIndex int) string

	// MoveMessage 某玩家落子后的播报文本
	MoveMessage(playerName, moveDescription string) string

	// StartMessage 开局播报文本
	StartMessage() string
}

// ComputerPlayer 电脑玩家，产出一个合法落子的文本形式
// 产出的文本会走和人类落子完全相同的解析管线
// 没有任何合法落子时返回 ErrNoLegalMove
type ComputerPlayer interface {
	ComputerMove(playerIndex int) (string, error)
}

// GameConfig 一个游戏接入引擎所需的全部静态配置
type GameConfig struct {
	Name             string // 游戏名，出现在邀请和帮助文本里
	BotName          string // 机器人名，同时也是电脑玩家占用的名字
	MoveHelp         string // 落子格式说明
	MoveRegex        *regexp.Regexp
	RulesText        string
	MinPlayers       int
	MaxPlayers       int
	SupportsComputer bool

	// NewModel 构造棋盘模型，可能因为外部数据源不可用而失败
	// 失败会中止实例创建，房间保持无对局状态
	NewModel func() (BoardModel, error)

	NewRenderer func() Renderer

	// NewComputerPlayer 构造电脑玩家，SupportsComputer 为 false 时可以为 nil
	NewComputerPlayer func(model BoardModel) (ComputerPlayer, error)
}
