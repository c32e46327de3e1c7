package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status 对局状态机
// Forming -> Active -> Finished，Finished 的实例宣布结果后立即销毁
type Status int

const (
	StatusForming Status = iota // 等待玩家加入
	StatusActive                // 对局进行中
	StatusFinished              // 已结束，待销毁
)

func (s Status) String() string {
	switch s {
	case StatusForming:
		return "forming"
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// GameInstance 一场对局的全部状态
// RoomID 创建后不可变；Players 的插入顺序就是回合顺序
// 实例不自带锁，注册表保证同一房间的操作串行
type GameInstance struct {
	ID               string
	RoomID           string
	Players          []string // 玩家标识（邮箱），加入顺序 = 回合顺序
	Turn             int      // 下一个落子的玩家索引
	Board            BoardState
	Status           Status
	ComputerOpponent bool
	StartedAt        time.Time

	cfg      *GameConfig
	model    BoardModel
	renderer Renderer
	computer ComputerPlayer
}

// newGameInstance 创建对局实例
// 模型构造失败（如外部题库不可用）时返回错误，实例不会被注册
func newGameInstance(cfg *GameConfig, roomID, starter string, withComputer bool) (*GameInstance, error) {
	model, err := cfg.NewModel()
	if err != nil {
		return nil, fmt.Errorf("构造棋盘模型失败: %w", err)
	}

	g := &GameInstance{
		ID:               uuid.NewString(),
		RoomID:           roomID,
		Players:          []string{starter},
		Board:            model.CurrentBoard(),
		Status:           StatusForming,
		ComputerOpponent: withComputer,
		StartedAt:        time.Now(),
		cfg:              cfg,
		model:            model,
		renderer:         cfg.NewRenderer(),
	}

	if withComputer {
		// 电脑占用一个普通玩家槽位，名字就是机器人名
		g.Players = append(g.Players, cfg.BotName)
		cp, err := cfg.NewComputerPlayer(model)
		if err != nil {
			return nil, fmt.Errorf("构造电脑玩家失败: %w", err)
		}
		g.computer = cp
	}
	return g, nil
}

// addPlayer 加入一名玩家
// 到达最小人数后对局自动转入 Active
func (g *GameInstance) addPlayer(player string) error {
	if g.Status != StatusForming {
		return ErrNotJoinable
	}
	if g.playerIndex(player) >= 0 {
		return ErrAlreadyJoined
	}
	if len(g.Players) >= g.cfg.MaxPlayers {
		return ErrGameFull
	}

	g.Players = append(g.Players, player)
	if len(g.Players) >= g.cfg.MinPlayers {
		g.Status = StatusActive
	}
	return nil
}

// activate 直接转入 Active（单人对电脑开局）
func (g *GameInstance) activate() {
	g.Status = StatusActive
}

// playerIndex 玩家在回合序列中的索引，不在局内返回 -1
func (g *GameInstance) playerIndex(player string) int {
	for i, p := range g.Players {
		if p == player {
			return i
		}
	}
	return -1
}

// currentPlayer 当前回合的玩家名
func (g *GameInstance) currentPlayer() string {
	return g.Players[g.Turn]
}

// isComputerTurn 当前回合是否轮到电脑
func (g *GameInstance) isComputerTurn() bool {
	return g.ComputerOpponent && g.currentPlayer() == g.cfg.BotName
}

// advanceTurn 轮到下一位玩家
func (g *GameInstance) advanceTurn() {
	g.Turn = (g.Turn + 1) % len(g.Players)
}

// applyMove 把一条已通过语法解析的落子交给模型
// 失败时棋盘不变、回合不前进（要么全部生效要么全不生效）
func (g *GameInstance) applyMove(move string, playerIndex int, isComputer bool) error {
	if g.Status != StatusActive {
		return ErrGameNotStarted
	}
	if playerIndex != g.Turn {
		return ErrNotYourTurn
	}
	if !g.model.ValidateMove(move) {
		return NewBadMove("Invalid move.")
	}

	board, err := g.model.MakeMove(move, playerIndex, isComputer)
	if err != nil {
		return err
	}
	g.Board = board
	return nil
}

// gameOverResult 询问模型对局是否结束
// 返回获胜者名字、"draw" 或 ""
func (g *GameInstance) gameOverResult() string {
	return g.model.DetermineGameOver(g.Players)
}

// nextPlayerHasMoves 下一位玩家是否有合法落子
// 模型没有跳过回合规则时恒为 true
func (g *GameInstance) nextPlayerHasMoves() bool {
	skipper, ok := g.model.(TurnSkipper)
	if !ok {
		return true
	}
	return skipper.HasLegalMoves(g.Turn)
}

// instanceSnapshot 会话快照的持久化形式
type instanceSnapshot struct {
	GameName         string          `json:"game_name"`
	InstanceID       string          `json:"instance_id"`
	Players          []string        `json:"players"`
	Turn             int             `json:"turn"`
	Status           Status          `json:"status"`
	ComputerOpponent bool            `json:"computer_opponent"`
	StartedAt        time.Time       `json:"started_at"`
	Board            json.RawMessage `json:"board"`
}

// snapshot 序列化会话
// 模型不支持 Snapshotter 时返回 (nil, nil)，该会话只存在于内存
func (g *GameInstance) snapshot() ([]byte, error) {
	snapshotter, ok := g.model.(Snapshotter)
	if !ok {
		return nil, nil
	}

	board, err := snapshotter.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.Marshal(&instanceSnapshot{
		GameName:         g.cfg.Name,
		InstanceID:       g.ID,
		Players:          g.Players,
		Turn:             g.Turn,
		Status:           g.Status,
		ComputerOpponent: g.ComputerOpponent,
		StartedAt:        g.StartedAt,
		Board:            board,
	})
}

// restoreInstance 从快照重建会话（进程重启后恢复）
func restoreInstance(cfg *GameConfig, roomID string, data []byte) (*GameInstance, error) {
	var snap instanceSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.GameName != cfg.Name {
		return nil, fmt.Errorf("快照属于游戏 %q，当前游戏是 %q", snap.GameName, cfg.Name)
	}

	model, err := cfg.NewModel()
	if err != nil {
		return nil, fmt.Errorf("构造棋盘模型失败: %w", err)
	}
	snapshotter, ok := model.(Snapshotter)
	if !ok {
		return nil, fmt.Errorf("模型不支持快照恢复")
	}
	if err := snapshotter.Restore(snap.Board); err != nil {
		return nil, fmt.Errorf("恢复棋盘状态失败: %w", err)
	}

	g := &GameInstance{
		ID:               snap.InstanceID,
		RoomID:           roomID,
		Players:          snap.Players,
		Turn:             snap.Turn,
		Board:            model.CurrentBoard(),
		Status:           snap.Status,
		ComputerOpponent: snap.ComputerOpponent,
		StartedAt:        snap.StartedAt,
		cfg:              cfg,
		model:            model,
		renderer:         cfg.NewRenderer(),
	}
	if g.ComputerOpponent && cfg.NewComputerPlayer != nil {
		cp, err := cfg.NewComputerPlayer(model)
		if err != nil {
			return nil, fmt.Errorf("构造电脑玩家失败: %w", err)
		}
		g.computer = cp
	}
	return g, nil
}
