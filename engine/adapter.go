package engine

import (
	"fmt"
	"strings"
	"time"

	"gamebot/chat"
	"gamebot/common/log"
	"gamebot/storage"
)

// replyFunc 向当前房间回一条消息
type replyFunc func(text string)

// GameOutcome 对局结束时交给记录器的结果
type GameOutcome struct {
	RoomID    string
	GameName  string
	Players   []string
	Winner    string // 获胜者名字，平局时为空
	Outcome   string // "won" / "draw" / "forfeit"
	StartedAt time.Time
	EndedAt   time.Time
}

// Recorder 对局记录器，结束的对局交给它落库
// 实现必须自己消化错误，不允许影响消息处理
type Recorder interface {
	RecordFinished(outcome *GameOutcome)
}

// GameAdapter 游戏机器人的顶层门面
// 把棋盘模型、渲染器、落子语法和人数策略绑成一个可注册到
// 聊天平台的消息处理器；每条入站消息经这里路由到匹配协议
// 或落子管线。
type GameAdapter struct {
	cfg      *GameConfig
	registry *SessionRegistry
	parser   *MoveParser
	recorder Recorder // 可以为 nil
}

// NewGameAdapter 创建门面
// store、recorder 均可为 nil
func NewGameAdapter(cfg *GameConfig, store storage.KVStore, recorder Recorder) *GameAdapter {
	return &GameAdapter{
		cfg:      cfg,
		registry: NewSessionRegistry(cfg, store),
		parser:   NewMoveParser(cfg.MoveRegex),
		recorder: recorder,
	}
}

// Config 游戏静态配置
func (a *GameAdapter) Config() *GameConfig {
	return a.cfg
}

// Registry 会话注册表（负载监控使用）
func (a *GameAdapter) Registry() *SessionRegistry {
	return a.registry
}

// HandleMessage 处理一条入站消息
// 整个处理过程在房间的临界区内执行；模型或渲染器的意外
// panic 在这里兜底，回一条通用道歉而不是拖垮整个进程。
func (a *GameAdapter) HandleMessage(msg *chat.Message, responder chat.Responder) {
	roomID := msg.RoomID()
	reply := func(text string) {
		if err := responder.Reply(msg, text); err != nil {
			log.Error("房间 %s 回复失败: %v", roomID, err)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("房间 %s 消息处理 panic: %v", roomID, r)
			reply("Sorry, something went wrong on my end. Please try again.")
		}
	}()

	a.registry.WithRoom(roomID, func() {
		a.dispatch(roomID, msg, reply)
	})
}

// dispatch 命令路由
// 命令大小写不敏感；识别不了的文本一律按候选落子处理，
// 对局存在时绝不安静地丢消息
func (a *GameAdapter) dispatch(roomID string, msg *chat.Message, reply replyFunc) {
	content := StripMention(msg.Content)
	command := strings.ToLower(strings.TrimSpace(content))

	switch {
	case command == "" || command == "help":
		reply(a.helpText())
	case command == "rules":
		reply(a.cfg.RulesText)
	case command == "start":
		a.handleStart(roomID, msg, false, "", reply)
	case command == "start with computer":
		a.handleStart(roomID, msg, true, "", reply)
	case strings.HasPrefix(command, "start with "):
		opponent := strings.TrimSpace(content[len("start with "):])
		a.handleStart(roomID, msg, false, opponent, reply)
	case command == "join":
		a.handleJoin(roomID, msg, reply)
	case command == "cancel game":
		a.handleCancel(roomID, reply)
	case command == "quit":
		a.handleQuit(roomID, msg, reply)
	default:
		a.handleMove(roomID, msg, content, reply)
	}
}

// handleStart 发起对局
func (a *GameAdapter) handleStart(roomID string, msg *chat.Message, withComputer bool, opponent string, reply replyFunc) {
	if withComputer && !a.cfg.SupportsComputer {
		reply(fmt.Sprintf("Sorry, %s does not support a computer opponent.", a.cfg.Name))
		return
	}

	g, err := a.registry.StartGame(roomID, msg.SenderEmail, withComputer)
	if err != nil {
		if err == ErrGameAlreadyActive {
			reply("A game is already running in this room.")
			return
		}
		// 模型构造失败（如外部题库不可用），房间保持无对局状态
		log.Error("房间 %s 创建对局失败: %v", roomID, err)
		reply(fmt.Sprintf("Sorry, I was unable to start a game of %s. Please try again later.", a.cfg.Name))
		return
	}

	if g.Status == StatusActive {
		a.announceStart(g, reply)
		return
	}

	invitation := fmt.Sprintf("**%s** started a game of **%s**! Send `join` to play.", msg.SenderName, a.cfg.Name)
	if opponent != "" {
		invitation = fmt.Sprintf("**%s** challenged %s to a game of **%s**! Send `join` to accept.",
			msg.SenderName, opponent, a.cfg.Name)
	}
	reply(invitation)
}

// handleJoin 加入对局
func (a *GameAdapter) handleJoin(roomID string, msg *chat.Message, reply replyFunc) {
	g, err := a.registry.Join(roomID, msg.SenderEmail)
	if err != nil {
		switch err {
		case ErrNotJoinable:
			reply("There is no game to join in this room. Send `start` to begin one.")
		case ErrAlreadyJoined:
			reply("You have already joined this game.")
		case ErrGameFull:
			reply("Sorry, the game is full.")
		default:
			reply("Sorry, you cannot join this game right now.")
		}
		return
	}

	if g.Status == StatusActive {
		a.announceStart(g, reply)
		return
	}
	reply(fmt.Sprintf("**%s** joined the game. Waiting for %d more player(s).",
		msg.SenderName, a.cfg.MinPlayers-len(g.Players)))
}

// handleCancel 取消尚未开始的对局
// 房间没有对局时是规格允许的唯一一处安静无操作
func (a *GameAdapter) handleCancel(roomID string, reply replyFunc) {
	g, cancelled := a.registry.Cancel(roomID)
	if cancelled {
		reply(fmt.Sprintf("The game of %s has been cancelled.", a.cfg.Name))
		return
	}
	if g != nil {
		reply("The game is already in progress. Send `quit` to end it.")
	}
}

// handleQuit 弃权退出，剩下的玩家不战而胜
func (a *GameAdapter) handleQuit(roomID string, msg *chat.Message, reply replyFunc) {
	g, exists := a.registry.Lookup(roomID)
	if !exists {
		reply("There is no game in progress in this room.")
		return
	}
	if g.Status != StatusActive {
		reply("The game has not started yet. Send `cancel game` instead.")
		return
	}
	if g.playerIndex(msg.SenderEmail) < 0 {
		reply("You are not playing this game.")
		return
	}

	remaining := make([]string, 0, len(g.Players)-1)
	for _, p := range g.Players {
		if p != msg.SenderEmail {
			remaining = append(remaining, p)
		}
	}

	g.Status = StatusFinished
	winner := strings.Join(remaining, ", ")
	reply(fmt.Sprintf("**%s** quit the game. **%s** wins by forfeit! :trophy:", msg.SenderName, winner))
	a.record(g, winner, "forfeit")
	a.registry.Remove(roomID)
}

// handleMove 落子管线：解析 -> 资格和回合校验 -> 模型执行
// 任何一步失败都只产生一条解释性回复，状态不变
func (a *GameAdapter) handleMove(roomID string, msg *chat.Message, content string, reply replyFunc) {
	g, exists := a.registry.Lookup(roomID)
	if !exists {
		// 没有对局也不安静丢消息：能解析就提示先开局，不能解析给用法
		if _, err := a.parser.Parse(content); err != nil {
			reply(a.helpText())
			return
		}
		reply(fmt.Sprintf("There is no game in progress in this room. Send `start` to begin a game of %s.", a.cfg.Name))
		return
	}

	if g.Status == StatusForming {
		reply("The game has not started yet. Waiting for players to join.")
		return
	}

	move, err := a.parser.Parse(content)
	if err != nil {
		reply("Sorry, I don't understand that move. " + a.cfg.MoveHelp)
		return
	}

	idx := g.playerIndex(msg.SenderEmail)
	if idx < 0 {
		reply("You are not playing this game.")
		return
	}

	if err := g.applyMove(move, idx, false); err != nil {
		switch {
		case err == ErrNotYourTurn:
			reply(fmt.Sprintf("It's not your turn. Waiting for **%s** to move.", g.currentPlayer()))
		default:
			if badMove, ok := AsBadMove(err); ok {
				reply(badMove.Reason)
			} else {
				reply("Sorry, that move cannot be made.")
			}
		}
		return
	}

	a.afterMove(g, msg.SenderName, move, reply)
	a.driveComputer(g, reply)
}

// afterMove 成功落子后的公共流程
// 播报落子和棋盘，判定结束，必要时跳过无子可落的玩家
func (a *GameAdapter) afterMove(g *GameInstance, playerName, move string, reply replyFunc) {
	lines := []string{
		g.renderer.MoveMessage(playerName, move),
		g.renderer.RenderBoard(g.Board),
	}

	if result := g.gameOverResult(); result != "" {
		reply(strings.Join(lines, "\n"))
		a.finish(g, result, reply)
		return
	}

	g.advanceTurn()
	if !g.nextPlayerHasMoves() {
		lines = append(lines, fmt.Sprintf("**%s** has no legal moves. Switching turn.", g.currentPlayer()))
		g.advanceTurn()
		if !g.nextPlayerHasMoves() {
			// 所有人都无子可落而模型未报结束，按平局收场
			reply(strings.Join(lines, "\n"))
			a.finish(g, "draw", reply)
			return
		}
	}

	lines = append(lines, fmt.Sprintf("It's **%s**'s turn (%s).",
		g.currentPlayer(), g.renderer.PlayerToken(g.Turn)))
	reply(strings.Join(lines, "\n"))
	a.registry.Persist(g)
}

// skipTurn 宣布换人并跳过当前回合（电脑无子可落时使用）
func (a *GameAdapter) skipTurn(g *GameInstance, reply replyFunc) {
	reply(fmt.Sprintf("**%s** has no legal moves. Switching turn.", g.currentPlayer()))
	g.advanceTurn()
	a.registry.Persist(g)
}

// finish 宣布结果并销毁实例
// 每场对局只广播一次结果；销毁后同房间可以立即重新开局
func (a *GameAdapter) finish(g *GameInstance, result string, reply replyFunc) {
	g.Status = StatusFinished
	if result == "draw" {
		reply("It's a draw! Good game everyone.")
		a.record(g, "", "draw")
	} else {
		reply(fmt.Sprintf("**%s** wins! :tada:", result))
		a.record(g, result, "won")
	}
	a.registry.Remove(g.RoomID)
}

// announceStart 对局转入 Active 时的开局播报
func (a *GameAdapter) announceStart(g *GameInstance, reply replyFunc) {
	lines := []string{
		g.renderer.StartMessage(),
		g.renderer.RenderBoard(g.Board),
		fmt.Sprintf("It's **%s**'s turn (%s). %s",
			g.currentPlayer(), g.renderer.PlayerToken(g.Turn), a.cfg.MoveHelp),
	}
	reply(strings.Join(lines, "\n"))
	a.registry.Persist(g)
}

func (a *GameAdapter) record(g *GameInstance, winner, outcome string) {
	if a.recorder == nil {
		return
	}
	a.recorder.RecordFinished(&GameOutcome{
		RoomID:    g.RoomID,
		GameName:  a.cfg.Name,
		Players:   g.Players,
		Winner:    winner,
		Outcome:   outcome,
		StartedAt: g.StartedAt,
		EndedAt:   time.Now(),
	})
}

func (a *GameAdapter) helpText() string {
	return fmt.Sprintf(`**%s**
- `+"`start`"+` — start a new game
- `+"`start with computer`"+` — play against me (if supported)
- `+"`join`"+` — join a game waiting for players
- `+"`cancel game`"+` — cancel a game that has not started
- `+"`quit`"+` — forfeit a running game
- `+"`rules`"+` — how to play
%s`, a.cfg.Name, a.cfg.MoveHelp)
}
