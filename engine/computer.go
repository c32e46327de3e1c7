package engine

import (
	"errors"

	"gamebot/common/log"
)

// driveComputer 电脑回合的同步驱动循环
// 人类落子处理完后立即在同一次消息处理调用内执行，
// 直到重新轮到人类或对局结束。电脑产出的落子文本走和
// 人类完全相同的解析和校验管线，保证两条出站消息的顺序：
// 先人类的结果，后电脑的结果。
func (a *GameAdapter) driveComputer(g *GameInstance, reply replyFunc) {
	for g.Status == StatusActive && g.isComputerTurn() {
		if g.computer == nil {
			log.Error("房间 %s 轮到电脑但没有电脑玩家", g.RoomID)
			return
		}

		moveText, err := g.computer.ComputerMove(g.Turn)
		if err != nil {
			if errors.Is(err, ErrNoLegalMove) {
				// 电脑无子可落，和人类的同类情形走同一条规则：
				// 模型没报结束就宣布换人
				a.skipTurn(g, reply)
				continue
			}
			log.Error("房间 %s 电脑走子失败: %v", g.RoomID, err)
			reply("Sorry, the computer was unable to make a move.")
			return
		}

		move, err := a.parser.Parse(moveText)
		if err != nil {
			// 电脑产出的文本必须符合本游戏的语法，否则是实现缺陷
			log.Error("房间 %s 电脑产出不可解析的落子 %q", g.RoomID, moveText)
			reply("Sorry, the computer was unable to make a move.")
			return
		}

		if err := g.applyMove(move, g.Turn, true); err != nil {
			log.Error("房间 %s 电脑落子 %q 被模型拒绝: %v", g.RoomID, move, err)
			reply("Sorry, the computer was unable to make a move.")
			return
		}

		a.afterMove(g, g.cfg.BotName, move, reply)
	}
}
