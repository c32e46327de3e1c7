package tictactoe

import (
	"fmt"

	"gamebot/engine"
)

// ComputerPlayer 电脑玩家：能赢则赢，能堵则堵，否则选第一个空格
type ComputerPlayer struct {
	model *Model
}

func NewComputerPlayer(model engine.BoardModel) (engine.ComputerPlayer, error) {
	m, ok := model.(*Model)
	if !ok {
		return nil, fmt.Errorf("tictactoe: unexpected model type %T", model)
	}
	return &ComputerPlayer{model: m}, nil
}

func (c *ComputerPlayer) ComputerMove(playerIndex int) (string, error) {
	myToken := playerIndex + 1
	oppToken := 2 - playerIndex

	if cell, ok := c.completingCell(myToken); ok {
		return fmt.Sprintf("move %d", cell+1), nil
	}
	if cell, ok := c.completingCell(oppToken); ok {
		return fmt.Sprintf("move %d", cell+1), nil
	}
	for cell, v := range c.model.board {
		if v == 0 {
			return fmt.Sprintf("move %d", cell+1), nil
		}
	}
	return "", engine.ErrNoLegalMove
}

// completingCell 找能把某条线补成三连的空格
func (c *ComputerPlayer) completingCell(token int) (int, bool) {
	for _, line := range winLines {
		count, empty := 0, -1
		for _, cell := range line {
			switch c.model.board[cell] {
			case token:
				count++
			case 0:
				empty = cell
			}
		}
		if count == 2 && empty >= 0 {
			return empty, true
		}
	}
	return 0, false
}
