package connectfour

import (
	"fmt"
	"math/rand"

	"gamebot/engine"
)

// ComputerPlayer 电脑玩家：优先直接取胜，其次阻断对手，否则随机落子
type ComputerPlayer struct {
	model *Model
	rng   *rand.Rand
}

func NewComputerPlayer(model engine.BoardModel) (engine.ComputerPlayer, error) {
	m, ok := model.(*Model)
	if !ok {
		return nil, fmt.Errorf("connectfour: unexpected model type %T", model)
	}
	return &ComputerPlayer{model: m, rng: rand.New(rand.NewSource(rand.Int63()))}, nil
}

func (c *ComputerPlayer) ComputerMove(playerIndex int) (string, error) {
	legal := c.legalColumns()
	if len(legal) == 0 {
		return "", engine.ErrNoLegalMove
	}

	myToken := playerIndex + 1
	oppToken := 2 - playerIndex

	if col, ok := c.winningColumn(legal, myToken); ok {
		return fmt.Sprintf("move %d", col+1), nil
	}
	if col, ok := c.winningColumn(legal, oppToken); ok {
		return fmt.Sprintf("move %d", col+1), nil
	}

	col := legal[c.rng.Intn(len(legal))]
	return fmt.Sprintf("move %d", col+1), nil
}

func (c *ComputerPlayer) legalColumns() []int {
	var cols []int
	for col := 0; col < Cols; col++ {
		if c.model.dropRow(col) >= 0 {
			cols = append(cols, col)
		}
	}
	return cols
}

// winningColumn 在候选列中找使 token 立即四连的落点
func (c *ComputerPlayer) winningColumn(legal []int, token int) (int, bool) {
	for _, col := range legal {
		row := c.model.dropRow(col)
		c.model.board[row][col] = token
		won := c.model.findWinner() == token
		c.model.board[row][col] = 0
		if won {
			return col, true
		}
	}
	return 0, false
}
