package tictactoe

import (
	"encoding/json"
	"strconv"
	"strings"

	"gamebot/engine"
)

// Board 九格棋盘，按 1-9 从左上到右下编号，0 空位
type Board [9]int

// winLines 三连判定线：行、列、对角
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Model 井字棋盘模型
type Model struct {
	board Board
}

func NewModel() (engine.BoardModel, error) {
	return &Model{}, nil
}

func (m *Model) CurrentBoard() engine.BoardState {
	b := m.board
	return &b
}

// parseCell 从落子文本提取格号（0 基）
func parseCell(move string) (int, bool) {
	move = strings.TrimPrefix(strings.TrimSpace(move), "move ")
	cell, err := strconv.Atoi(strings.TrimSpace(move))
	if err != nil || cell < 1 || cell > 9 {
		return 0, false
	}
	return cell - 1, true
}

func (m *Model) ValidateMove(move string) bool {
	cell, ok := parseCell(move)
	return ok && m.board[cell] == 0
}

func (m *Model) MakeMove(move string, playerIndex int, isComputer bool) (engine.BoardState, error) {
	cell, ok := parseCell(move)
	if !ok {
		return nil, engine.NewBadMove("Invalid move.")
	}
	if m.board[cell] != 0 {
		return nil, engine.NewBadMove("That space is already filled. Pick an empty square.")
	}
	m.board[cell] = playerIndex + 1
	return m.CurrentBoard(), nil
}

func (m *Model) DetermineGameOver(players []string) string {
	for _, line := range winLines {
		token := m.board[line[0]]
		if token != 0 && token == m.board[line[1]] && token == m.board[line[2]] {
			return players[token-1]
		}
	}
	for _, v := range m.board {
		if v == 0 {
			return ""
		}
	}
	return "draw"
}

func (m *Model) Snapshot() ([]byte, error) {
	return json.Marshal(m.board)
}

func (m *Model) Restore(data []byte) error {
	return json.Unmarshal(data, &m.board)
}
