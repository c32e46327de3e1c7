package connectfour

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gamebot/engine"
)

const (
	Rows = 6
	Cols = 7
)

// Board 6x7 棋盘，0 空位，1/2 对应玩家索引 0/1 的棋子
type Board [Rows][Cols]int

// Model 四连棋盘模型
type Model struct {
	board     Board
	moveCount int
}

func NewModel() (engine.BoardModel, error) {
	return &Model{}, nil
}

func (m *Model) CurrentBoard() engine.BoardState {
	b := m.board
	return &b
}

// parseColumn 从落子文本提取列号（0 基）
func parseColumn(move string) (int, bool) {
	move = strings.TrimPrefix(strings.TrimSpace(move), "move ")
	col, err := strconv.Atoi(strings.TrimSpace(move))
	if err != nil || col < 1 || col > Cols {
		return 0, false
	}
	return col - 1, true
}

func (m *Model) ValidateMove(move string) bool {
	_, ok := parseColumn(move)
	return ok
}

// MakeMove 在指定列落子，棋子落到该列最低的空行
func (m *Model) MakeMove(move string, playerIndex int, isComputer bool) (engine.BoardState, error) {
	col, ok := parseColumn(move)
	if !ok {
		return nil, engine.NewBadMove("Invalid move.")
	}

	row := m.dropRow(col)
	if row < 0 {
		return nil, engine.NewBadMove(fmt.Sprintf("Column %d is full. Pick another column.", col+1))
	}

	m.board[row][col] = playerIndex + 1
	m.moveCount++
	return m.CurrentBoard(), nil
}

// dropRow 该列最低的空行，满列返回 -1
func (m *Model) dropRow(col int) int {
	for row := Rows - 1; row >= 0; row-- {
		if m.board[row][col] == 0 {
			return row
		}
	}
	return -1
}

// DetermineGameOver 判定四连或平局
func (m *Model) DetermineGameOver(players []string) string {
	if token := m.findWinner(); token > 0 {
		return players[token-1]
	}
	if m.moveCount >= Rows*Cols {
		return "draw"
	}
	return ""
}

// findWinner 扫描四个方向的四连
func (m *Model) findWinner() int {
	dirs := [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			token := m.board[r][c]
			if token == 0 {
				continue
			}
			for _, d := range dirs {
				count := 1
				nr, nc := r+d[0], c+d[1]
				for nr >= 0 && nr < Rows && nc >= 0 && nc < Cols && m.board[nr][nc] == token {
					count++
					if count >= 4 {
						return token
					}
					nr += d[0]
					nc += d[1]
				}
			}
		}
	}
	return 0
}

type snapshot struct {
	Board     Board `json:"board"`
	MoveCount int   `json:"move_count"`
}

func (m *Model) Snapshot() ([]byte, error) {
	return json.Marshal(&snapshot{Board: m.board, MoveCount: m.moveCount})
}

func (m *Model) Restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	m.board = snap.Board
	m.moveCount = snap.MoveCount
	return nil
}
