package merels

import (
	"encoding/json"
	"strconv"
	"strings"

	"gamebot/engine"
)

const piecesPerPlayer = 3

// Board 九个交叉点，按 1-9 从左上到右下编号，0 空位
type Board [9]int

// millLines 成三判定线：行、列、对角
var millLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// adjacency 沿线相邻的交叉点：横竖相邻，角与中心沿对角相邻
var adjacency = [9][]int{
	{1, 3, 4},
	{0, 2, 4},
	{1, 4, 5},
	{0, 4, 6},
	{0, 1, 2, 3, 5, 6, 7, 8},
	{2, 4, 8},
	{3, 4, 7},
	{4, 6, 8},
	{4, 5, 7},
}

// Model 三子棋模型：先各摆三子，再沿线移动，先成三者胜
type Model struct {
	board  Board
	placed [2]int
}

func NewModel() (engine.BoardModel, error) {
	return &Model{}, nil
}

func (m *Model) CurrentBoard() engine.BoardState {
	b := m.board
	return &b
}

// parseAction 解析 put <point> 或 move <from> <to>
func parseAction(move string) (verb string, from, to int, ok bool) {
	fields := strings.Fields(strings.TrimSpace(move))
	point := func(s string) (int, bool) {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 9 {
			return 0, false
		}
		return v - 1, true
	}

	switch {
	case len(fields) == 2 && fields[0] == "put":
		p, valid := point(fields[1])
		if !valid {
			return "", 0, 0, false
		}
		return "put", 0, p, true
	case len(fields) == 3 && fields[0] == "move":
		f, validF := point(fields[1])
		t, validT := point(fields[2])
		if !validF || !validT {
			return "", 0, 0, false
		}
		return "move", f, t, true
	}
	return "", 0, 0, false
}

func (m *Model) ValidateMove(move string) bool {
	_, _, _, ok := parseAction(move)
	return ok
}

func (m *Model) MakeMove(move string, playerIndex int, isComputer bool) (engine.BoardState, error) {
	verb, from, to, ok := parseAction(move)
	if !ok {
		return nil, engine.NewBadMove("Invalid move.")
	}

	token := playerIndex + 1
	switch verb {
	case "put":
		if m.placed[playerIndex] >= piecesPerPlayer {
			return nil, engine.NewBadMove("All your pieces are on the board. Move one with `move <from> <to>`.")
		}
		if m.board[to] != 0 {
			return nil, engine.NewBadMove("That point is already taken. Pick an empty point.")
		}
		m.board[to] = token
		m.placed[playerIndex]++
	case "move":
		if m.placed[playerIndex] < piecesPerPlayer {
			return nil, engine.NewBadMove("Place all three of your pieces first with `put <point>`.")
		}
		if m.board[from] != token {
			return nil, engine.NewBadMove("You don't have a piece on that point.")
		}
		if m.board[to] != 0 {
			return nil, engine.NewBadMove("That point is already taken. Pick an empty point.")
		}
		if !isAdjacent(from, to) {
			return nil, engine.NewBadMove("You can only move a piece along a line to an adjacent point.")
		}
		m.board[from] = 0
		m.board[to] = token
	}
	return m.CurrentBoard(), nil
}

func isAdjacent(from, to int) bool {
	for _, n := range adjacency[from] {
		if n == to {
			return true
		}
	}
	return false
}

func (m *Model) DetermineGameOver(players []string) string {
	for _, line := range millLines {
		token := m.board[line[0]]
		if token != 0 && token == m.board[line[1]] && token == m.board[line[2]] {
			return players[token-1]
		}
	}
	return ""
}

// HasLegalMoves 摆子阶段总有空点可摆；走子阶段要求有己方棋子挨着空点
func (m *Model) HasLegalMoves(playerIndex int) bool {
	if m.placed[playerIndex] < piecesPerPlayer {
		return true
	}
	token := playerIndex + 1
	for point, v := range m.board {
		if v != token {
			continue
		}
		for _, n := range adjacency[point] {
			if m.board[n] == 0 {
				return true
			}
		}
	}
	return false
}

type snapshot struct {
	Board  Board  `json:"board"`
	Placed [2]int `json:"placed"`
}

func (m *Model) Snapshot() ([]byte, error) {
	return json.Marshal(&snapshot{Board: m.board, Placed: m.placed})
}

func (m *Model) Restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	m.board = snap.Board
	m.placed = snap.Placed
	return nil
}
