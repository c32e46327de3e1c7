package fifteen

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"strings"

	"gamebot/engine"
)

const Size = 4

// Board 4x4 华容道棋盘，0 代表空格，复原态空格在左上角
type Board [Size][Size]int

const adjacentOnly = "You can only move tiles which are adjacent to the blank space."

// Model 数字华容道模型，构造时从复原态随机走合法步打乱
type Model struct {
	board Board
}

func NewModel() (engine.BoardModel, error) {
	m := &Model{board: solvedBoard()}
	m.shuffle(300)
	return m, nil
}

func solvedBoard() Board {
	var b Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b[r][c] = r*Size + c
		}
	}
	return b
}

// shuffle 反复滑动空格邻位，保证打乱后局面可解且非复原态
func (m *Model) shuffle(steps int) {
	for i := 0; i < steps || m.isSolved(); i++ {
		br, bc := m.blank()
		var candidates []int
		for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nr, nc := br+d[0], bc+d[1]
			if nr >= 0 && nr < Size && nc >= 0 && nc < Size {
				candidates = append(candidates, m.board[nr][nc])
			}
		}
		tile := candidates[rand.Intn(len(candidates))]
		m.slide(tile)
	}
}

func (m *Model) blank() (int, int) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if m.board[r][c] == 0 {
				return r, c
			}
		}
	}
	return 0, 0
}

func (m *Model) find(tile int) (int, int, bool) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if m.board[r][c] == tile {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// slide 把与空格相邻的 tile 滑入空格
func (m *Model) slide(tile int) bool {
	tr, tc, ok := m.find(tile)
	if !ok {
		return false
	}
	br, bc := m.blank()
	if abs(tr-br)+abs(tc-bc) != 1 {
		return false
	}
	m.board[br][bc], m.board[tr][tc] = tile, 0
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (m *Model) isSolved() bool {
	return m.board == solvedBoard()
}

func (m *Model) CurrentBoard() engine.BoardState {
	b := m.board
	return &b
}

// parseTiles 从落子文本提取滑块序列
func parseTiles(move string) ([]int, bool) {
	move = strings.TrimPrefix(strings.TrimSpace(move), "move ")
	fields := strings.Fields(move)
	if len(fields) == 0 {
		return nil, false
	}
	tiles := make([]int, 0, len(fields))
	for _, f := range fields {
		tile, err := strconv.Atoi(f)
		if err != nil || tile < 1 || tile > 15 {
			return nil, false
		}
		tiles = append(tiles, tile)
	}
	return tiles, true
}

func (m *Model) ValidateMove(move string) bool {
	_, ok := parseTiles(move)
	return ok
}

// MakeMove 依次滑动给出的滑块，任一滑块不挨着空格则整步拒绝
func (m *Model) MakeMove(move string, playerIndex int, isComputer bool) (engine.BoardState, error) {
	tiles, ok := parseTiles(move)
	if !ok {
		return nil, engine.NewBadMove("Invalid move.")
	}

	trial := *m
	for _, tile := range tiles {
		if !trial.slide(tile) {
			return nil, engine.NewBadMove(adjacentOnly)
		}
	}
	m.board = trial.board
	return m.CurrentBoard(), nil
}

func (m *Model) DetermineGameOver(players []string) string {
	if m.isSolved() {
		return players[0]
	}
	return ""
}

func (m *Model) Snapshot() ([]byte, error) {
	return json.Marshal(m.board)
}

func (m *Model) Restore(data []byte) error {
	return json.Unmarshal(data, &m.board)
}
