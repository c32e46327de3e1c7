package fifteen

import (
	"testing"

	"gamebot/engine"
)

func TestShuffledBoardNotSolved(t *testing.T) {
	model, err := NewModel()
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	m := model.(*Model)
	if m.isSolved() {
		t.Fatal("new board should be shuffled, not solved")
	}

	// 打乱由合法滑动产生，棋盘必须仍是 0-15 的一个排列
	var seen [16]bool
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := m.board[r][c]
			if v < 0 || v > 15 || seen[v] {
				t.Fatalf("invalid board: %v", m.board)
			}
			seen[v] = true
		}
	}
}

func TestSlideAdjacentTile(t *testing.T) {
	m := &Model{board: solvedBoard()}

	// 复原态空格在左上角，1 在其右侧
	if _, err := m.MakeMove("move 1", 0, false); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if m.board[0][0] != 1 || m.board[0][1] != 0 {
		t.Fatalf("tile 1 should have slid into the blank, board=%v", m.board)
	}
}

func TestMultiTileMove(t *testing.T) {
	m := &Model{board: solvedBoard()}

	// 1 滑入左上后，2 与新空格相邻
	if _, err := m.MakeMove("move 1 2", 0, false); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if m.board[0][0] != 1 || m.board[0][1] != 2 || m.board[0][2] != 0 {
		t.Fatalf("unexpected board after multi-tile move: %v", m.board)
	}
}

func TestNonAdjacentTileRejected(t *testing.T) {
	m := &Model{board: solvedBoard()}
	before := m.board

	_, err := m.MakeMove("move 15", 0, false)
	bad, ok := engine.AsBadMove(err)
	if !ok {
		t.Fatalf("expected BadMoveError, got %v", err)
	}
	if bad.Reason != adjacentOnly {
		t.Fatalf("unexpected reason: %q", bad.Reason)
	}
	if m.board != before {
		t.Fatal("rejected move mutated the board")
	}
}

func TestPartialSequenceRejectedAtomically(t *testing.T) {
	m := &Model{board: solvedBoard()}
	before := m.board

	// 第一块合法、第二块不合法，整步都不得生效
	_, err := m.MakeMove("move 1 15", 0, false)
	if _, ok := engine.AsBadMove(err); !ok {
		t.Fatalf("expected BadMoveError, got %v", err)
	}
	if m.board != before {
		t.Fatal("partially applied move sequence")
	}
}

func TestSolvedDetection(t *testing.T) {
	m := &Model{board: solvedBoard()}
	players := []string{"foo@example.com"}

	if got := m.DetermineGameOver(players); got != players[0] {
		t.Fatalf("solved board should declare %q the winner, got %q", players[0], got)
	}

	m.slide(1)
	if got := m.DetermineGameOver(players); got != "" {
		t.Fatalf("unsolved board should not be over, got %q", got)
	}
}
