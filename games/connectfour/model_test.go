package connectfour

import (
	"testing"

	"gamebot/engine"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	model, err := NewModel()
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return model.(*Model)
}

func TestDropAndGravity(t *testing.T) {
	m := newTestModel(t)

	if _, err := m.MakeMove("move 4", 0, false); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if m.board[Rows-1][3] != 1 {
		t.Fatalf("expected token at bottom of column 4, board=%v", m.board)
	}

	if _, err := m.MakeMove("4", 1, false); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if m.board[Rows-2][3] != 2 {
		t.Fatalf("expected second token stacked above first, board=%v", m.board)
	}
}

func TestFullColumnRejected(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < Rows; i++ {
		if _, err := m.MakeMove("1", i%2, false); err != nil {
			t.Fatalf("fill move %d: %v", i, err)
		}
	}

	_, err := m.MakeMove("1", 0, false)
	bad, ok := engine.AsBadMove(err)
	if !ok {
		t.Fatalf("expected BadMoveError, got %v", err)
	}
	if bad.Reason == "" {
		t.Fatal("expected a reason for the rejected move")
	}
}

func TestHorizontalWin(t *testing.T) {
	m := newTestModel(t)
	players := []string{"foo@example.com", "bar@example.com"}

	// 玩家 0 占 1-4 列底行，玩家 1 垫在 1-3 列
	for _, mv := range []struct {
		col    string
		player int
	}{
		{"1", 0}, {"1", 1},
		{"2", 0}, {"2", 1},
		{"3", 0}, {"3", 1},
	} {
		if _, err := m.MakeMove(mv.col, mv.player, false); err != nil {
			t.Fatalf("MakeMove %s: %v", mv.col, err)
		}
		if got := m.DetermineGameOver(players); got != "" {
			t.Fatalf("premature game over: %q", got)
		}
	}
	if _, err := m.MakeMove("4", 0, false); err != nil {
		t.Fatalf("winning move: %v", err)
	}
	if got := m.DetermineGameOver(players); got != players[0] {
		t.Fatalf("expected %q to win, got %q", players[0], got)
	}
}

func TestDiagonalWin(t *testing.T) {
	m := newTestModel(t)
	players := []string{"foo@example.com", "bar@example.com"}

	// 手工搭出一条左下到右上的对角线
	m.board[5][0] = 1
	m.board[5][1], m.board[4][1] = 2, 1
	m.board[5][2], m.board[4][2], m.board[3][2] = 2, 2, 1
	m.board[5][3], m.board[4][3], m.board[3][3], m.board[2][3] = 2, 2, 2, 1

	if got := m.DetermineGameOver(players); got != players[0] {
		t.Fatalf("expected diagonal win for %q, got %q", players[0], got)
	}
}

func TestComputerTakesWinningColumn(t *testing.T) {
	m := newTestModel(t)
	m.board[5][0], m.board[5][1], m.board[5][2] = 2, 2, 2

	cp, err := NewComputerPlayer(m)
	if err != nil {
		t.Fatalf("NewComputerPlayer: %v", err)
	}
	move, err := cp.ComputerMove(1)
	if err != nil {
		t.Fatalf("ComputerMove: %v", err)
	}
	if move != "move 4" {
		t.Fatalf("expected the computer to complete the row with move 4, got %q", move)
	}
}

func TestComputerBlocksOpponent(t *testing.T) {
	m := newTestModel(t)
	m.board[5][3], m.board[5][4], m.board[5][5] = 1, 1, 1

	cp, err := NewComputerPlayer(m)
	if err != nil {
		t.Fatalf("NewComputerPlayer: %v", err)
	}
	move, err := cp.ComputerMove(1)
	if err != nil {
		t.Fatalf("ComputerMove: %v", err)
	}
	if move != "move 3" && move != "move 7" {
		t.Fatalf("expected the computer to block column 3 or 7, got %q", move)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := newTestModel(t)
	for _, col := range []string{"1", "2", "3"} {
		if _, err := m.MakeMove(col, 0, false); err != nil {
			t.Fatalf("MakeMove %s: %v", col, err)
		}
	}

	data, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored := newTestModel(t)
	if err := restored.Restore(data); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.board != m.board || restored.moveCount != m.moveCount {
		t.Fatal("restored model does not match original")
	}
}
