package tictactoe

import (
	"fmt"
	"strings"

	"gamebot/engine"
)

var tokens = []string{":cross_mark:", ":heavy_circle:"}

// Renderer 井字棋对局的消息渲染
type Renderer struct{}

func NewRenderer() engine.Renderer {
	return &Renderer{}
}

var cellNumbers = []string{
	":one:", ":two:", ":three:", ":four:", ":five:",
	":six:", ":seven:", ":eight:", ":nine:",
}

func (r *Renderer) RenderBoard(state engine.BoardState) string {
	board, ok := state.(*Board)
	if !ok {
		return ""
	}

	var sb strings.Builder
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			idx := row*3 + col
			switch board[idx] {
			case 1:
				cells[col] = tokens[0]
			case 2:
				cells[col] = tokens[1]
			default:
				cells[col] = cellNumbers[idx]
			}
		}
		sb.WriteString(strings.Join(cells, " "))
		if row < 2 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (r *Renderer) PlayerToken(playerIndex int) string {
	if playerIndex >= 0 && playerIndex < len(tokens) {
		return tokens[playerIndex]
	}
	return ":question:"
}

func (r *Renderer) MoveMessage(playerName, move string) string {
	cell := strings.TrimPrefix(strings.TrimSpace(move), "move ")
	return fmt.Sprintf("**%s** placed a token on square %s.", playerName, cell)
}

func (r *Renderer) StartMessage() string {
	return "Get three in a row across, down, or diagonally to win!"
}
