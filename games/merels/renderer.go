package merels

import (
	"fmt"
	"strings"

	"gamebot/engine"
)

var tokens = []string{":black_circle:", ":white_circle:"}

// Renderer 三子棋对局的消息渲染
type Renderer struct{}

func NewRenderer() engine.Renderer {
	return &Renderer{}
}

func (r *Renderer) RenderBoard(state engine.BoardState) string {
	board, ok := state.(*Board)
	if !ok {
		return ""
	}

	cell := func(idx int) string {
		switch board[idx] {
		case 1:
			return "X"
		case 2:
			return "O"
		default:
			return fmt.Sprintf("%d", idx+1)
		}
	}

	var sb strings.Builder
	sb.WriteString("```\n")
	sb.WriteString(fmt.Sprintf("%s---%s---%s\n", cell(0), cell(1), cell(2)))
	sb.WriteString("| \\ | / |\n")
	sb.WriteString(fmt.Sprintf("%s---%s---%s\n", cell(3), cell(4), cell(5)))
	sb.WriteString("| / | \\ |\n")
	sb.WriteString(fmt.Sprintf("%s---%s---%s\n", cell(6), cell(7), cell(8)))
	sb.WriteString("```")
	return sb.String()
}

func (r *Renderer) PlayerToken(playerIndex int) string {
	if playerIndex >= 0 && playerIndex < len(tokens) {
		return tokens[playerIndex]
	}
	return ":question:"
}

func (r *Renderer) MoveMessage(playerName, move string) string {
	return fmt.Sprintf("**%s** played `%s`.", playerName, strings.TrimSpace(move))
}

func (r *Renderer) StartMessage() string {
	return "Place your three pieces with `put <point>`, then slide them along the lines. Three in a row wins!"
}
