package connectfour

import (
	"fmt"
	"strings"

	"gamebot/engine"
)

var tokens = []string{":blue_circle:", ":red_circle:"}

// Renderer 四连对局的消息渲染
type Renderer struct{}

func NewRenderer() engine.Renderer {
	return &Renderer{}
}

func (r *Renderer) RenderBoard(state engine.BoardState) string {
	board, ok := state.(*Board)
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(":one: :two: :three: :four: :five: :six: :seven:\n")
	for row := 0; row < Rows; row++ {
		cells := make([]string, Cols)
		for col := 0; col < Cols; col++ {
			switch board[row][col] {
			case 1:
				cells[col] = tokens[0]
			case 2:
				cells[col] = tokens[1]
			default:
				cells[col] = ":white_circle:"
			}
		}
		sb.WriteString(strings.Join(cells, " "))
		if row < Rows-1 {
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
	col := strings.TrimPrefix(strings.TrimSpace(move), "move ")
	return fmt.Sprintf("**%s** moved in column %s.", playerName, col)
}

func (r *Renderer) StartMessage() string {
	return "Drop your tokens and connect four in a row to win!"
}
