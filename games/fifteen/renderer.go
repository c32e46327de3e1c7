package fifteen

import (
	"fmt"
	"strings"

	"gamebot/engine"
)

// Renderer 华容道对局的消息渲染
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
	for row := 0; row < Size; row++ {
		cells := make([]string, Size)
		for col := 0; col < Size; col++ {
			if board[row][col] == 0 {
				cells[col] = "[  ]"
			} else {
				cells[col] = fmt.Sprintf("[%2d]", board[row][col])
			}
		}
		sb.WriteString(strings.Join(cells, " "))
		if row < Size-1 {
			sb.WriteString("\n")
		}
	}
	return fmt.Sprintf("```\n%s\n```", sb.String())
}

func (r *Renderer) PlayerToken(playerIndex int) string {
	return ":jigsaw:"
}

func (r *Renderer) MoveMessage(playerName, move string) string {
	tiles := strings.TrimPrefix(strings.TrimSpace(move), "move ")
	return fmt.Sprintf("**%s** moved tile(s) %s.", playerName, tiles)
}

func (r *Renderer) StartMessage() string {
	return "Slide the tiles until they are in order, with the blank in the top left corner!"
}
