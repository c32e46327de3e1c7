package trivia

import (
	"fmt"
	"strings"

	"gamebot/engine"
)

// Renderer 问答对局的消息渲染
type Renderer struct{}

func NewRenderer() engine.Renderer {
	return &Renderer{}
}

func (r *Renderer) RenderBoard(state engine.BoardState) string {
	s, ok := state.(*State)
	if !ok || s.Question == nil {
		return ""
	}

	ruledOut := func(letter string) bool {
		for _, g := range s.Guessed {
			if g == letter {
				return true
			}
		}
		return false
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Q: %s\n", s.Question.Text))
	for _, letter := range Letters {
		answer, ok := s.Question.Answers[letter]
		if !ok {
			continue
		}
		if ruledOut(letter) {
			sb.WriteString(fmt.Sprintf("* **%s**: ~~%s~~\n", letter, answer))
		} else {
			sb.WriteString(fmt.Sprintf("* **%s**: %s\n", letter, answer))
		}
	}
	sb.WriteString("Answer with `answer <letter>`.")
	return sb.String()
}

func (r *Renderer) PlayerToken(playerIndex int) string {
	return ":bulb:"
}

func (r *Renderer) MoveMessage(playerName, move string) string {
	letter := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(move), "answer "))
	return fmt.Sprintf("**%s** answered **%s**.", playerName, letter)
}

func (r *Renderer) StartMessage() string {
	return "First player to pick the right answer wins!"
}
