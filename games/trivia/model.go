package trivia

import (
	"encoding/json"
	"strings"

	"gamebot/engine"
)

// State 当前题面与已排除的选项
type State struct {
	Question *Question `json:"question"`
	Guessed  []string  `json:"guessed"`
	Scored   int       `json:"scored"`
}

// Model 抢答问答模型：轮流作答，先答对者胜
type Model struct {
	state State
}

// NewModelWithSource 取题失败时拒绝创建对局
func NewModelWithSource(source QuestionSource) (engine.BoardModel, error) {
	q, err := source.Fetch()
	if err != nil {
		return nil, err
	}
	return &Model{state: State{Question: q, Scored: -1}}, nil
}

func (m *Model) CurrentBoard() engine.BoardState {
	s := m.state
	s.Guessed = append([]string(nil), m.state.Guessed...)
	return &s
}

// parseLetter 从作答文本提取选项字母
func parseLetter(move string) (string, bool) {
	move = strings.TrimSpace(move)
	move = strings.TrimPrefix(move, "answer ")
	move = strings.TrimSpace(move)
	for _, l := range Letters {
		if move == l {
			return l, true
		}
	}
	return "", false
}

// ValidateMove 只做语法预检
// 已排除选项的拒绝属于语义判断，由 MakeMove 带原因报告
func (m *Model) ValidateMove(move string) bool {
	_, ok := parseLetter(move)
	return ok
}

func (m *Model) MakeMove(move string, playerIndex int, isComputer bool) (engine.BoardState, error) {
	letter, ok := parseLetter(move)
	if !ok {
		return nil, engine.NewBadMove("Invalid answer.")
	}
	for _, g := range m.state.Guessed {
		if g == letter {
			return nil, engine.NewBadMove("That answer has already been ruled out. Try another one.")
		}
	}

	if letter == m.state.Question.Correct {
		m.state.Scored = playerIndex
	} else {
		m.state.Guessed = append(m.state.Guessed, letter)
	}
	return m.CurrentBoard(), nil
}

func (m *Model) DetermineGameOver(players []string) string {
	if m.state.Scored >= 0 && m.state.Scored < len(players) {
		return players[m.state.Scored]
	}
	return ""
}

func (m *Model) Snapshot() ([]byte, error) {
	return json.Marshal(&m.state)
}

func (m *Model) Restore(data []byte) error {
	return json.Unmarshal(data, &m.state)
}
