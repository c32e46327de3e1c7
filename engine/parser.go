package engine

import (
	"regexp"
	"strings"
)

// MoveParser 把自由文本转成规范化的落子串
// 每个游戏用一条正则描述可接受的文本形式
type MoveParser struct {
	pattern *regexp.Regexp
}

func NewMoveParser(pattern *regexp.Regexp) *MoveParser {
	return &MoveParser{pattern: pattern}
}

// Parse 匹配落子文本
// 匹配成功返回整条规范化落子串（去掉首尾空白、统一小写），
// 不匹配返回 ErrUnparsableMove，解析失败不会改变任何状态
func (p *MoveParser) Parse(text string) (string, error) {
	move := strings.ToLower(strings.TrimSpace(text))
	if move == "" {
		return "", ErrUnparsableMove
	}

	m := p.pattern.FindStringSubmatch(move)
	if m == nil {
		return "", ErrUnparsableMove
	}
	return m[0], nil
}

// mentionPattern 机器人被 @ 时的前缀，如 "@**four in a row bot** move 3"
var mentionPattern = regexp.MustCompile(`^@(?:\*\*[^*]+\*\*|\S+)\s+`)

// StripMention 去掉消息开头的机器人提及
func StripMention(content string) string {
	content = strings.TrimSpace(content)
	return strings.TrimSpace(mentionPattern.ReplaceAllString(content, ""))
}
