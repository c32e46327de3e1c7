package chat

import (
	"sort"
	"strings"
)

// 消息类型
const (
	TypeStream  = "stream"  // 频道消息（stream + topic）
	TypePrivate = "private" // 私聊消息
)

// Message 入站聊天消息
// 由聊天平台投递，每条消息触发一次引擎调用
type Message struct {
	SenderEmail string   `json:"sender_email"`
	SenderName  string   `json:"sender_name"`
	Type        string   `json:"type"`
	Stream      string   `json:"stream,omitempty"`
	Topic       string   `json:"topic,omitempty"`
	Recipients  []string `json:"recipients,omitempty"` // 私聊的全部参与者邮箱（含发送者）
	Content     string   `json:"content"`
}

// RoomID 计算消息所属房间的标识
// 同一会话上下文永远得到同一个 ID：
// 频道消息用 stream+topic，私聊用排序后的参与者列表
func (m *Message) RoomID() string {
	if m.Type == TypeStream {
		return "stream:" + m.Stream + "/" + m.Topic
	}

	participants := make([]string, 0, len(m.Recipients)+1)
	participants = append(participants, m.Recipients...)
	if !containsString(participants, m.SenderEmail) {
		participants = append(participants, m.SenderEmail)
	}
	sort.Strings(participants)
	return "private:" + strings.Join(participants, ",")
}

func containsString(data []string, value string) bool {
	for _, v := range data {
		if v == value {
			return true
		}
	}
	return false
}

// Responder 出站消息原语
// 引擎只会"在房间里回复"，不直接接触网络
type Responder interface {
	// Reply 在消息所在房间回复
	Reply(msg *Message, text string) error

	// Send 主动向指定房间发送
	Send(roomID string, text string) error
}
