package chat

import (
	"encoding/json"
	"fmt"
	"sync"

	"gamebot/common/log"
	"gamebot/common/utils"

	"github.com/nats-io/nats.go"
)

// Handler 入站消息处理器，由 GameAdapter 实现
type Handler interface {
	HandleMessage(msg *Message, responder Responder)
}

// Outbound 出站消息，由中继投递回聊天平台
type Outbound struct {
	RoomID string `json:"room_id"`
	Text   string `json:"text"`
}

// NatsTransport 基于 NATS 的聊天中继
// 平台侧的中继进程把聊天消息发布到 chat.bot.<name>.inbound，
// 机器人的回复发布到 chat.bot.<name>.outbound，由中继送回房间。
// 同一订阅内消息串行投递，天然保证单机器人的处理顺序。
type NatsTransport struct {
	botName string
	conn    *nats.Conn
	sub     *nats.Subscription
	handler Handler

	// 按发送者限流，防止单个用户刷屏拖垮机器人
	limiters  map[string]*utils.RateLimiter
	limiterMu sync.Mutex
}

func NewNatsTransport(botName string, handler Handler) *NatsTransport {
	return &NatsTransport{
		botName:  botName,
		handler:  handler,
		limiters: make(map[string]*utils.RateLimiter),
	}
}

func (t *NatsTransport) inboundSubject() string {
	return fmt.Sprintf("chat.bot.%s.inbound", t.botName)
}

func (t *NatsTransport) outboundSubject() string {
	return fmt.Sprintf("chat.bot.%s.outbound", t.botName)
}

// Run 连接 NATS 并开始订阅
func (t *NatsTransport) Run(url string) error {
	log.Info("聊天中继正在启动, bot:%s url:%s", t.botName, url)
	var err error
	t.conn, err = nats.Connect(url)
	if err != nil {
		log.Error("nats 连接错误,err:%v", err)
		return err
	}

	t.sub, err = t.conn.Subscribe(t.inboundSubject(), t.onInbound)
	if err != nil {
		log.Error("nats sub err:%v", err)
		return err
	}

	log.Info("聊天中继启动成功, bot:%s subject:%s", t.botName, t.inboundSubject())
	return nil
}

func (t *NatsTransport) onInbound(natsMsg *nats.Msg) {
	var msg Message
	if err := json.Unmarshal(natsMsg.Data, &msg); err != nil {
		log.Warn("入站消息解析失败: %v", err)
		return
	}
	// 没有发送者的消息无法归属房间，只能丢弃；
	// 空内容要照常投递，引擎会回帮助文本
	if msg.SenderEmail == "" {
		return
	}

	if !t.allowSender(msg.SenderEmail) {
		log.Warn("发送者 %s 触发限流", msg.SenderEmail)
		if err := t.Reply(&msg, "You're sending messages too quickly. Please slow down."); err != nil {
			log.Warn("限流提示发送失败: %v", err)
		}
		return
	}

	t.handler.HandleMessage(&msg, t)
}

// allowSender 发送者级别的令牌桶限流
func (t *NatsTransport) allowSender(sender string) bool {
	t.limiterMu.Lock()
	limiter, exists := t.limiters[sender]
	if !exists {
		limiter = utils.NewRateLimiter(2, 5)
		t.limiters[sender] = limiter
	}
	t.limiterMu.Unlock()

	return limiter.Allow()
}

// Reply 在消息所在房间回复
func (t *NatsTransport) Reply(msg *Message, text string) error {
	return t.Send(msg.RoomID(), text)
}

// Send 主动向指定房间发送
func (t *NatsTransport) Send(roomID string, text string) error {
	if t.conn == nil || !t.conn.IsConnected() {
		return fmt.Errorf("nats 未连接")
	}

	data, err := json.Marshal(&Outbound{RoomID: roomID, Text: text})
	if err != nil {
		return err
	}
	return t.conn.Publish(t.outboundSubject(), data)
}

// Close 关闭连接
func (t *NatsTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	if t.sub != nil {
		_ = t.sub.Unsubscribe()
	}
	t.conn.Close()
	log.Info("聊天中继已关闭, bot:%s", t.botName)
	return nil
}
