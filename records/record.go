package records

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameRecord 一场已结束对局的存档
type GameRecord struct {
	ID        primitive.ObjectID `bson:"_id"`
	RoomID    string             `bson:"room_id"`
	GameType  string             `bson:"game_type"` // 游戏名，如 "Four in a Row"
	Players   []string           `bson:"players"`   // 回合顺序的玩家列表
	Winner    string             `bson:"winner,omitempty"`
	Outcome   string             `bson:"outcome"` // "won" / "draw" / "forfeit"
	StartTime time.Time          `bson:"start_time"`
	EndTime   time.Time          `bson:"end_time"`
	Duration  int                `bson:"duration"` // 对局时长（秒）
	CreatedAt time.Time          `bson:"created_at"`
}

// NewGameRecord 创建对局存档
func NewGameRecord(roomID, gameType string, players []string, winner, outcome string, start, end time.Time) *GameRecord {
	return &GameRecord{
		ID:        primitive.NewObjectID(),
		RoomID:    roomID,
		GameType:  gameType,
		Players:   players,
		Winner:    winner,
		Outcome:   outcome,
		StartTime: start,
		EndTime:   end,
		Duration:  int(end.Sub(start).Seconds()),
		CreatedAt: time.Now(),
	}
}
