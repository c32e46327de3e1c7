package records

import (
	"context"
	"time"

	"gamebot/common/database"
	"gamebot/common/log"
	"gamebot/engine"
)

const collectionName = "game_records"

// Repository 对局存档仓储（mongo 后端）
// 实现 engine.Recorder，落库失败只记日志，不影响消息处理
type Repository struct {
	mongo *database.MongoManager
}

func NewRepository(mongo *database.MongoManager) *Repository {
	return &Repository{mongo: mongo}
}

// RecordFinished 保存一场结束的对局
func (r *Repository) RecordFinished(outcome *engine.GameOutcome) {
	record := NewGameRecord(outcome.RoomID, outcome.GameName, outcome.Players,
		outcome.Winner, outcome.Outcome, outcome.StartedAt, outcome.EndedAt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.save(ctx, record); err != nil {
		log.Error("保存对局存档失败: room=%s game=%s err=%v", outcome.RoomID, outcome.GameName, err)
		return
	}
	log.Info("对局存档已保存: room=%s game=%s outcome=%s", outcome.RoomID, outcome.GameName, outcome.Outcome)
}

func (r *Repository) save(ctx context.Context, record *GameRecord) error {
	collection := r.mongo.Db.Collection(collectionName)
	_, err := collection.InsertOne(ctx, record)
	return err
}
