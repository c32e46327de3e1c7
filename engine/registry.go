package engine

import (
	"errors"
	"sync"

	"gamebot/common/log"
	"gamebot/storage"
)

// SessionRegistry 会话注册表
// 维护房间到对局实例的映射，保证每个房间同时最多一场未结束的对局。
// 同一房间的所有操作在房间级互斥锁内串行执行；
// 不同房间互不阻塞（没有覆盖全部房间的全局锁）。
type SessionRegistry struct {
	cfg       *GameConfig
	instances map[string]*GameInstance // roomID -> instance
	locks     map[string]*sync.Mutex   // roomID -> 房间锁
	mu        sync.Mutex               // 只保护两张 map 的读写，不覆盖房间操作
	store     storage.KVStore          // 可以为 nil（纯内存运行）
}

// NewSessionRegistry 创建注册表
// store 为 nil 时会话不做持久化
func NewSessionRegistry(cfg *GameConfig, store storage.KVStore) *SessionRegistry {
	return &SessionRegistry{
		cfg:       cfg,
		instances: make(map[string]*GameInstance),
		locks:     make(map[string]*sync.Mutex),
		store:     store,
	}
}

// WithRoom 在房间的临界区内执行 fn
// 同一房间的创建、加入、落子、退出都必须经过这里
func (r *SessionRegistry) WithRoom(roomID string, fn func()) {
	lock := r.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()
	fn()
}

func (r *SessionRegistry) roomLock(roomID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, exists := r.locks[roomID]
	if !exists {
		lock = &sync.Mutex{}
		r.locks[roomID] = lock
	}
	return lock
}

// Lookup 查找房间的对局
// 内存中没有时尝试从持久化快照恢复（进程重启后的会话续命）
func (r *SessionRegistry) Lookup(roomID string) (*GameInstance, bool) {
	r.mu.Lock()
	g, exists := r.instances[roomID]
	r.mu.Unlock()
	if exists {
		return g, true
	}

	g = r.tryRestore(roomID)
	if g == nil {
		return nil, false
	}
	r.mu.Lock()
	r.instances[roomID] = g
	r.mu.Unlock()
	return g, true
}

// StartGame 创建对局
// 房间已有对局返回 ErrGameAlreadyActive；
// 模型构造失败时不注册任何实例，房间保持无对局状态。
// 玩家数达到下限（含电脑槽位）时立即转入 Active。
func (r *SessionRegistry) StartGame(roomID, starter string, withComputer bool) (*GameInstance, error) {
	if _, exists := r.Lookup(roomID); exists {
		return nil, ErrGameAlreadyActive
	}

	g, err := newGameInstance(r.cfg, roomID, starter, withComputer)
	if err != nil {
		return nil, err
	}
	if len(g.Players) >= r.cfg.MinPlayers {
		g.activate()
	}

	r.mu.Lock()
	r.instances[roomID] = g
	r.mu.Unlock()

	r.persist(g)
	log.Info("房间 %s 创建对局 %s, 发起者 %s, 电脑对手 %v", roomID, g.ID, starter, withComputer)
	return g, nil
}

// Join 加入房间的对局
func (r *SessionRegistry) Join(roomID, player string) (*GameInstance, error) {
	g, exists := r.Lookup(roomID)
	if !exists {
		return nil, ErrNotJoinable
	}
	if err := g.addPlayer(player); err != nil {
		return nil, err
	}

	r.persist(g)
	log.Info("房间 %s 玩家 %s 加入对局, 人数 %d, 状态 %s", roomID, player, len(g.Players), g.Status)
	return g, nil
}

// Cancel 取消尚未开始的对局
// 房间没有对局时安静地无操作（返回 false）
func (r *SessionRegistry) Cancel(roomID string) (*GameInstance, bool) {
	g, exists := r.Lookup(roomID)
	if !exists {
		return nil, false
	}
	if g.Status != StatusForming {
		return g, false
	}

	r.Remove(roomID)
	log.Info("房间 %s 的对局 %s 被取消", roomID, g.ID)
	return g, true
}

// Remove 销毁房间的对局并清掉持久化快照
// 之后任何人都不应继续持有该实例的引用
func (r *SessionRegistry) Remove(roomID string) {
	r.mu.Lock()
	delete(r.instances, roomID)
	r.mu.Unlock()

	if deleter, ok := r.store.(storage.Deleter); ok && r.store != nil {
		if err := deleter.Delete(r.storeKey(roomID)); err != nil {
			log.Warn("删除房间 %s 的会话快照失败: %v", roomID, err)
		}
	}
}

// Persist 写出会话快照（落子等状态变更之后调用）
func (r *SessionRegistry) Persist(g *GameInstance) {
	r.persist(g)
}

// Stats 当前对局数和玩家数，供负载监控使用
// 玩家列表只在房间临界区内变化，读取也必须拿房间锁；
// 这里先在 map 锁下拷出房间列表，再逐房间进临界区计数
func (r *SessionRegistry) Stats() (gameCount int, playerCount int) {
	r.mu.Lock()
	rooms := make([]string, 0, len(r.instances))
	for roomID := range r.instances {
		rooms = append(rooms, roomID)
	}
	r.mu.Unlock()

	for _, roomID := range rooms {
		r.WithRoom(roomID, func() {
			r.mu.Lock()
			g, exists := r.instances[roomID]
			r.mu.Unlock()
			if exists {
				gameCount++
				playerCount += len(g.Players)
			}
		})
	}
	return gameCount, playerCount
}

func (r *SessionRegistry) storeKey(roomID string) string {
	return "session:" + r.cfg.BotName + ":" + roomID
}

func (r *SessionRegistry) persist(g *GameInstance) {
	if r.store == nil {
		return
	}

	data, err := g.snapshot()
	if err != nil {
		log.Warn("序列化房间 %s 的会话失败: %v", g.RoomID, err)
		return
	}
	if data == nil {
		// 模型不支持快照，会话只存在于内存
		return
	}
	if err := r.store.Put(r.storeKey(g.RoomID), string(data)); err != nil {
		log.Warn("持久化房间 %s 的会话失败: %v", g.RoomID, err)
	}
}

func (r *SessionRegistry) tryRestore(roomID string) *GameInstance {
	if r.store == nil {
		return nil
	}

	key := r.storeKey(roomID)
	exists, err := r.store.Contains(key)
	if err != nil || !exists {
		return nil
	}
	data, err := r.store.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.Warn("读取房间 %s 的会话快照失败: %v", roomID, err)
		}
		return nil
	}

	g, err := restoreInstance(r.cfg, roomID, []byte(data))
	if err != nil {
		log.Warn("恢复房间 %s 的会话失败: %v", roomID, err)
		return nil
	}
	log.Info("房间 %s 的会话从快照恢复, 对局 %s", roomID, g.ID)
	return g
}
