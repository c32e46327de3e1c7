package engine

import (
	"sync"
	"testing"

	"gamebot/storage"
)

func TestStartGameSingleInstancePerRoom(t *testing.T) {
	cfg, _ := stubConfig()
	reg := NewSessionRegistry(cfg, nil)

	if _, err := reg.StartGame("stream:games/t1", "alice@example.com", false); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if _, err := reg.StartGame("stream:games/t1", "bob@example.com", false); err != ErrGameAlreadyActive {
		t.Fatalf("expected ErrGameAlreadyActive, got %v", err)
	}

	// 不同房间互不影响
	if _, err := reg.StartGame("stream:games/t2", "bob@example.com", false); err != nil {
		t.Fatalf("StartGame in another room: %v", err)
	}
}

func TestJoinTransitions(t *testing.T) {
	cfg, _ := stubConfig()
	reg := NewSessionRegistry(cfg, nil)

	g, err := reg.StartGame("stream:games/t1", "alice@example.com", false)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if g.Status != StatusForming {
		t.Fatalf("expected forming, got %s", g.Status)
	}

	if _, err := reg.Join("stream:games/t1", "alice@example.com"); err != ErrAlreadyJoined {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}

	g, err = reg.Join("stream:games/t1", "bob@example.com")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if g.Status != StatusActive {
		t.Fatalf("expected active at min players, got %s", g.Status)
	}

	if _, err := reg.Join("stream:games/t1", "carol@example.com"); err != ErrNotJoinable {
		t.Fatalf("expected ErrNotJoinable for an active game, got %v", err)
	}
}

func TestCancelOnlyForming(t *testing.T) {
	cfg, _ := stubConfig()
	reg := NewSessionRegistry(cfg, nil)

	if _, cancelled := reg.Cancel("stream:games/t1"); cancelled {
		t.Fatal("cancelling a missing game must be a no-op")
	}

	reg.StartGame("stream:games/t1", "alice@example.com", false)
	reg.Join("stream:games/t1", "bob@example.com")
	if _, cancelled := reg.Cancel("stream:games/t1"); cancelled {
		t.Fatal("an active game must not be cancellable")
	}

	reg.StartGame("stream:games/t2", "alice@example.com", false)
	if _, cancelled := reg.Cancel("stream:games/t2"); !cancelled {
		t.Fatal("a forming game must be cancellable")
	}
	if gameCount, _ := reg.Stats(); gameCount != 1 {
		t.Fatalf("expected one remaining game, got %d", gameCount)
	}
}

func TestRestoreFromStore(t *testing.T) {
	cfg, _ := stubConfig()
	store := storage.NewMemoryStore()

	reg1 := NewSessionRegistry(cfg, store)
	if _, err := reg1.StartGame("stream:games/t1", "alice@example.com", false); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	g1, err := reg1.Join("stream:games/t1", "bob@example.com")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	// 模拟进程重启：新注册表挂同一个存储
	reg2 := NewSessionRegistry(cfg, store)
	g2, exists := reg2.Lookup("stream:games/t1")
	if !exists {
		t.Fatal("expected the session to be restored from the store")
	}
	if g2.ID != g1.ID {
		t.Fatalf("restored instance ID %q, want %q", g2.ID, g1.ID)
	}
	if len(g2.Players) != 2 || g2.Players[0] != "alice@example.com" || g2.Players[1] != "bob@example.com" {
		t.Fatalf("restored players %v", g2.Players)
	}
	if g2.Status != StatusActive {
		t.Fatalf("restored status %s, want active", g2.Status)
	}
}

func TestRemoveClearsStore(t *testing.T) {
	cfg, _ := stubConfig()
	store := storage.NewMemoryStore()

	reg := NewSessionRegistry(cfg, store)
	reg.StartGame("stream:games/t1", "alice@example.com", false)
	reg.Join("stream:games/t1", "bob@example.com")
	reg.Remove("stream:games/t1")

	reg2 := NewSessionRegistry(cfg, store)
	if _, exists := reg2.Lookup("stream:games/t1"); exists {
		t.Fatal("removed session must not be restorable")
	}
}

func TestStats(t *testing.T) {
	cfg, _ := stubConfig()
	reg := NewSessionRegistry(cfg, nil)

	reg.StartGame("stream:games/t1", "alice@example.com", false)
	reg.StartGame("stream:games/t2", "bob@example.com", true)

	gameCount, playerCount := reg.Stats()
	if gameCount != 2 {
		t.Fatalf("expected 2 games, got %d", gameCount)
	}
	// t1 一人等待，t2 人类加电脑
	if playerCount != 3 {
		t.Fatalf("expected 3 players, got %d", playerCount)
	}
}

func TestStatsConcurrentWithJoins(t *testing.T) {
	cfg, _ := stubConfig()
	reg := NewSessionRegistry(cfg, nil)

	rooms := []string{"stream:games/a", "stream:games/b", "stream:games/c", "stream:games/d"}
	var wg sync.WaitGroup
	for _, room := range rooms {
		wg.Add(1)
		go func(room string) {
			defer wg.Done()
			reg.WithRoom(room, func() {
				reg.StartGame(room, "alice@example.com", false)
			})
			reg.WithRoom(room, func() {
				reg.Join(room, "bob@example.com")
			})
		}(room)
	}

	// 模拟监控线程在玩家加入的同时并发读取计数
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-done:
			gameCount, playerCount := reg.Stats()
			if gameCount != len(rooms) || playerCount != 2*len(rooms) {
				t.Fatalf("expected %d games with %d players, got %d/%d",
					len(rooms), 2*len(rooms), gameCount, playerCount)
			}
			return
		default:
			reg.Stats()
		}
	}
}

func TestConcurrentRoomsDoNotInterfere(t *testing.T) {
	cfg, _ := stubConfig()
	reg := NewSessionRegistry(cfg, storage.NewMemoryStore())

	var wg sync.WaitGroup
	rooms := []string{"stream:games/a", "stream:games/b", "stream:games/c", "stream:games/d"}
	for _, room := range rooms {
		wg.Add(1)
		go func(room string) {
			defer wg.Done()
			reg.WithRoom(room, func() {
				reg.StartGame(room, "alice@example.com", false)
			})
			reg.WithRoom(room, func() {
				reg.Join(room, "bob@example.com")
			})
		}(room)
	}
	wg.Wait()

	gameCount, playerCount := reg.Stats()
	if gameCount != len(rooms) || playerCount != 2*len(rooms) {
		t.Fatalf("expected %d games with %d players, got %d/%d",
			len(rooms), 2*len(rooms), gameCount, playerCount)
	}
}
