package engine

import "testing"

func TestCalculateLoad(t *testing.T) {
	idle := &LoadInfo{}
	if got := idle.CalculateLoad(); got != 0 {
		t.Fatalf("idle load = %v, want 0", got)
	}

	light := &LoadInfo{GameCount: 10, PlayerCount: 20, CPUUsage: 10, MemUsage: 20}
	heavy := &LoadInfo{GameCount: 100, PlayerCount: 300, CPUUsage: 90, MemUsage: 80}
	if light.CalculateLoad() >= heavy.CalculateLoad() {
		t.Fatalf("load ordering broken: light=%v heavy=%v", light.CalculateLoad(), heavy.CalculateLoad())
	}
}

func TestCollectLoadInfo(t *testing.T) {
	cfg, _ := stubConfig()
	adapter := NewGameAdapter(cfg, nil, nil)
	adapter.Registry().StartGame("stream:games/t1", "alice@example.com", false)
	adapter.Registry().Join("stream:games/t1", "bob@example.com")

	m := NewMonitor([]*GameAdapter{adapter}, 0)
	info := m.collectLoadInfo()
	if info.GameCount != 1 || info.PlayerCount != 2 {
		t.Fatalf("collectLoadInfo = %+v", info)
	}
}
