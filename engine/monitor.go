package engine

import (
	"context"
	"time"

	"gamebot/common/log"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// LoadInfo 负载信息
// 用于计算机器人进程的综合负载评分
type LoadInfo struct {
	GameCount   int     // 当前对局数
	PlayerCount int     // 当前玩家数
	CPUUsage    float64 // CPU 使用率（0-100）
	MemUsage    float64 // 内存使用率（0-100）
}

// CalculateLoad 计算综合负载评分
// 权重：CPU 30%、内存 20%、对局数 25%、玩家数 25%
// 返回值越小表示负载越低
func (li *LoadInfo) CalculateLoad() float64 {
	normalizedGameCount := float64(li.GameCount) / 100.0
	if normalizedGameCount > 1.0 {
		normalizedGameCount = 1.0
	}

	normalizedPlayerCount := float64(li.PlayerCount) / 100.0
	if normalizedPlayerCount > 1.0 {
		normalizedPlayerCount = 1.0
	}

	return li.CPUUsage*0.3 + li.MemUsage*0.2 + normalizedGameCount*100*0.25 + normalizedPlayerCount*100*0.25
}

// Monitor 监控器
// 定期汇总所有游戏适配器的对局数、玩家数和系统负载
type Monitor struct {
	adapters       []*GameAdapter
	updateInterval time.Duration
	stopCh         chan struct{}
}

// NewMonitor 创建监控器
// updateInterval 建议 5-10 秒
func NewMonitor(adapters []*GameAdapter, updateInterval time.Duration) *Monitor {
	return &Monitor{
		adapters:       adapters,
		updateInterval: updateInterval,
		stopCh:         make(chan struct{}),
	}
}

// Start 启动监控器
// 在独立的 goroutine 中定期收集并输出负载信息
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.updateInterval)
	defer ticker.Stop()

	m.reportLoad()

	for {
		select {
		case <-ctx.Done():
			log.Info("Monitor 收到停止信号，退出监控")
			return
		case <-m.stopCh:
			log.Info("Monitor 收到停止信号，退出监控")
			return
		case <-ticker.C:
			m.reportLoad()
		}
	}
}

// Stop 停止监控器
func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) reportLoad() {
	loadInfo := m.collectLoadInfo()
	load := loadInfo.CalculateLoad()

	log.Info("Monitor 负载: Load=%.2f, Games=%d, Players=%d, CPU=%.2f%%, Mem=%.2f%%",
		load, loadInfo.GameCount, loadInfo.PlayerCount, loadInfo.CPUUsage, loadInfo.MemUsage)
}

// collectLoadInfo 收集负载信息
func (m *Monitor) collectLoadInfo() *LoadInfo {
	gameCount, playerCount := 0, 0
	for _, adapter := range m.adapters {
		g, p := adapter.Registry().Stats()
		gameCount += g
		playerCount += p
	}

	return &LoadInfo{
		GameCount:   gameCount,
		PlayerCount: playerCount,
		CPUUsage:    m.getCPUUsage(),
		MemUsage:    m.getMemoryUsage(),
	}
}

// getCPUUsage 获取系统 CPU 使用率
func (m *Monitor) getCPUUsage() float64 {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return 0.0
	}
	return percents[0]
}

// getMemoryUsage 获取系统内存使用率
func (m *Monitor) getMemoryUsage() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0.0
	}
	return vm.UsedPercent
}
