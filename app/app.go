package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamebot/chat"
	"gamebot/common/config"
	"gamebot/common/database"
	"gamebot/common/log"
	"gamebot/engine"
	"gamebot/games/connectfour"
	"gamebot/games/fifteen"
	"gamebot/games/merels"
	"gamebot/games/tictactoe"
	"gamebot/games/trivia"
	"gamebot/records"
	"gamebot/storage"
)

// gameConfigs 可启用的全部游戏
func gameConfigs() []*engine.GameConfig {
	return []*engine.GameConfig{
		connectfour.Config(),
		fifteen.Config(),
		merels.Config(),
		tictactoe.Config(),
		trivia.Config(),
	}
}

// enabledConfigs 按配置筛选启用的游戏，配置为空则全部启用
func enabledConfigs() []*engine.GameConfig {
	all := gameConfigs()
	if len(config.Conf.Games) == 0 {
		return all
	}
	enabled := make(map[string]bool, len(config.Conf.Games))
	for _, name := range config.Conf.Games {
		enabled[name] = true
	}
	var out []*engine.GameConfig
	for _, cfg := range all {
		if enabled[cfg.BotName] {
			out = append(out, cfg)
		}
	}
	return out
}

// Run 启动游戏机器人进程，阻塞直到收到退出信号
func Run(ctx context.Context) error {
	var (
		redisManager *database.RedisManager
		mongoManager *database.MongoManager
		store        storage.KVStore
		recorder     engine.Recorder
	)

	if config.Conf.DatabaseConf.RedisConf.Addr != "" {
		redisManager = database.NewRedis(config.Conf.DatabaseConf.RedisConf)
		store = storage.NewRedisStore(redisManager, "gamebot:")
	} else {
		log.Warn("未配置 redis，对局状态仅保存在内存中")
		store = storage.NewMemoryStore()
	}

	if config.Conf.DatabaseConf.MongoConf.Url != "" {
		mongoManager = database.NewMongo(config.Conf.DatabaseConf.MongoConf)
		recorder = records.NewRepository(mongoManager)
	} else {
		log.Warn("未配置 mongo，完局记录不会落库")
	}

	configs := enabledConfigs()
	if len(configs) == 0 {
		log.Fatal("没有启用任何游戏，检查 games 配置")
		return nil
	}

	var (
		adapters   []*engine.GameAdapter
		transports []*chat.NatsTransport
	)
	for _, cfg := range configs {
		adapter := engine.NewGameAdapter(cfg, store, recorder)
		transport := chat.NewNatsTransport(cfg.BotName, adapter)
		if err := transport.Run(config.Conf.NatsConfig.URL); err != nil {
			log.Fatal("游戏 %s 的聊天中继启动失败: %v", cfg.BotName, err)
			return err
		}
		adapters = append(adapters, adapter)
		transports = append(transports, transport)
		log.Info("游戏已上线: %s (bot:%s)", cfg.Name, cfg.BotName)
	}

	monitor := engine.NewMonitor(adapters, 30*time.Second)
	monitorCtx, cancelMonitor := context.WithCancel(ctx)
	go monitor.Start(monitorCtx)

	stop := func() {
		log.Info("正在关闭游戏机器人...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done := make(chan struct{})
		go func() {
			cancelMonitor()
			monitor.Stop()
			for _, t := range transports {
				_ = t.Close()
			}
			if redisManager != nil {
				redisManager.Close()
			}
			if mongoManager != nil {
				mongoManager.Close()
			}
			close(done)
		}()

		select {
		case <-done:
			log.Info("游戏机器人已关闭")
		case <-shutdownCtx.Done():
			log.Warn("关闭游戏机器人超时（5秒），defer 会确保资源最终被释放")
		}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	for {
		select {
		case <-ctx.Done():
			stop()
			return nil
		case s := <-c:
			switch s {
			case syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT:
				stop()
				log.Info("中断信号，服务停止")
				return nil
			case syscall.SIGHUP:
				stop()
				log.Info("挂起信号，服务停止")
				return nil
			default:
				return nil
			}
		}
	}
}
