package main

import (
	"context"
	"fmt"
	"os"

	"gamebot/app"
	"gamebot/common/config"
	"gamebot/common/log"
	"gamebot/common/metrics"

	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	identifier string
)

var rootCmd = &cobra.Command{
	Use:   "gamebot",
	Short: "gamebot 聊天游戏机器人",
	Long:  `gamebot 聊天游戏机器人`,
	Run: func(cmd *cobra.Command, args []string) {
		// identifier 兼作节点 ID，配置文件里的 id 字段可以省略
		if os.Getenv("NODE_ID") == "" && identifier != "" {
			os.Setenv("NODE_ID", identifier)
		}
		if err := config.Load(configFile); err != nil {
			fmt.Printf("加载配置失败: %v\n", err)
			os.Exit(-1)
		}
		log.InitLog(identifier, logLevel)
		log.Info("配置文件: %+v", config.Conf)

		// 配置热加载：配置文件被改写后重载，日志级别跟随配置
		config.Watch(configFile, func() {
			if err := config.Load(configFile); err != nil {
				log.Warn("配置热加载失败: %v", err)
				return
			}
			if config.Conf.LogConf.Level != "" {
				log.InitLog(identifier, config.Conf.LogConf.Level)
			}
			log.Info("配置已热加载: %+v", config.Conf)
		})

		go func() {
			log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", config.Conf.MetricPort)
			err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", config.Conf.MetricPort))
			if err != nil {
				panic(err)
			}
		}()

		err := app.Run(context.Background())
		if err != nil {
			log.Error("发生异常: %v", err)
			os.Exit(-1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "resource", "resource/application.yml", "resource file")
	rootCmd.Flags().StringVar(&logLevel, "logLevel", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&identifier, "identifier", "", "subscribed topic and identifier of server required")
	rootCmd.MarkFlagRequired("identifier")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}
