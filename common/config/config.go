package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Conf 全局配置，进程启动时由 Load 填充
var Conf BotConfiguration

type BaseConfig struct {
	ID         string `mapstructure:"id"`
	MetricPort int    `mapstructure:"metricPort"`
}

// BotConfiguration 游戏机器人进程配置
type BotConfiguration struct {
	BaseConfig   `mapstructure:",squash"`
	LogConf      `mapstructure:"log"`
	NatsConfig   `mapstructure:"nats"`
	DatabaseConf `mapstructure:"database"`
	TriviaConf   `mapstructure:"trivia"`
	Games        []string `mapstructure:"games"` // 启用的游戏列表，空表示全部启用
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type NatsConfig struct {
	URL string `json:"url" mapstructure:"url"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	PoolSize     int    `mapstructure:"poolSize"`
	MinIdleConns int    `mapstructure:"minIdleConns"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
}

// TriviaConf 问答题目来源配置
type TriviaConf struct {
	APIURL   string `mapstructure:"apiUrl"`
	CacheTTL int    `mapstructure:"cacheTTL"` // 单位是秒
}

// Load 加载配置文件并填充全局配置
// 支持环境变量覆盖（NODE_ID 覆盖节点 ID）
func Load(configFile string) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var cfg BotConfiguration
	if err := v.Unmarshal(&cfg); err != nil {
		return err
	}
	if nodeID := os.Getenv("NODE_ID"); nodeID != "" {
		cfg.ID = nodeID
	}
	if cfg.ID == "" {
		return fmt.Errorf("配置缺少节点 ID（id 字段或 NODE_ID 环境变量）")
	}

	Conf = cfg
	return nil
}

// Watch 监听配置文件变化
// onChange 在文件被改写后回调，可以为 nil
func Watch(configFile string, onChange func()) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		if onChange != nil {
			onChange()
		}
	})
}
