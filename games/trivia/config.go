package trivia

import (
	"regexp"
	"time"

	"gamebot/common/cache"
	"gamebot/common/config"
	"gamebot/common/log"
	"gamebot/engine"
)

const defaultAPIURL = "https://opentdb.com/api.php?amount=1&type=multiple"

// Config 问答游戏的接入配置，题目来源按 bot 配置构造
func Config() *engine.GameConfig {
	apiURL := config.Conf.TriviaConf.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	ttl := time.Duration(config.Conf.TriviaConf.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	seen, err := cache.NewGeneralCache(1<<20, ttl)
	if err != nil {
		log.Warn("问答缓存初始化失败, 去重降级: %v", err)
		seen = nil
	}
	source := NewHTTPSource(apiURL, seen)

	return &engine.GameConfig{
		Name:    "Trivia Quiz",
		BotName: "trivia_quiz",
		MoveHelp: "* To answer the current question, type\n" +
			"```answer <letter>```",
		MoveRegex:  regexp.MustCompile(`^answer ([a-d])$`),
		RulesText:  "Everyone gets the same question. Take turns answering, first correct answer wins!",
		MinPlayers: 2,
		MaxPlayers: 4,
		NewModel: func() (engine.BoardModel, error) {
			return NewModelWithSource(source)
		},
		NewRenderer: NewRenderer,
	}
}
