package fifteen

import (
	"regexp"

	"gamebot/engine"
)

// Config 数字华容道游戏的接入配置
func Config() *engine.GameConfig {
	return &engine.GameConfig{
		Name:    "Game of Fifteen",
		BotName: "game_of_fifteen",
		MoveHelp: "* To make your move during a game, type\n" +
			"```move <tile1> <tile2> ...```",
		MoveRegex: regexp.MustCompile(`^move (\d+(?: \d+)*)$`),
		RulesText: "Arrange the board so that the tiles are sorted from 1 to 15, " +
			"with the blank in the top left corner.",
		MinPlayers:  1,
		MaxPlayers:  1,
		NewModel:    NewModel,
		NewRenderer: NewRenderer,
	}
}
