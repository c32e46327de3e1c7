package connectfour

import (
	"regexp"

	"gamebot/engine"
)

// Config 四连游戏的接入配置
func Config() *engine.GameConfig {
	return &engine.GameConfig{
		Name:    "Connect Four",
		BotName: "connect_four",
		MoveHelp: "* To make your move during a game, type\n" +
			"```move <column-number>``` or ```<column-number>```",
		MoveRegex:         regexp.MustCompile(`^(?:move )?([1-7])$`),
		RulesText:         "Try to get four pieces in row. Diagonals count too!",
		MinPlayers:        2,
		MaxPlayers:        2,
		SupportsComputer:  true,
		NewModel:          NewModel,
		NewRenderer:       NewRenderer,
		NewComputerPlayer: NewComputerPlayer,
	}
}
