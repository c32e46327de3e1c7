package tictactoe

import (
	"regexp"

	"gamebot/engine"
)

// Config 井字棋游戏的接入配置
func Config() *engine.GameConfig {
	return &engine.GameConfig{
		Name:    "Tic Tac Toe",
		BotName: "tictactoe",
		MoveHelp: "* To make your move during a game, type\n" +
			"```move <number>``` or ```<number>```",
		MoveRegex:         regexp.MustCompile(`^(?:move )?([1-9])$`),
		RulesText:         "Place your tokens on a 3x3 grid. Get three in a row to win!",
		MinPlayers:        2,
		MaxPlayers:        2,
		SupportsComputer:  true,
		NewModel:          NewModel,
		NewRenderer:       NewRenderer,
		NewComputerPlayer: NewComputerPlayer,
	}
}
