package merels

import (
	"regexp"

	"gamebot/engine"
)

// Config 三子棋游戏的接入配置
func Config() *engine.GameConfig {
	return &engine.GameConfig{
		Name:    "Merels",
		BotName: "merels",
		MoveHelp: "* To place a piece, type ```put <point>```\n" +
			"* To slide a piece once all three are placed, type ```move <from> <to>```",
		MoveRegex: regexp.MustCompile(`^(?:put ([1-9])|move ([1-9]) ([1-9]))$`),
		RulesText: "Each player places three pieces, then slides them along the lines. " +
			"The first player to line up all three of their pieces wins.",
		MinPlayers:  2,
		MaxPlayers:  2,
		NewModel:    NewModel,
		NewRenderer: NewRenderer,
	}
}
