package main

import (
	"github.com/rs/zerolog/log"

	"tableflip.dev/planboard/pkg/commands"
)

func main() {
	err := commands.New().Execute()
	commands.CloseLog()
	if err != nil {
		log.Fatal().Err(err).Msg("error during command execution")
	}
}
