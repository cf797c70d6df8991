package main

import (
	"context"
	"errors"
	"os"

	_ "github.com/jimmicro/version"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("qimg failed")
	}
}
