package main

import (
	"os"

	"github.com/andyzhou/hideseek"
	"github.com/andyzhou/hideseek/conf"
	"github.com/andyzhou/hideseek/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	//optional .env next to the binary
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Msg("load .env failed")
	}

	cfg, err := conf.LoadServerConfFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("bad config")
	}
	if err := logger.Setup(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("bad log level")
	}

	//init
	server, err := hideseek.NewServer(cfg, NewRoomCallBack())
	if err != nil {
		log.Fatal().Err(err).Msg("init server failed")
	}

	//start
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
