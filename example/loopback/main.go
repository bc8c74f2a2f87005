package main

import (
	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/logger"
	"github.com/andyzhou/hideseek/protocol"
	"github.com/rs/zerolog/log"
)

/*
 * authority and replicas in one process over in memory buffers
 */

type peer struct {
	player    *game.Player
	clientEnd *protocol.Buffer //client end
	serverEnd *protocol.Buffer //server end
	replica   *game.Game
}

func main() {
	if err := logger.Setup("info"); err != nil {
		panic(err)
	}

	authority := game.NewGame(define.SpawnSeed, define.RoundTime)
	peers := make([]*peer, 0)
	for i := 0; i < 3; i++ {
		p, err := authority.SpawnPlayer()
		if err != nil {
			log.Fatal().Err(err).Msg("spawn failed")
		}
		peers = append(peers, &peer{
			player:    p,
			clientEnd: protocol.NewBuffer(),
			serverEnd: protocol.NewBuffer(),
			replica:   game.NewGame(0, 0),
		})
	}

	//every client readies up and the seeker chases right
	for i, pr := range peers {
		controls := game.Controls{}
		controls.Jump.RecordPress()
		if i == 0 {
			controls.Right.RecordPress()
		}
		protocol.SendControls(pr.clientEnd, &controls)
		pr.clientEnd.FlushTo(pr.serverEnd)
	}

	for tick := 0; tick < 20*define.Frequency && !authority.State.IsOver(); tick++ {
		//server side, drain controls
		for _, pr := range peers {
			for {
				ok, err := protocol.RecvControls(pr.serverEnd, &pr.player.Controls)
				if err != nil {
					log.Fatal().Err(err).Msg("bad controls")
				}
				if !ok {
					break
				}
			}
		}

		authority.Update(define.Tick)

		//server to clients
		for _, pr := range peers {
			out := protocol.NewBuffer()
			if err := protocol.SendState(out, authority, pr.player); err != nil {
				log.Fatal().Err(err).Msg("encode state failed")
			}
			out.FlushTo(pr.clientEnd)
			if _, err := protocol.RecvState(pr.clientEnd, pr.replica); err != nil {
				log.Fatal().Err(err).Msg("bad state")
			}
		}
	}

	for _, pr := range peers {
		me := pr.replica.Players()[0]
		log.Info().Uint8("player", me.ID).Str("role", me.Role.String()).
			Bool("caught", me.IsCaught).Str("state", pr.replica.State.String()).
			Float32("timer", pr.replica.Timer).Msg("replica")
	}
}
