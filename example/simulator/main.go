package main

import (
	"flag"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/andyzhou/hideseek"
	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/logger"
	"github.com/rs/zerolog/log"
)

/*
 * bot simulator, each bot wanders and readies up
 */

func main() {
	host := flag.String("host", "127.0.0.1", "server host")
	port := flag.Int("port", 10086, "server port")
	password := flag.String("password", "hideseek", "kcp password")
	salt := flag.String("salt", "hideseek-salt", "kcp salt")
	bots := flag.Int("bots", 4, "bot count")
	seconds := flag.Int("seconds", 30, "run time")
	flag.Parse()

	if err := logger.Setup("info"); err != nil {
		panic(err)
	}

	wg := new(sync.WaitGroup)
	for i := 0; i < *bots; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			runBot(idx, *host, *port, *password, *salt, time.Duration(*seconds)*time.Second)
		}(i)
	}
	wg.Wait()
}

//run one bot until timeout
func runBot(idx int, host string, port int, password, salt string, runFor time.Duration) {
	client := hideseek.NewClient(host, port)
	if err := client.SetSecurity(password, salt); err != nil {
		log.Error().Err(err).Int("bot", idx).Msg("bad security")
		return
	}
	client.SetRoster(hideseek.RosterFuncs{
		Appear: func(p *game.Player) {
			log.Info().Int("bot", idx).Uint8("player", p.ID).Str("name", p.Name).Msg("player appeared")
		},
	})
	if err := client.DialServer(); err != nil {
		log.Error().Err(err).Int("bot", idx).Msg("dial failed")
		return
	}
	defer client.Close()

	rng := rand.New(rand.NewPCG(uint64(idx), uint64(time.Now().UnixNano())))
	ticker := time.NewTicker(time.Second / define.Frequency)
	defer ticker.Stop()
	deadline := time.After(runFor)
	lastState := game.BeforeStart

	//loop
	for {
		select {
		case <-deadline:
			return
		case now := <-ticker.C:
			if client.IsClosed() {
				return
			}
			if _, err := client.Poll(); err != nil {
				return
			}
			if state := client.Game().State; state != lastState {
				log.Info().Int("bot", idx).Str("state", state.String()).Msg("state changed")
				lastState = state
			}

			//wander, change direction now and then
			if rng.IntN(15) == 0 {
				for _, kind := range []game.ButtonKind{game.ButtonLeft, game.ButtonRight, game.ButtonUp, game.ButtonDown} {
					if rng.IntN(2) == 0 {
						client.Press(kind)
					} else {
						client.Release(kind)
					}
				}
			}
			if client.Game().State == game.BeforeStart && rng.IntN(30) == 0 {
				client.Press(game.ButtonJump)
				client.Release(game.ButtonJump)
			}
			client.Update(now)
		}
	}
}
