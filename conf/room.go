package conf

import (
	"fmt"
	"time"

	"github.com/andyzhou/hideseek/define"
	"github.com/caarlos0/env/v11"
)

/*
 * conf for room
 */

type RoomConf struct {
	Seed         uint64        `env:"HIDESEEK_ROOM_SEED"          envDefault:"356935270"`
	RoundTime    float32       `env:"HIDESEEK_ROOM_ROUND_TIME"    envDefault:"60"`
	MaxPlayers   int           `env:"HIDESEEK_ROOM_MAX_PLAYERS"   envDefault:"16"` //at most 255
	RestartDelay time.Duration `env:"HIDESEEK_ROOM_RESTART_DELAY" envDefault:"5s"` //0 means never restart
	Frequency    int           `env:"HIDESEEK_ROOM_FREQUENCY"     envDefault:"30"` //ticks per second
}

//default room conf
func DefaultRoomConf() RoomConf {
	return RoomConf{
		Seed:         define.SpawnSeed,
		RoundTime:    define.RoundTime,
		MaxPlayers:   16,
		RestartDelay: 5 * time.Second,
		Frequency:    define.Frequency,
	}
}

//load room conf from env
func LoadRoomConfFromEnv() (RoomConf, error) {
	var cfg RoomConf
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c RoomConf) Validate() error {
	if c.RoundTime <= 0 {
		return fmt.Errorf("%w: round time %v", define.ErrorOfInvalidPara, c.RoundTime)
	}
	if c.MaxPlayers < 2 || c.MaxPlayers > define.MaxPlayers {
		return fmt.Errorf("%w: max players %d", define.ErrorOfInvalidPara, c.MaxPlayers)
	}
	if c.RestartDelay < 0 {
		return fmt.Errorf("%w: restart delay %v", define.ErrorOfInvalidPara, c.RestartDelay)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("%w: frequency %d", define.ErrorOfInvalidPara, c.Frequency)
	}
	return nil
}

//seconds per tick
func (c RoomConf) TickElapsed() float32 {
	return float32(1) / float32(c.Frequency)
}

func (c RoomConf) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Frequency)
}
