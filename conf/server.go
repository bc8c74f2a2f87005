package conf

import (
	"fmt"

	"github.com/andyzhou/hideseek/define"
	"github.com/caarlos0/env/v11"
)

/*
 * conf for server
 */

type ServerConf struct {
	Host       string `env:"HIDESEEK_HOST"        envDefault:"0.0.0.0"`
	Port       int    `env:"HIDESEEK_PORT"        envDefault:"10086"` //0 picks a free port
	Password   string `env:"HIDESEEK_PASSWORD"    envDefault:"hideseek"` //kcp block crypt
	Salt       string `env:"HIDESEEK_SALT"        envDefault:"hideseek-salt"`
	WsAddr     string `env:"HIDESEEK_WS_ADDR"     envDefault:""` //empty disables websocket
	StatusAddr string `env:"HIDESEEK_STATUS_ADDR" envDefault:""` //empty disables status api
	LogLevel   string `env:"HIDESEEK_LOG_LEVEL"   envDefault:"info"`
	Room       RoomConf
}

//load server conf from env
func LoadServerConfFromEnv() (ServerConf, error) {
	var cfg ServerConf
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c ServerConf) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: empty host", define.ErrorOfInvalidPara)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", define.ErrorOfInvalidPara, c.Port)
	}
	if c.Password == "" || c.Salt == "" {
		return fmt.Errorf("%w: empty password or salt", define.ErrorOfInvalidPara)
	}
	return c.Room.Validate()
}

//kcp listen address
func (c ServerConf) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
