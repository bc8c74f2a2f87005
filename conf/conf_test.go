package conf

import (
	"testing"
	"time"

	"github.com/andyzhou/hideseek/define"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfDefaults(t *testing.T) {
	cfg, err := LoadServerConfFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:10086", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.WsAddr)
	assert.Equal(t, DefaultRoomConf(), cfg.Room)
}

func TestLoadServerConfFromEnv(t *testing.T) {
	t.Setenv("HIDESEEK_PORT", "7000")
	t.Setenv("HIDESEEK_WS_ADDR", ":7001")
	t.Setenv("HIDESEEK_ROOM_MAX_PLAYERS", "4")
	t.Setenv("HIDESEEK_ROOM_RESTART_DELAY", "250ms")
	t.Setenv("HIDESEEK_ROOM_ROUND_TIME", "12.5")

	cfg, err := LoadServerConfFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, ":7001", cfg.WsAddr)
	assert.Equal(t, 4, cfg.Room.MaxPlayers)
	assert.Equal(t, 250*time.Millisecond, cfg.Room.RestartDelay)
	assert.Equal(t, float32(12.5), cfg.Room.RoundTime)
}

func TestServerConfValidate(t *testing.T) {
	cfg, err := LoadServerConfFromEnv()
	require.NoError(t, err)

	bad := cfg
	bad.Port = 70000
	assert.ErrorIs(t, bad.Validate(), define.ErrorOfInvalidPara)

	bad = cfg
	bad.Salt = ""
	assert.ErrorIs(t, bad.Validate(), define.ErrorOfInvalidPara)

	bad = cfg
	bad.Room.Frequency = 0
	assert.ErrorIs(t, bad.Validate(), define.ErrorOfInvalidPara)
}

func TestLoadServerConfBadValue(t *testing.T) {
	t.Setenv("HIDESEEK_PORT", "not-a-port")
	_, err := LoadServerConfFromEnv()
	assert.Error(t, err)
}

func TestRoomConfValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *RoomConf)
	}{
		{"zero round time", func(c *RoomConf) { c.RoundTime = 0 }},
		{"one seat", func(c *RoomConf) { c.MaxPlayers = 1 }},
		{"too many seats", func(c *RoomConf) { c.MaxPlayers = 256 }},
		{"negative delay", func(c *RoomConf) { c.RestartDelay = -time.Second }},
		{"zero frequency", func(c *RoomConf) { c.Frequency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRoomConf()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), define.ErrorOfInvalidPara)
		})
	}
	assert.NoError(t, DefaultRoomConf().Validate())
}

func TestRoomConfTick(t *testing.T) {
	cfg := DefaultRoomConf()
	assert.Equal(t, define.Tick, cfg.TickElapsed())
	assert.Equal(t, time.Second/30, cfg.TickInterval())
}
