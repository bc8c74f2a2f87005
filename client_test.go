package hideseek

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/andyzhou/hideseek/conf"
	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/network"
	"github.com/andyzhou/hideseek/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rosterLog struct {
	mu     sync.Mutex
	appear []uint8
	vanish []uint8
}

func (r *rosterLog) funcs() RosterFuncs {
	return RosterFuncs{
		Appear: func(p *game.Player) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.appear = append(r.appear, p.ID)
		},
		Vanish: func(id uint8) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.vanish = append(r.vanish, id)
		},
	}
}

//client wired to a room through a pipe
func pipeClient(t *testing.T, router *network.Router) *Client {
	t.Helper()
	server, client := net.Pipe()
	network.NewConn(server, "pipe", router, network.DefaultConfig()).Do()
	c := NewClient("pipe", 0)
	c.Attach(client, "pipe")
	t.Cleanup(c.Close)
	return c
}

func newPipeRouter(t *testing.T) *network.Router {
	t.Helper()
	cfg := conf.DefaultRoomConf()
	cfg.RestartDelay = 0
	m := room.NewManager(cfg, nil)
	t.Cleanup(m.Close)
	return network.NewRouter(m)
}

func pollUntil(t *testing.T, c *Client, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, err := c.Poll()
		return assert.NoError(t, err) && cond()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestClientJoinAndStartRound(t *testing.T) {
	router := newPipeRouter(t)
	c1 := pipeClient(t, router)
	roster := &rosterLog{}
	c1.SetRoster(roster.funcs())
	c2 := pipeClient(t, router)

	for _, c := range []*Client{c1, c2} {
		c := c
		pollUntil(t, c, func() bool { return c.Game().PlayerCount() == 2 })
	}
	assert.NotEqual(t, c1.Me().ID, c2.Me().ID)
	assert.Equal(t, game.RoleSeeker, c1.Me().Role)
	assert.Equal(t, game.RoleHider, c2.Me().Role)

	roster.mu.Lock()
	assert.ElementsMatch(t, []uint8{c1.Me().ID, c2.Me().ID}, roster.appear)
	roster.mu.Unlock()

	now := time.Now()
	for _, c := range []*Client{c1, c2} {
		c.Press(game.ButtonJump)
		assert.True(t, c.Update(now))
		assert.Zero(t, c.Controls().Jump.Downs)
		assert.True(t, c.Controls().Jump.Pressed)
	}
	pollUntil(t, c1, func() bool { return c1.Game().State != game.BeforeStart })

	//the other player leaves
	id2 := c2.Me().ID
	c2.Close()
	pollUntil(t, c1, func() bool { return c1.Game().PlayerCount() == 1 })
	roster.mu.Lock()
	assert.Equal(t, []uint8{id2}, roster.vanish)
	roster.mu.Unlock()
}

func TestClientUpdateThrottled(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	go func() {
		buf := make([]byte, 1024)
		for {
			if _, err := server.Read(buf); err != nil {
				return
			}
		}
	}()

	c := NewClient("pipe", 0)
	c.Attach(client, "pipe")
	defer c.Close()

	now := time.Now()
	c.Press(game.ButtonLeft)
	assert.True(t, c.Update(now))
	c.Press(game.ButtonLeft)
	assert.False(t, c.Update(now))
	assert.Equal(t, uint8(2), c.Controls().Left.Downs, "downs kept until sent")
	assert.True(t, c.Update(now.Add(time.Second/define.Frequency+time.Millisecond)))
	assert.Zero(t, c.Controls().Left.Downs)

	c.Release(game.ButtonLeft)
	assert.False(t, c.Controls().Left.Pressed)
}

func TestClientBadStateCloses(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()

	c := NewClient("pipe", 0)
	c.Attach(client, "pipe")

	//three players announced, payload ends right after
	_, err := server.Write([]byte{'s', 1, 0, 0, 3})
	require.NoError(t, err)

	var pollErr error
	require.Eventually(t, func() bool {
		_, pollErr = c.Poll()
		return pollErr != nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, pollErr, define.ErrStateTruncated)
	assert.True(t, c.IsClosed())
	assert.Equal(t, 0, c.Game().PlayerCount())
}

func TestClientSetSecurity(t *testing.T) {
	c := NewClient("127.0.0.1", 1)
	assert.ErrorIs(t, c.SetSecurity("", "salt"), define.ErrorOfInvalidPara)
	assert.ErrorIs(t, c.DialServer(), define.ErrorOfInvalidPara)
	assert.NoError(t, c.SetSecurity("pw", "salt"))
}
