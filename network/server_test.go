package network

import (
	"net"
	"testing"
	"time"

	"github.com/andyzhou/hideseek/conf"
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/protocol"
	"github.com/andyzhou/hideseek/room"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtaci/kcp-go"
)

func newTestRouter(t *testing.T) (*Router, *room.Manager) {
	t.Helper()
	cfg := conf.DefaultRoomConf()
	cfg.RestartDelay = 0
	m := room.NewManager(cfg, nil)
	t.Cleanup(m.Close)
	return NewRouter(m), m
}

//read from the stream until a state frame decodes
func readState(t *testing.T, read func([]byte) (int, error)) *game.Game {
	t.Helper()
	in := protocol.NewBuffer()
	replica := game.NewGame(0, 0)
	buf := make([]byte, 4096)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		n, err := read(buf)
		require.NoError(t, err)
		in.Feed(buf[:n])
		ok, err := protocol.RecvState(in, replica)
		require.NoError(t, err)
		if ok {
			return replica
		}
	}
	t.Fatal("no state frame")
	return nil
}

func TestRouterPipeJoinsRoom(t *testing.T) {
	router, m := newTestRouter(t)
	server, client := net.Pipe()
	defer client.Close()

	c := NewConn(server, "pipe", router, DefaultConfig())
	c.Do()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	replica := readState(t, client.Read)
	require.Equal(t, 1, replica.PlayerCount())
	assert.Equal(t, game.RoleSeeker, replica.Players()[0].Role)
	assert.Equal(t, int64(1), router.GetTotalConn())
	assert.Equal(t, int32(1), m.GetRooms())
}

func TestRouterUnknownFrameCloses(t *testing.T) {
	router, _ := newTestRouter(t)
	server, client := net.Pipe()
	defer client.Close()

	c := NewConn(server, "pipe", router, DefaultConfig())
	c.Do()

	//keep draining so the write loop never blocks
	go func() {
		buf := make([]byte, 4096)
		for {
			if _, err := client.Read(buf); err != nil {
				return
			}
		}
	}()

	_, err := client.Write([]byte{'?', 0, 0, 0})
	require.NoError(t, err)
	require.Eventually(t, c.IsClosed, 2*time.Second, 5*time.Millisecond)
}

func TestWsServerRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := NewWsServer("127.0.0.1:0", router, DefaultConfig())
	require.NoError(t, srv.Start())
	defer srv.Stop()

	ws, _, err := websocket.DefaultDialer.Dial("ws://"+srv.GetAddr()+WsPath, nil)
	require.NoError(t, err)
	defer ws.Close()

	controls := game.Controls{Left: game.Button{Downs: 1, Pressed: true}}
	require.NoError(t, ws.WriteMessage(websocket.BinaryMessage, protocol.EncodeControls(&controls)))

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	stream := NewWsStream(ws)
	replica := readState(t, stream.Read)
	assert.Equal(t, 1, replica.PlayerCount())
}

func TestKcpServerRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := NewKcpServer("127.0.0.1:0", "pw", "salt", router, DefaultConfig())
	require.NoError(t, srv.Start())
	defer srv.Stop()

	block, err := NewBlockCrypt("pw", "salt")
	require.NoError(t, err)
	sess, err := kcp.DialWithOptions(srv.GetAddr(), block, KcpDataShards, KcpParityShards)
	require.NoError(t, err)
	defer sess.Close()
	SetUdpMode(sess)

	//kcp only accepts once the first segment arrives
	controls := game.Controls{}
	_, err = sess.Write(protocol.EncodeControls(&controls))
	require.NoError(t, err)

	sess.SetReadDeadline(time.Now().Add(2 * time.Second))
	replica := readState(t, sess.Read)
	assert.Equal(t, 1, replica.PlayerCount())
}

func TestNewBlockCryptIsDeterministic(t *testing.T) {
	a, err := NewBlockCrypt("pw", "salt")
	require.NoError(t, err)
	b, err := NewBlockCrypt("pw", "salt")
	require.NoError(t, err)

	src := make([]byte, 32)
	for i := range src {
		src[i] = byte(i)
	}
	encA, encB := make([]byte, 32), make([]byte, 32)
	a.Encrypt(encA, src)
	b.Encrypt(encB, src)
	assert.Equal(t, encA, encB)
	assert.NotEqual(t, src, encA)
}
