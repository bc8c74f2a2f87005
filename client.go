package hideseek

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/iface"
	"github.com/andyzhou/hideseek/network"
	"github.com/andyzhou/hideseek/protocol"
	"github.com/rs/zerolog/log"
	"github.com/xtaci/kcp-go"
	"golang.org/x/time/rate"
)

/*
 * client api face
 * - keeps local controls and a replica of the server session
 * - one goroutine drives Press/Release/Update/Poll
 */

//face info
type Client struct {
	address   string
	password  string
	salt      string
	block     kcp.BlockCrypt
	conn      *network.Conn
	config    network.Config
	controls  game.Controls
	game      *game.Game //replica
	limiter   *rate.Limiter
	roster    RosterListener
	known     map[uint8]string //id -> name of players last seen
	closeFlag int32
}

//construct
func NewClient(
	serverHost string,
	serverPort int,
) *Client {
	this := &Client{
		address: fmt.Sprintf("%v:%v", serverHost, serverPort),
		config:  network.DefaultConfig(),
		game:    game.NewGame(0, 0),
		limiter: rate.NewLimiter(rate.Limit(define.Frequency), 1),
		known:   make(map[uint8]string),
	}
	return this
}

//set security, step-1
func (c *Client) SetSecurity(password, salt string) error {
	//check
	if password == "" || salt == "" {
		return define.ErrorOfInvalidPara
	}
	block, err := network.NewBlockCrypt(password, salt)
	if err != nil {
		return err
	}
	c.password = password
	c.salt = salt
	c.block = block
	return nil
}

//set roster listener, step-2, option
func (c *Client) SetRoster(roster RosterListener) {
	c.roster = roster
}

//limit controls sends per second, option
func (c *Client) SetSendRate(perSecond float64) {
	c.limiter.SetLimit(rate.Limit(perSecond))
}

//dial server, step-3
func (c *Client) DialServer() error {
	//check
	if c.address == "" || c.block == nil {
		return define.ErrorOfInvalidPara
	}

	//dial server
	session, err := kcp.DialWithOptions(c.address, c.block, network.KcpDataShards, network.KcpParityShards)
	if err != nil {
		return err
	}
	network.SetUdpMode(session)
	c.Attach(session, session.RemoteAddr().String())

	//kcp server accepts on first segment, announce with empty controls
	protocol.SendControls(c.conn, &c.controls)
	return nil
}

//run over an already open stream
func (c *Client) Attach(raw io.ReadWriteCloser, remoteAddr string) {
	c.conn = network.NewConn(raw, remoteAddr, c, c.config)
	c.conn.Do()
}

//quit
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

func (c *Client) IsClosed() bool {
	return atomic.LoadInt32(&c.closeFlag) != 0
}

//button went down
func (c *Client) Press(kind game.ButtonKind) {
	if b := c.controls.Button(kind); b != nil {
		b.RecordPress()
	}
}

//button went up
func (c *Client) Release(kind game.ButtonKind) {
	if b := c.controls.Button(kind); b != nil {
		b.RecordRelease()
	}
}

//local controls not yet sent
func (c *Client) Controls() game.Controls {
	return c.controls
}

//send controls if the rate allows, downs restart after each send
func (c *Client) Update(now time.Time) bool {
	if c.conn == nil || c.IsClosed() {
		return false
	}
	if !c.limiter.AllowN(now, 1) {
		return false
	}
	protocol.SendControls(c.conn, &c.controls)
	c.controls.ResetDowns()
	return true
}

//apply every buffered state frame to the replica
//a framing error closes the connection
func (c *Client) Poll() (int, error) {
	if c.conn == nil {
		return 0, nil
	}
	frames := 0
	for {
		ok, err := protocol.RecvState(c.conn, c.game)
		if err == nil && !ok {
			err = c.checkHead()
		}
		if err != nil {
			log.Warn().Err(err).Str("conn", c.conn.GetId()).Msg("bad state from server, closing")
			c.conn.Close()
			return frames, err
		}
		if !ok {
			break
		}
		frames++
	}
	if frames > 0 {
		c.syncRoster()
	}
	return frames, nil
}

//replica of the server session
func (c *Client) Game() *game.Game {
	return c.game
}

//own player, the server sends it first
func (c *Client) Me() *game.Player {
	players := c.game.Players()
	if len(players) == 0 {
		return nil
	}
	return players[0]
}

//////////////////
//cb for iConnect
//////////////////

func (c *Client) OnConnect(conn iface.IConn) bool {
	log.Debug().Str("conn", conn.GetId()).Str("remote", conn.GetRemoteAddr()).Msg("connected")
	return true
}

//bytes are picked up by Poll
func (c *Client) OnMessage(conn iface.IConn) bool {
	return true
}

func (c *Client) OnClose(conn iface.IConn) {
	atomic.StoreInt32(&c.closeFlag, 1)
	log.Info().Str("conn", conn.GetId()).Msg("disconnected")
}

//////////////
//private func
//////////////

//a whole header of another kind will never become state
func (c *Client) checkHead() error {
	kind, _, ok := protocol.PeekHead(c.conn.RecvBuffer())
	if ok && kind != protocol.KindState {
		return fmt.Errorf("%w: %d", define.ErrUnknownMessage, kind)
	}
	return nil
}

//report players that came or went since the last poll
func (c *Client) syncRoster() {
	current := make(map[uint8]string)
	for _, p := range c.game.Players() {
		current[p.ID] = p.Name
	}
	for id, name := range c.known {
		if now, ok := current[id]; !ok || now != name {
			delete(c.known, id)
			if c.roster != nil {
				c.roster.OnPlayerVanish(id)
			}
		}
	}
	for _, p := range c.game.Players() {
		if _, ok := c.known[p.ID]; ok {
			continue
		}
		c.known[p.ID] = p.Name
		if c.roster != nil {
			c.roster.OnPlayerAppear(p)
		}
	}
}
