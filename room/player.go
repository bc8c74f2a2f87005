package room

import (
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/iface"
	"github.com/andyzhou/hideseek/protocol"
)

/*
 * seat face, binds one connection to its game player
 */

//face info
type Player struct {
	idx            int //join order
	client         iface.IConn
	player         *game.Player
	sendFrameCount uint32
}

//construct
func NewPlayer(conn iface.IConn, idx int) *Player {
	//self init
	this := &Player{
		idx:    idx,
		client: conn,
	}
	return this
}

func (f *Player) CleanUp() {
	if f.client != nil {
		f.client.Close()
	}
	f.client = nil
	f.player = nil
}

func (f *Player) GetConn() iface.IConn {
	return f.client
}

func (f *Player) GetIdx() int {
	return f.idx
}

//bind the spawned game player
func (f *Player) Connect(p *game.Player) {
	f.player = p
}

func (f *Player) GetPlayer() *game.Player {
	return f.player
}

func (f *Player) IsOnline() bool {
	return f.client != nil && !f.client.IsClosed() && f.player != nil
}

func (f *Player) GetSendFrameCount() uint32 {
	return f.sendFrameCount
}

//merge every buffered controls frame into the player's controls
func (f *Player) ReadControls() (int, error) {
	if !f.IsOnline() {
		return 0, nil
	}
	frames := 0
	for {
		ok, err := protocol.RecvControls(f.client, &f.player.Controls)
		if err != nil {
			return frames, err
		}
		if !ok {
			break
		}
		frames++
	}

	//anything left that is a whole frame of another kind
	if kind, _, ok := protocol.PeekHead(f.client.RecvBuffer()); ok && kind != protocol.KindControls {
		return frames, unknownKind(kind)
	}
	return frames, nil
}

//send state with this seat's player first
func (f *Player) SendState(g *game.Game) error {
	if !f.IsOnline() {
		return nil
	}
	if err := protocol.SendState(f.client, g, f.player); err != nil {
		return err
	}
	f.sendFrameCount++
	return nil
}
