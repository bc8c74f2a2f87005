package protocol

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/iface"
	"github.com/go-gl/mathgl/mgl32"
)

/*
 * state message, server -> client
 * player_count:u8,
 *   per player { pos:f32x2, vel:f32x2, color:f32x3,
 *                role:u8, is_ready:u8, player_id:u8, is_caught:u8,
 *                name_len:u8, name:u8[name_len] },
 * spotlight { pos:f32x3, dir:f32x3, energy:f32x3, cutoff:f32 },
 * timer:f32, game_state:u8
 * floats are copied in host byte order, peers must agree on it
 */

//decoded state message, applied to a session only when complete
type StateSnapshot struct {
	Players   []*game.Player
	Spotlight game.Spotlight
	Timer     float32
	State     game.GameState
}

//encode a full state frame, viewpoint (if in the session) goes first
func EncodeState(g *game.Game, viewpoint *game.Player) ([]byte, error) {
	players := g.Players()
	if len(players) > define.MaxPlayers {
		return nil, fmt.Errorf("%w: %d players", define.ErrorOfInvalidPara, len(players))
	}
	if viewpoint != nil && g.PlayerByID(viewpoint.ID) != viewpoint {
		viewpoint = nil
	}

	w := &writer{}
	w.u8(uint8(len(players)))
	if viewpoint != nil {
		w.player(viewpoint)
	}
	for _, p := range players {
		if p == viewpoint {
			continue
		}
		w.player(p)
	}
	w.spotlight(&g.Spotlight)
	w.f32(g.Timer)
	w.u8(uint8(g.State))

	return NewPacket(KindState, w.buf).Pack()
}

//append a state frame to the outgoing buffer
func SendState(conn iface.IBuffer, g *game.Game, viewpoint *game.Player) error {
	data, err := EncodeState(g, viewpoint)
	if err != nil {
		return err
	}
	conn.Send(data)
	return nil
}

//read one state frame from the front of the incoming buffer into g
//returns false if no complete state frame is buffered
//on error g is left untouched
func RecvState(conn iface.IBuffer, g *game.Game) (bool, error) {
	buf := conn.RecvBuffer()

	kind, size, ok := PeekHead(buf)
	if !ok || kind != KindState {
		return false, nil
	}

	//expecting complete message
	if len(buf) < HeadLen+int(size) {
		return false, nil
	}

	snap, err := DecodeStatePayload(buf[HeadLen : HeadLen+int(size)])
	if err != nil {
		return false, err
	}
	snap.ApplyTo(g)

	//delete message from buffer
	conn.Consume(HeadLen + int(size))
	return true, nil
}

//decode a state payload, the declared size is len(payload)
func DecodeStatePayload(payload []byte) (*StateSnapshot, error) {
	r := &reader{data: payload}
	snap := &StateSnapshot{}

	count, err := r.u8()
	if err != nil {
		return nil, err
	}
	snap.Players = make([]*game.Player, 0, count)
	for i := 0; i < int(count); i++ {
		p, err := r.player()
		if err != nil {
			return nil, err
		}
		snap.Players = append(snap.Players, p)
	}

	if err := r.spotlight(&snap.Spotlight); err != nil {
		return nil, err
	}
	if snap.Timer, err = r.f32(); err != nil {
		return nil, err
	}
	gs, err := r.u8()
	if err != nil {
		return nil, err
	}
	snap.State = game.GameState(gs)
	if !snap.State.Valid() {
		return nil, fmt.Errorf("%w: game state %d", define.ErrInvalidEnum, gs)
	}

	if r.at != len(payload) {
		return nil, fmt.Errorf("%w: %d of %d bytes read", define.ErrStateTrailing, r.at, len(payload))
	}
	return snap, nil
}

//replace the replica's players and round fields
func (s *StateSnapshot) ApplyTo(g *game.Game) {
	g.ReplacePlayers(s.Players)
	g.Spotlight = s.Spotlight
	g.Timer = s.Timer
	g.State = s.State
}

///////////////
//private func
///////////////

type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) flag(v bool) {
	if v {
		w.u8(1)
		return
	}
	w.u8(0)
}

func (w *writer) f32(v float32) {
	w.buf = binary.NativeEndian.AppendUint32(w.buf, math.Float32bits(v))
}

func (w *writer) vec2(v mgl32.Vec2) {
	w.f32(v[0])
	w.f32(v[1])
}

func (w *writer) vec3(v mgl32.Vec3) {
	w.f32(v[0])
	w.f32(v[1])
	w.f32(v[2])
}

func (w *writer) player(p *game.Player) {
	w.vec2(p.Position)
	w.vec2(p.Velocity)
	w.vec3(p.Color)
	w.u8(uint8(p.Role))
	w.flag(p.IsReady)
	w.u8(p.ID)
	w.flag(p.IsCaught)

	//truncates player name to 255 bytes
	name := p.Name
	if len(name) > define.MaxNameLen {
		name = name[:define.MaxNameLen]
	}
	w.u8(uint8(len(name)))
	w.buf = append(w.buf, name...)
}

func (w *writer) spotlight(s *game.Spotlight) {
	w.vec3(s.Pos)
	w.vec3(s.Dir)
	w.vec3(s.Energy)
	w.f32(s.Cutoff)
}

type reader struct {
	data []byte
	at   int
}

//copy bytes from payload and advance position
func (r *reader) read(n int) ([]byte, error) {
	if r.at+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d of %d",
			define.ErrStateTruncated, n, r.at, len(r.data))
	}
	b := r.data[r.at : r.at+n]
	r.at += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) f32() (float32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.NativeEndian.Uint32(b)), nil
}

func (r *reader) floats(dst []float32) error {
	for i := range dst {
		v, err := r.f32()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (r *reader) player() (*game.Player, error) {
	p := &game.Player{}
	if err := r.floats(p.Position[:]); err != nil {
		return nil, err
	}
	if err := r.floats(p.Velocity[:]); err != nil {
		return nil, err
	}
	if err := r.floats(p.Color[:]); err != nil {
		return nil, err
	}

	flags, err := r.read(4)
	if err != nil {
		return nil, err
	}
	p.Role = game.Role(flags[0])
	if !p.Role.Valid() {
		return nil, fmt.Errorf("%w: role %d", define.ErrInvalidEnum, flags[0])
	}
	p.IsReady = flags[1] != 0
	p.ID = flags[2]
	p.IsCaught = flags[3] != 0

	nameLen, err := r.u8()
	if err != nil {
		return nil, err
	}
	name, err := r.read(int(nameLen))
	if err != nil {
		return nil, err
	}
	p.Name = string(name)
	return p, nil
}

func (r *reader) spotlight(s *game.Spotlight) error {
	if err := r.floats(s.Pos[:]); err != nil {
		return err
	}
	if err := r.floats(s.Dir[:]); err != nil {
		return err
	}
	if err := r.floats(s.Energy[:]); err != nil {
		return err
	}
	v, err := r.f32()
	if err != nil {
		return err
	}
	s.Cutoff = v
	return nil
}
