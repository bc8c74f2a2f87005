package room

import (
	"fmt"

	"github.com/andyzhou/hideseek/conf"
	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/iface"
	"github.com/rs/zerolog/log"
)

/*
 * round face, the authority side of one room
 * - owns the game session and the seats bound to it
 * - only the room main process calls in here
 */

//face info
type Round struct {
	id        uint64 //room id
	conf      conf.RoomConf
	gl        iface.IGameListener
	game      *game.Game
	seats     []*Player //join order
	joinCount int
	round     int
	stepper   *Stepper
}

//construct
func NewRound(
	roomId uint64,
	cfg conf.RoomConf,
	gl iface.IGameListener,
) *Round {
	//self init
	this := &Round{
		id:      roomId,
		conf:    cfg,
		gl:      gl,
		game:    game.NewGame(cfg.Seed, cfg.RoundTime),
		seats:   make([]*Player, 0),
		stepper: NewStepper(cfg.TickElapsed()),
	}
	return this
}

//player join game
func (f *Round) JoinGame(conn iface.IConn) error {
	//basic check
	if conn == nil {
		return define.ErrorOfInvalidPara
	}
	if len(f.seats) >= f.conf.MaxPlayers {
		return define.ErrRoomFull
	}

	//spawn into session
	p, err := f.game.SpawnPlayer()
	if err != nil {
		return err
	}
	seat := NewPlayer(conn, f.joinCount)
	seat.Connect(p)
	f.joinCount++
	f.seats = append(f.seats, seat)

	//call cb of game listener
	f.gl.OnJoinGame(f.id, p.ID)
	return nil
}

//leave game, false if conn holds no seat
func (f *Round) LeaveGame(conn iface.IConn) bool {
	idx := f.seatIndex(conn)
	if idx < 0 {
		return false
	}
	seat := f.seats[idx]
	p := seat.GetPlayer()

	f.seats = append(f.seats[:idx], f.seats[idx+1:]...)
	seat.CleanUp()
	if p == nil {
		return true
	}
	f.game.RemovePlayer(p)

	//call cb of game listener
	f.gl.OnLeaveGame(f.id, p.ID)
	return true
}

//drain buffered controls of one conn
func (f *Round) ProcessMessage(conn iface.IConn) error {
	idx := f.seatIndex(conn)
	if idx < 0 {
		//leave still in flight
		return nil
	}
	_, err := f.seats[idx].ReadControls()
	return err
}

//advance one fixed step and send state to every seat
func (f *Round) Tick() {
	//catch up on input
	for _, seat := range f.seats {
		if _, err := seat.ReadControls(); err != nil {
			f.kick(seat, err)
		}
	}

	prev := f.game.State
	f.game.Update(f.stepper.GetStep())
	f.stepper.Tick()
	f.notifyState(prev)

	//send state to players
	for _, seat := range f.seats {
		if err := seat.SendState(f.game); err != nil {
			f.kick(seat, err)
		}
	}

	//start next round once the result has been on show long enough
	over := f.stepper.MarkOver(f.game.State.IsOver())
	if f.conf.RestartDelay > 0 && over >= float32(f.conf.RestartDelay.Seconds()) {
		f.restart()
	}
}

//snapshot of round fields
func (f *Round) Info() iface.RoomInfo {
	return iface.RoomInfo{
		Id:      f.id,
		Players: len(f.seats),
		State:   f.game.State.String(),
		Timer:   f.game.Timer,
		Round:   f.round,
		Ticks:   f.stepper.GetTickCount(),
	}
}

func (f *Round) GetGame() *game.Game {
	return f.game
}

func (f *Round) PlayerCount() int {
	return len(f.seats)
}

//close every seat
func (f *Round) Close() {
	for _, seat := range f.seats {
		seat.CleanUp()
	}
	f.seats = f.seats[:0]
}

//////////////
//private func
//////////////

//new session, connected players respawn in join order
func (f *Round) restart() {
	f.round++
	f.game = game.NewGame(f.conf.Seed+uint64(f.round), f.conf.RoundTime)
	f.stepper.Reset()
	for _, seat := range f.seats {
		p, err := f.game.SpawnPlayer()
		if err != nil {
			seat.Connect(nil)
			f.kick(seat, err)
			continue
		}
		seat.Connect(p)
	}
	log.Info().Uint64("room", f.id).Int("round", f.round).
		Int("players", len(f.seats)).Msg("round restarted")
}

//fire listener callbacks for state transitions
func (f *Round) notifyState(prev game.GameState) {
	now := f.game.State
	if prev == game.BeforeStart && now != game.BeforeStart {
		f.gl.OnStartGame(f.id)
	}
	if !prev.IsOver() && now.IsOver() {
		f.gl.OnGameOver(f.id, now.String())
	}
}

//drop a misbehaving conn, the seat goes on close
func (f *Round) kick(seat *Player, err error) {
	conn := seat.GetConn()
	if conn == nil {
		return
	}
	log.Warn().Err(err).Uint64("room", f.id).
		Str("conn", conn.GetId()).Msg("closing connection")
	conn.Close()
}

func (f *Round) seatIndex(conn iface.IConn) int {
	for i, seat := range f.seats {
		if seat.GetConn() == conn {
			return i
		}
	}
	return -1
}

func unknownKind(kind uint8) error {
	return fmt.Errorf("%w: %d", define.ErrUnknownMessage, kind)
}
