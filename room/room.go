package room

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyzhou/hideseek/conf"
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/iface"
	"github.com/rs/zerolog/log"
)

/*
 * room face, implement of IRoom
 * - main process owns the round, connections talk to it over chans
 */

//inter macro define
const (
	TimeOut         = time.Minute * 5 //close if nobody joins in time
	InOutChanSize   = 1024
	MessageChanSize = 2048
)

//face info
type Room struct {
	roomId      uint64 //room id
	conf        conf.RoomConf
	closeFlag   int32
	seats       int32 //accepted conns not yet closed
	joinable    int32 //round is still in BeforeStart
	round       *Round
	frame       *Frame
	gl          iface.IGameListener //outside listener, may be nil
	inChan      chan iface.IConn
	outChan     chan iface.IConn
	messageChan chan iface.IConn
	closeChan   chan bool
	doneChan    chan struct{}
	closeOnce   sync.Once
}

//construct
func NewRoom(
	roomId uint64,
	cfg conf.RoomConf,
	gl iface.IGameListener,
) *Room {
	//self init
	this := &Room{
		roomId:      roomId,
		conf:        cfg,
		joinable:    1,
		frame:       NewFrame(roomId),
		gl:          gl,
		inChan:      make(chan iface.IConn, InOutChanSize),
		outChan:     make(chan iface.IConn, InOutChanSize),
		messageChan: make(chan iface.IConn, MessageChanSize),
		closeChan:   make(chan bool),
		doneChan:    make(chan struct{}),
	}

	//init round instance
	this.round = NewRound(roomId, cfg, this)
	this.frame.SetInfo(this.round.Info())

	//spawn main process
	go this.runMainProcess()

	return this
}

func (f *Room) Stop() {
	f.closeOnce.Do(func() {
		close(f.closeChan)
	})
}

//closed once the main process has quit
func (f *Room) Done() <-chan struct{} {
	return f.doneChan
}

func (f *Room) GetId() uint64 {
	return f.roomId
}

func (f *Room) IsOver() bool {
	return atomic.LoadInt32(&f.closeFlag) != 0
}

//open, still in lobby and a seat free
func (f *Room) CanJoin() bool {
	return !f.IsOver() &&
		atomic.LoadInt32(&f.joinable) != 0 &&
		int(atomic.LoadInt32(&f.seats)) < f.conf.MaxPlayers
}

func (f *Room) GetInfo() iface.RoomInfo {
	return f.frame.GetInfo()
}

//////////////////
//cb for iConnect
//////////////////

//cb for OnConnect, reserves a seat
func (f *Room) OnConnect(conn iface.IConn) bool {
	if f.IsOver() || !f.reserveSeat() {
		return false
	}
	conn.SetCallBack(f)
	select {
	case f.inChan <- conn:
		return true
	case <-f.doneChan:
		atomic.AddInt32(&f.seats, -1)
		return false
	}
}

//cb for OnMessage, wakes main process to drain the conn
func (f *Room) OnMessage(conn iface.IConn) bool {
	select {
	case f.messageChan <- conn:
	case <-f.doneChan:
		return false
	default:
		//main process is behind, next tick drains every seat
	}
	return true
}

//cb for OnClose
func (f *Room) OnClose(conn iface.IConn) {
	select {
	case f.outChan <- conn:
	case <-f.doneChan:
	}
}

//////////////////////
//cb for IGameListener
//////////////////////

func (f *Room) OnJoinGame(roomId uint64, playerId uint8) {
	log.Info().Uint64("room", roomId).Uint8("player", playerId).Msg("player joined")
	if f.gl != nil {
		f.gl.OnJoinGame(roomId, playerId)
	}
}

func (f *Room) OnStartGame(roomId uint64) {
	log.Info().Uint64("room", roomId).Msg("round started")
	if f.gl != nil {
		f.gl.OnStartGame(roomId)
	}
}

func (f *Room) OnLeaveGame(roomId uint64, playerId uint8) {
	log.Info().Uint64("room", roomId).Uint8("player", playerId).Msg("player left")
	if f.gl != nil {
		f.gl.OnLeaveGame(roomId, playerId)
	}
}

func (f *Room) OnGameOver(roomId uint64, result string) {
	log.Info().Uint64("room", roomId).Str("result", result).Msg("round over")
	if f.gl != nil {
		f.gl.OnGameOver(roomId, result)
	}
}

//////////////
//private func
//////////////

//main process
func (f *Room) runMainProcess() {
	var (
		ticker    = time.NewTicker(f.conf.TickInterval())
		timer     = time.NewTimer(TimeOut)
		hadPlayer bool
	)

	defer func() {
		//clean up
		ticker.Stop()
		timer.Stop()
		atomic.StoreInt32(&f.closeFlag, 1)
		close(f.doneChan)
		f.round.Close()
		f.publish()
		log.Info().Uint64("room", f.roomId).Msg("room closed")
	}()

	log.Info().Uint64("room", f.roomId).Msg("room is running")

	//loop
	for {
		select {
		case <-f.closeChan:
			//closed
			return

		case <-ticker.C:
			f.round.Tick()
			f.publish()

		case <-timer.C:
			//nobody came
			if f.round.PlayerCount() == 0 {
				return
			}

		case conn := <-f.messageChan:
			if err := f.round.ProcessMessage(conn); err != nil {
				log.Warn().Err(err).Uint64("room", f.roomId).
					Str("conn", conn.GetId()).Msg("bad message, closing connection")
				conn.Close()
			}

		case conn := <-f.inChan: //join
			if err := f.round.JoinGame(conn); err != nil {
				log.Warn().Err(err).Uint64("room", f.roomId).
					Str("conn", conn.GetId()).Msg("join refused")
				conn.Close()
				break
			}
			hadPlayer = true
			f.publish()

		case conn := <-f.outChan: //leave
			f.round.LeaveGame(conn)
			atomic.AddInt32(&f.seats, -1)
			f.publish()
			if hadPlayer && f.round.PlayerCount() == 0 && atomic.LoadInt32(&f.seats) == 0 {
				//last one out
				return
			}
		}
	}
}

//share round fields with other goroutines
func (f *Room) publish() {
	info := f.round.Info()
	f.frame.SetInfo(info)
	if f.round.GetGame().State == game.BeforeStart {
		atomic.StoreInt32(&f.joinable, 1)
	} else {
		atomic.StoreInt32(&f.joinable, 0)
	}
}

func (f *Room) reserveSeat() bool {
	for {
		seats := atomic.LoadInt32(&f.seats)
		if int(seats) >= f.conf.MaxPlayers {
			return false
		}
		if atomic.CompareAndSwapInt32(&f.seats, seats, seats+1) {
			return true
		}
	}
}
