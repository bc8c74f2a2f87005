package network

import (
	"sync/atomic"

	"github.com/andyzhou/hideseek/iface"
	"github.com/rs/zerolog/log"
)

/*
 * router face, implement of IConnCallBack
 * - hands every new conn to a room picked by the manager
 * - the room takes over the conn callback from then on
 */

//inter macro define
const (
	AssignTries = 3
)

//face info
type Router struct {
	manager   iface.IManager
	totalConn int64
}

//construct
func NewRouter(manager iface.IManager) *Router {
	//self init
	this := &Router{
		manager: manager,
	}
	return this
}

//cb for connected
func (f *Router) OnConnect(conn iface.IConn) bool {
	//a room may fill up between assign and connect
	for i := 0; i < AssignTries; i++ {
		room, err := f.manager.Assign()
		if err != nil {
			log.Warn().Err(err).Str("conn", conn.GetId()).Msg("no room for connection")
			return false
		}
		if room.OnConnect(conn) {
			atomic.AddInt64(&f.totalConn, 1)
			log.Debug().Str("conn", conn.GetId()).Uint64("room", room.GetId()).Msg("connection routed")
			return true
		}
	}
	log.Warn().Str("conn", conn.GetId()).Msg("rooms kept refusing connection")
	return false
}

//bytes before a room took the conn over
func (f *Router) OnMessage(conn iface.IConn) bool {
	log.Warn().Str("conn", conn.GetId()).Msg("message on unrouted connection")
	return false
}

//cb for connect closed
func (f *Router) OnClose(conn iface.IConn) {}

//conns handed to rooms so far
func (f *Router) GetTotalConn() int64 {
	return atomic.LoadInt64(&f.totalConn)
}
