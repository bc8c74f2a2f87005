package room

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyzhou/hideseek/conf"
	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/iface"
	"github.com/rs/zerolog/log"
)

/*
 * manager face, implement of IManager
 * - dynamic room manager, rooms are created on demand
 */

//inter macro define
const (
	RoomCheckRate = time.Second * 60
)

//face info
type Manager struct {
	conf       conf.RoomConf
	gl         iface.IGameListener
	roomCount  int32
	lastRoomId uint64
	rooms      *sync.Map //running room map
	assignLock sync.Mutex
	closeChan  chan bool
	closeOnce  sync.Once
}

//construct
func NewManager(cfg conf.RoomConf, gl iface.IGameListener) *Manager {
	return NewManagerWithRate(cfg, gl, RoomCheckRate)
}

func NewManagerWithRate(
	cfg conf.RoomConf,
	gl iface.IGameListener,
	checkRate time.Duration,
) *Manager {
	//self init
	this := &Manager{
		conf:      cfg,
		gl:        gl,
		rooms:     new(sync.Map),
		closeChan: make(chan bool),
	}
	//spawn main process
	go this.runMainProcess(checkRate)
	return this
}

//close
func (f *Manager) Close() {
	f.closeOnce.Do(func() {
		close(f.closeChan)
	})
	sf := func(k, v interface{}) bool {
		room, ok := v.(iface.IRoom)
		if ok {
			room.Stop()
		}
		return true
	}
	f.rooms.Range(sf)
}

//get rooms
func (f *Manager) GetRooms() int32 {
	return atomic.LoadInt32(&f.roomCount)
}

//close room
func (f *Manager) CloseRoom(id uint64) bool {
	//basic check
	if id <= 0 {
		return false
	}
	v, ok := f.rooms.LoadAndDelete(id)
	if !ok {
		return false
	}
	atomic.AddInt32(&f.roomCount, -1)
	if room, ok := v.(iface.IRoom); ok {
		room.Stop()
	}
	return true
}

//get room
func (f *Manager) GetRoom(id uint64) iface.IRoom {
	//basic check
	if id <= 0 {
		return nil
	}
	//check room
	v, ok := f.rooms.Load(id)
	if !ok {
		return nil
	}
	room, ok := v.(iface.IRoom)
	if !ok {
		return nil
	}
	return room
}

//add room
func (f *Manager) AddRoom(room iface.IRoom) bool {
	//basic check
	if room == nil {
		return false
	}
	//sync into map
	if _, loaded := f.rooms.LoadOrStore(room.GetId(), room); loaded {
		return false
	}
	atomic.AddInt32(&f.roomCount, 1)
	return true
}

//pick the oldest joinable room, or open a new one
func (f *Manager) Assign() (iface.IRoom, error) {
	f.assignLock.Lock()
	defer f.assignLock.Unlock()

	select {
	case <-f.closeChan:
		return nil, define.ErrRoomClosed
	default:
	}

	var found iface.IRoom
	sf := func(k, v interface{}) bool {
		room, ok := v.(iface.IRoom)
		if !ok || !room.CanJoin() {
			return true
		}
		if found == nil || room.GetId() < found.GetId() {
			found = room
		}
		return true
	}
	f.rooms.Range(sf)
	if found != nil {
		return found, nil
	}

	//open new room
	id := atomic.AddUint64(&f.lastRoomId, 1)
	room := NewRoom(id, f.conf, f.gl)
	f.AddRoom(room)
	log.Info().Uint64("room", id).Msg("room opened")
	return room, nil
}

//info of every room by id
func (f *Manager) ListRooms() []iface.RoomInfo {
	result := make([]iface.RoomInfo, 0)
	sf := func(k, v interface{}) bool {
		room, ok := v.(iface.IRoom)
		if ok {
			result = append(result, room.GetInfo())
		}
		return true
	}
	f.rooms.Range(sf)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Id < result[j].Id
	})
	return result
}

//////////////
//private func
//////////////

//run main process
func (f *Manager) runMainProcess(checkRate time.Duration) {
	var (
		ticker = time.NewTicker(checkRate)
	)

	//defer
	defer func() {
		//clean up
		ticker.Stop()
	}()

	//loop
	for {
		select {
		case <-ticker.C:
			//clean up rooms
			f.cleanUpRooms()
		case <-f.closeChan:
			return
		}
	}
}

//clean up closed room
func (f *Manager) cleanUpRooms() {
	sf := func(k, v interface{}) bool {
		room, ok := v.(iface.IRoom)
		if !ok || !room.IsOver() {
			return true
		}
		//clean up
		if _, loaded := f.rooms.LoadAndDelete(k); loaded {
			atomic.AddInt32(&f.roomCount, -1)
		}
		return true
	}
	f.rooms.Range(sf)
}
