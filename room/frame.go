package room

import (
	"sync"

	"github.com/andyzhou/hideseek/iface"
)

/*
 * last published tick summary, read by other goroutines
 */

//face info
type Frame struct {
	info iface.RoomInfo
	sync.RWMutex
}

//construct
func NewFrame(roomId uint64) *Frame {
	//self init
	this := &Frame{
		info: iface.RoomInfo{
			Id: roomId,
		},
	}
	return this
}

func (f *Frame) GetInfo() iface.RoomInfo {
	f.RLock()
	defer f.RUnlock()
	return f.info
}

func (f *Frame) SetInfo(info iface.RoomInfo) {
	f.Lock()
	defer f.Unlock()
	f.info = info
}
