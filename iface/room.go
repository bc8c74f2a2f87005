package iface

/*
 * interface of room
 */

//read only view of a room, safe to share
type RoomInfo struct {
	Id      uint64  `json:"id"`
	Players int     `json:"players"`
	State   string  `json:"state"`
	Timer   float32 `json:"timer"`
	Round   int     `json:"round"`
	Ticks   uint32  `json:"ticks"`
}

type IRoom interface {
	Stop()
	GetId() uint64
	IsOver() bool
	CanJoin() bool
	GetInfo() RoomInfo
	IConnCallBack
}
