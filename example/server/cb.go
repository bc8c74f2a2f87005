package main

import (
	"github.com/rs/zerolog/log"
)

/*
 * call back for rooms, implement of IGameListener
 */

//face info
type RoomCallBack struct {
}

//construct
func NewRoomCallBack() *RoomCallBack {
	//self init
	this := &RoomCallBack{}
	return this
}

func (f *RoomCallBack) OnJoinGame(roomId uint64, playerId uint8) {
	log.Debug().Uint64("room", roomId).Uint8("player", playerId).Msg("RoomCallBack:OnJoinGame")
}

func (f *RoomCallBack) OnStartGame(roomId uint64) {
	log.Debug().Uint64("room", roomId).Msg("RoomCallBack:OnStartGame")
}

func (f *RoomCallBack) OnLeaveGame(roomId uint64, playerId uint8) {
	log.Debug().Uint64("room", roomId).Uint8("player", playerId).Msg("RoomCallBack:OnLeaveGame")
}

func (f *RoomCallBack) OnGameOver(roomId uint64, result string) {
	log.Debug().Uint64("room", roomId).Str("result", result).Msg("RoomCallBack:OnGameOver")
}
