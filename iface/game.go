package iface

/*
 * interface of game listener
 */

type IGameListener interface {
	OnJoinGame(roomId uint64, playerId uint8)
	OnStartGame(roomId uint64)
	OnLeaveGame(roomId uint64, playerId uint8)
	OnGameOver(roomId uint64, result string)
}
