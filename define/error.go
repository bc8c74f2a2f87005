package define

import "errors"

/*
 * errors declare
 */

var (
	ErrorOfInvalidPara = errors.New("invalid input parameter")

	//for wire codec
	ErrControlsSize   = errors.New("controls message size is not 5")
	ErrStateTruncated = errors.New("ran out of bytes reading state message")
	ErrStateTrailing  = errors.New("trailing data in state message")
	ErrUnknownMessage = errors.New("unknown message kind")
	ErrInvalidEnum    = errors.New("invalid enum value in state message")
	ErrPayloadTooLong = errors.New("payload exceeds 24-bit length field")

	//for session
	ErrSessionFull = errors.New("no free player id in session")
	ErrRoomFull    = errors.New("room is full")
	ErrRoomClosed  = errors.New("room is closed")

	//for network
	ErrWriteBlocking = errors.New("write packet was blocking")
)
