package protocol

import (
	"fmt"

	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/iface"
)

/*
 * packet data face, implement of IPacket
 * same framing both directions
 */

/*
|--kind(uint8)--|--payloadLen(uint24, low byte first)--|--------payload--------|
|-------1-------|------------------3-------------------|-----(payloadLen)------|
*/

//inter macro define
const (
	KindLen       = 1
	SizeLen       = 3
	HeadLen       = KindLen + SizeLen
	MaxPayloadLen = 1<<24 - 1
)

//message kinds
const (
	KindControls uint8 = 1   //client -> server
	KindState    uint8 = 's' //server -> client
)

var _ iface.IPacket = (*Packet)(nil)

//data info
type Packet struct {
	kind uint8
	data []byte
}

//construct
func NewPacket(kind uint8, data []byte) *Packet {
	//self init
	this := &Packet{
		kind: kind,
		data: data,
	}
	return this
}

//pack data
func (f *Packet) Pack() ([]byte, error) {
	dataLen := len(f.data)
	if dataLen > MaxPayloadLen {
		return nil, fmt.Errorf("%w: %d bytes", define.ErrPayloadTooLong, dataLen)
	}

	//init data buff
	dataBuff := make([]byte, HeadLen, HeadLen+dataLen)

	//write message kind
	dataBuff[0] = f.kind

	//write length
	putSize(dataBuff[KindLen:], uint32(dataLen))

	//write data
	dataBuff = append(dataBuff, f.data...)
	return dataBuff, nil
}

//get
func (f *Packet) GetData() []byte {
	return f.data
}

func (f *Packet) GetKind() uint8 {
	return f.kind
}

//read the frame head at the front of buf
//ok is false while fewer than HeadLen bytes are buffered
func PeekHead(buf []byte) (kind uint8, size uint32, ok bool) {
	if len(buf) < HeadLen {
		return 0, 0, false
	}
	kind = buf[0]
	size = uint32(buf[3])<<16 | uint32(buf[2])<<8 | uint32(buf[1])
	return kind, size, true
}

func putSize(dst []byte, size uint32) {
	dst[0] = uint8(size)
	dst[1] = uint8(size >> 8)
	dst[2] = uint8(size >> 16)
}
