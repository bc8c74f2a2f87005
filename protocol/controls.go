package protocol

import (
	"fmt"

	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/game"
	"github.com/andyzhou/hideseek/iface"
	"github.com/rs/zerolog/log"
)

/*
 * controls message, client -> server
 * one byte per button in order left, right, up, down, jump
 * |--pressed(bit7)--|--downs(bit6..0)--|
 */

//inter macro define
const (
	ControlsSize = int(game.ButtonCount)
	pressedBit   = 0x80
	downsMask    = 0x7f
)

//pack one button, the raw counter is masked not clamped
func PackButton(b game.Button) uint8 {
	v := b.Downs & downsMask
	if b.Pressed {
		v |= pressedBit
	}
	return v
}

//unpack one button byte
func UnpackButton(v uint8) (downs uint8, pressed bool) {
	return v & downsMask, v&pressedBit != 0
}

//encode a full controls frame
func EncodeControls(c *game.Controls) []byte {
	payload := make([]byte, 0, ControlsSize)
	for _, b := range c.Buttons() {
		if b.Downs&pressedBit != 0 {
			log.Warn().Uint8("downs", b.Downs).Msg("wow, you are really good at pressing buttons")
		}
		payload = append(payload, PackButton(*b))
	}
	//five bytes always fit the length field
	data, _ := NewPacket(KindControls, payload).Pack()
	return data
}

//append a controls frame to the outgoing buffer
func SendControls(conn iface.IBuffer, c *game.Controls) {
	conn.Send(EncodeControls(c))
}

//read one controls frame from the front of the incoming buffer
//returns false if no complete controls frame is buffered
//downs are added to c, pressed is overwritten
func RecvControls(conn iface.IBuffer, c *game.Controls) (bool, error) {
	buf := conn.RecvBuffer()

	//expecting [kind, size_low, size_mid, size_high]
	kind, size, ok := PeekHead(buf)
	if !ok || kind != KindControls {
		return false, nil
	}
	if size != uint32(ControlsSize) {
		return false, fmt.Errorf("%w: got %d", define.ErrControlsSize, size)
	}

	//expecting complete message
	if len(buf) < HeadLen+ControlsSize {
		return false, nil
	}

	for i, b := range c.Buttons() {
		downs, pressed := UnpackButton(buf[HeadLen+i])
		b.Pressed = pressed
		b.AddDowns(downs)
	}

	//delete message from buffer
	conn.Consume(HeadLen + ControlsSize)
	return true, nil
}
