package protocol

import "github.com/andyzhou/hideseek/iface"

/*
 * in memory byte buffers, implement of IBuffer
 * - used where no real connection exists, e.g. loopback and tests
 */

var _ iface.IBuffer = (*Buffer)(nil)

//face info
type Buffer struct {
	sendBuf []byte
	recvBuf []byte
}

//construct
func NewBuffer() *Buffer {
	return &Buffer{}
}

//append to outgoing bytes
func (f *Buffer) Send(data []byte) {
	f.sendBuf = append(f.sendBuf, data...)
}

//buffered incoming bytes
func (f *Buffer) RecvBuffer() []byte {
	return f.recvBuf
}

//drop n bytes from the front of incoming bytes
func (f *Buffer) Consume(n int) {
	if n >= len(f.recvBuf) {
		f.recvBuf = f.recvBuf[:0]
		return
	}
	rest := copy(f.recvBuf, f.recvBuf[n:])
	f.recvBuf = f.recvBuf[:rest]
}

//append to incoming bytes
func (f *Buffer) Feed(data []byte) {
	f.recvBuf = append(f.recvBuf, data...)
}

//take and clear outgoing bytes
func (f *Buffer) TakeSent() []byte {
	out := f.sendBuf
	f.sendBuf = nil
	return out
}

//move outgoing bytes of f into incoming bytes of peer
func (f *Buffer) FlushTo(peer *Buffer) {
	peer.Feed(f.TakeSent())
}
