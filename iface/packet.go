package iface

/*
 * interface of packet
 */

type IPacket interface {
	GetKind() uint8
	GetData() []byte
	Pack() ([]byte, error)
}
