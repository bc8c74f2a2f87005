package iface

/*
 * interface of connect
 */

//byte buffers a codec reads and writes
type IBuffer interface {
	Send(data []byte)   //append to outgoing bytes
	RecvBuffer() []byte //buffered incoming bytes
	Consume(n int)      //drop n incoming bytes from the front
}

//callback for connect
type IConnCallBack interface {
	OnConnect(conn IConn) bool //cb for connected
	OnMessage(conn IConn) bool //cb for newly buffered bytes
	OnClose(conn IConn)        //cb for closed conn
}

type IConn interface {
	IBuffer
	Close()
	IsClosed() bool
	Do()
	GetId() string
	GetRemoteAddr() string
	GetActiveTime() int64
	SetCallBack(cb IConnCallBack)
}
