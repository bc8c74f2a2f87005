package network

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/iface"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

/*
 * conn face, implement of IConn
 * - byte stream over any io.ReadWriteCloser
 * - read loop appends into the receive buffer, write loop flushes sends
 */

//deadline setters of net.Conn, optional on the raw conn
type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

//face info
type Conn struct {
	id         string
	remoteAddr string
	conn       io.ReadWriteCloser //raw connection
	config     Config
	cbLock     sync.RWMutex
	callback   iface.IConnCallBack //cb interface for out side
	recvLock   sync.Mutex
	recvBuf    []byte
	sendLock   sync.Mutex
	sendBuf    []byte
	sendChan   chan struct{}
	activeTime int64
	closeOnce  sync.Once
	closeFlag  int32
	closeChan  chan bool
	wg         *sync.WaitGroup
}

//construct
func NewConn(
	raw io.ReadWriteCloser,
	remoteAddr string,
	cb iface.IConnCallBack,
	config Config,
) *Conn {
	//self init
	this := &Conn{
		id:         uuid.NewString(),
		remoteAddr: remoteAddr,
		conn:       raw,
		config:     config,
		callback:   cb,
		sendChan:   make(chan struct{}, 1),
		activeTime: time.Now().Unix(),
		closeChan:  make(chan bool),
		wg:         new(sync.WaitGroup),
	}
	return this
}

//close
func (f *Conn) Close() {
	f.closeOnce.Do(func() {
		atomic.StoreInt32(&f.closeFlag, 1)
		close(f.closeChan)
		f.conn.Close()
		if cb := f.getCallBack(); cb != nil {
			cb.OnClose(f)
		}
	})
}

//check is closed
func (f *Conn) IsClosed() bool {
	return atomic.LoadInt32(&f.closeFlag) == 1
}

//do it
func (f *Conn) Do() {
	cb := f.getCallBack()
	if cb != nil && !cb.OnConnect(f) {
		log.Debug().Str("conn", f.id).Msg("connect refused")
		f.Close()
		return
	}

	//spawn two process
	f.asyncDo(f.readLoop, f.wg)
	f.asyncDo(f.writeLoop, f.wg)
}

//wait for both loops to quit
func (f *Conn) Wait() {
	f.wg.Wait()
}

func (f *Conn) GetId() string {
	return f.id
}

func (f *Conn) GetRemoteAddr() string {
	return f.remoteAddr
}

//unix time of last received bytes
func (f *Conn) GetActiveTime() int64 {
	return atomic.LoadInt64(&f.activeTime)
}

//set call back
func (f *Conn) SetCallBack(cb iface.IConnCallBack) {
	f.cbLock.Lock()
	defer f.cbLock.Unlock()
	f.callback = cb
}

//append to outgoing bytes, the write loop flushes them
func (f *Conn) Send(data []byte) {
	if f.IsClosed() || len(data) == 0 {
		return
	}
	f.sendLock.Lock()
	f.sendBuf = append(f.sendBuf, data...)
	pending := len(f.sendBuf)
	f.sendLock.Unlock()

	if f.config.SendBufferLimit > 0 && pending > f.config.SendBufferLimit {
		log.Warn().Err(define.ErrWriteBlocking).Str("conn", f.id).
			Int("pending", pending).Msg("peer is not reading, closing")
		go f.Close()
		return
	}

	select {
	case f.sendChan <- struct{}{}:
	default:
	}
}

//buffered incoming bytes
func (f *Conn) RecvBuffer() []byte {
	f.recvLock.Lock()
	defer f.recvLock.Unlock()
	return f.recvBuf[:len(f.recvBuf):len(f.recvBuf)]
}

//drop n bytes from the front of incoming bytes
func (f *Conn) Consume(n int) {
	f.recvLock.Lock()
	defer f.recvLock.Unlock()
	if n >= len(f.recvBuf) {
		f.recvBuf = f.recvBuf[:0]
		return
	}
	rest := copy(f.recvBuf, f.recvBuf[n:])
	f.recvBuf = f.recvBuf[:rest]
}

///////////////
//private func
///////////////

func (f *Conn) getCallBack() iface.IConnCallBack {
	f.cbLock.RLock()
	defer f.cbLock.RUnlock()
	return f.callback
}

//write loop
func (f *Conn) writeLoop() {
	defer f.Close()

	//loop
	for {
		select {
		case <-f.closeChan:
			return
		case <-f.sendChan:
			f.sendLock.Lock()
			data := f.sendBuf
			f.sendBuf = nil
			f.sendLock.Unlock()
			if len(data) == 0 {
				continue
			}

			if wd, ok := f.conn.(writeDeadliner); ok && f.config.ConnWriteTimeout > 0 {
				wd.SetWriteDeadline(time.Now().Add(f.config.ConnWriteTimeout))
			}
			if _, err := f.conn.Write(data); err != nil {
				if !f.IsClosed() {
					log.Debug().Err(err).Str("conn", f.id).Msg("write failed")
				}
				return
			}
		}
	}
}

//read loop
func (f *Conn) readLoop() {
	defer f.Close()

	size := f.config.ReadBufferSize
	if size <= 0 {
		size = DefaultConfig().ReadBufferSize
	}
	buf := make([]byte, size)

	//loop
	for {
		if f.IsClosed() {
			return
		}
		if rd, ok := f.conn.(readDeadliner); ok && f.config.ConnReadTimeout > 0 {
			rd.SetReadDeadline(time.Now().Add(f.config.ConnReadTimeout))
		}
		n, err := f.conn.Read(buf)
		if n > 0 {
			atomic.StoreInt64(&f.activeTime, time.Now().Unix())
			f.recvLock.Lock()
			f.recvBuf = append(f.recvBuf, buf[:n]...)
			f.recvLock.Unlock()

			//callback
			if cb := f.getCallBack(); cb != nil && !cb.OnMessage(f) {
				return
			}
		}
		if err != nil {
			if err != io.EOF && !f.IsClosed() {
				log.Debug().Err(err).Str("conn", f.id).Msg("read failed")
			}
			return
		}
	}
}

func (f *Conn) asyncDo(fun func(), wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		fun()
		wg.Done()
	}()
}
