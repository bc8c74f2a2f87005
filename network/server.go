package network

import (
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/andyzhou/hideseek/iface"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

/*
 * websocket server face, implement of IServer
 * - browser transport, binary messages carry the same byte stream
 */

//inter macro define
const (
	WsPath      = "/ws"
	WsReadLimit = 1 << 20
)

//face info
type WsServer struct {
	address  string
	cb       iface.IConnCallBack
	config   Config
	upgrader websocket.Upgrader
	listener net.Listener
	server   *http.Server
}

//construct
func NewWsServer(
	address string,
	cb iface.IConnCallBack,
	config Config,
) *WsServer {
	//self init
	this := &WsServer{
		address: address,
		cb:      cb,
		config:  config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc(WsPath, this.handle)
	this.server = &http.Server{Handler: mux}
	return this
}

//listen and spawn serve process
func (f *WsServer) Start() error {
	listener, err := net.Listen("tcp", f.address)
	if err != nil {
		return err
	}
	f.listener = listener
	log.Info().Str("addr", f.GetAddr()).Msg("websocket server listening")

	go func() {
		if err := f.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("websocket server stopped")
		}
	}()
	return nil
}

//stop
func (f *WsServer) Stop() {
	f.server.Close()
}

func (f *WsServer) GetAddr() string {
	if f.listener == nil {
		return f.address
	}
	return f.listener.Addr().String()
}

//////////////////
//private func
//////////////////

//upgrade and hand the stream to a conn
func (f *WsServer) handle(w http.ResponseWriter, r *http.Request) {
	ws, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	ws.SetReadLimit(WsReadLimit)

	conn := NewConn(NewWsStream(ws), r.RemoteAddr, f.cb, f.config)
	log.Debug().Str("conn", conn.GetId()).Str("remote", conn.GetRemoteAddr()).Msg("websocket accepted")
	conn.Do()
}

//byte stream view of a websocket
type WsStream struct {
	ws     *websocket.Conn
	reader io.Reader
}

func NewWsStream(ws *websocket.Conn) *WsStream {
	return &WsStream{ws: ws}
}

//read across binary message boundaries, text messages are skipped
func (f *WsStream) Read(p []byte) (int, error) {
	for {
		if f.reader == nil {
			kind, r, err := f.ws.NextReader()
			if err != nil {
				return 0, err
			}
			if kind != websocket.BinaryMessage {
				continue
			}
			f.reader = r
		}
		n, err := f.reader.Read(p)
		if err == io.EOF {
			f.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

//one binary message per write
func (f *WsStream) Write(p []byte) (int, error) {
	if err := f.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (f *WsStream) Close() error {
	f.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return f.ws.Close()
}

func (f *WsStream) SetReadDeadline(t time.Time) error {
	return f.ws.SetReadDeadline(t)
}

func (f *WsStream) SetWriteDeadline(t time.Time) error {
	return f.ws.SetWriteDeadline(t)
}
