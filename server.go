package hideseek

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/andyzhou/hideseek/api"
	"github.com/andyzhou/hideseek/conf"
	"github.com/andyzhou/hideseek/iface"
	"github.com/andyzhou/hideseek/network"
	"github.com/andyzhou/hideseek/room"
	"github.com/rs/zerolog/log"
)

/*
 * server api face
 * - kcp transport, optional websocket transport and status api
 */

//face info
type Server struct {
	conf      conf.ServerConf
	manager   *room.Manager
	router    *network.Router
	servers   []iface.IServer //started in order, stopped in reverse
	closeChan chan bool
	closeOnce sync.Once
}

//construct, step-1
func NewServer(cfg conf.ServerConf, gl iface.IGameListener) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	//self init
	this := &Server{
		conf:      cfg,
		closeChan: make(chan bool),
	}

	//inter init
	this.interInit(gl)
	return this, nil
}

///////////////
//service api
///////////////

//start listeners, step-2
func (f *Server) Start() error {
	for i, s := range f.servers {
		if err := s.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				f.servers[j].Stop()
			}
			return err
		}
	}
	return nil
}

//start and block until a signal or stop, step-3
func (f *Server) Run() error {
	if err := f.Start(); err != nil {
		return err
	}
	f.signalCatch()
	<-f.closeChan
	f.shutdown()
	return nil
}

//stop
func (f *Server) Stop() {
	f.closeOnce.Do(func() {
		close(f.closeChan)
	})
}

func (f *Server) GetManager() iface.IManager {
	return f.manager
}

//kcp listen address
func (f *Server) GetAddr() string {
	return f.servers[0].GetAddr()
}

//close listeners and rooms
func (f *Server) shutdown() {
	for i := len(f.servers) - 1; i >= 0; i-- {
		f.servers[i].Stop()
	}
	f.manager.Close()
	log.Info().Msg("server stopped")
}

///////////////
//private func
///////////////

//signal catch
func (f *Server) signalCatch() {
	//init signal
	sig := make(chan os.Signal, 1)
	signal.Notify(
		sig,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)

	//watch signal
	go func() {
		defer signal.Stop(sig)
		select {
		case s := <-sig:
			log.Info().Str("signal", s.String()).Msg("got signal")
			f.Stop()
		case <-f.closeChan:
		}
	}()
}

//inter init
func (f *Server) interInit(gl iface.IGameListener) {
	netConf := network.DefaultConfig()

	f.manager = room.NewManager(f.conf.Room, gl)
	f.router = network.NewRouter(f.manager)

	//kcp server first, GetAddr reads it
	f.servers = append(f.servers, network.NewKcpServer(
		f.conf.Addr(),
		f.conf.Password,
		f.conf.Salt,
		f.router,
		netConf,
	))
	if f.conf.WsAddr != "" {
		f.servers = append(f.servers, network.NewWsServer(f.conf.WsAddr, f.router, netConf))
	}
	if f.conf.StatusAddr != "" {
		f.servers = append(f.servers, api.NewServer(f.conf.StatusAddr, f.manager))
	}
}
