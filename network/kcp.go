package network

import (
	"crypto/sha1"
	"sync"

	"github.com/andyzhou/hideseek/iface"
	"github.com/rs/zerolog/log"
	"github.com/xtaci/kcp-go"
	"golang.org/x/crypto/pbkdf2"
)

/*
 * kcp server face, implement of IServer
 */

//inter macro define
const (
	KcpDataShards   = 10
	KcpParityShards = 3
)

//face info
type KcpServer struct {
	address  string //like ':10086'
	password string
	salt     string
	cb       iface.IConnCallBack
	config   Config
	listener *kcp.Listener
	wg       sync.WaitGroup
}

//construct
func NewKcpServer(
	address,
	password,
	salt string,
	cb iface.IConnCallBack,
	config Config,
) *KcpServer {
	//self init
	this := &KcpServer{
		address:  address,
		password: password,
		salt:     salt,
		cb:       cb,
		config:   config,
	}
	return this
}

//listen and spawn accept process
func (f *KcpServer) Start() error {
	block, err := NewBlockCrypt(f.password, f.salt)
	if err != nil {
		return err
	}

	//init kcp listener
	f.listener, err = kcp.ListenWithOptions(f.address, block, KcpDataShards, KcpParityShards)
	if err != nil {
		return err
	}
	log.Info().Str("addr", f.GetAddr()).Msg("kcp server listening")

	//spawn main process
	f.wg.Add(1)
	go f.runMainProcess()
	return nil
}

//stop
func (f *KcpServer) Stop() {
	if f.listener == nil {
		return
	}
	f.listener.Close()
	f.wg.Wait()
}

//bound address, valid after start
func (f *KcpServer) GetAddr() string {
	if f.listener == nil {
		return f.address
	}
	return f.listener.Addr().String()
}

//AES block crypt keyed by pbkdf2 of password and salt
func NewBlockCrypt(password, salt string) (kcp.BlockCrypt, error) {
	key := pbkdf2.Key([]byte(password), []byte(salt), 1024, 32, sha1.New)
	return kcp.NewAESBlockCrypt(key)
}

//tune session for small frequent frames
func SetUdpMode(session *kcp.UDPSession) bool {
	if session == nil {
		return false
	}
	session.SetNoDelay(1, 10, 2, 1)
	session.SetStreamMode(true)
	session.SetWindowSize(4096, 4096)
	session.SetReadBuffer(4 * 1024 * 1024)
	session.SetWriteBuffer(4 * 1024 * 1024)
	session.SetACKNoDelay(true)
	return true
}

//////////////////
//private func
//////////////////

//run main process
func (f *KcpServer) runMainProcess() {
	defer f.wg.Done()

	//loop
	for {
		//accept new connect
		sess, err := f.listener.AcceptKCP()
		if err != nil {
			log.Debug().Err(err).Msg("kcp accept stopped")
			return
		}

		//set udp mode
		SetUdpMode(sess)

		//new udp connect
		conn := NewConn(sess, sess.RemoteAddr().String(), f.cb, f.config)
		log.Debug().Str("conn", conn.GetId()).Str("remote", conn.GetRemoteAddr()).Msg("kcp accepted")
		conn.Do()
	}
}
