package network

import "time"

//config info
type Config struct {
	ReadBufferSize   int           // bytes per read call
	SendBufferLimit  int           // pending outgoing bytes before the conn is dropped
	ConnReadTimeout  time.Duration // read timeout, 0 means none
	ConnWriteTimeout time.Duration // write timeout, 0 means none
}

//default config
func DefaultConfig() Config {
	return Config{
		ReadBufferSize:   4096,
		SendBufferLimit:  4 * 1024 * 1024,
		ConnReadTimeout:  time.Minute,
		ConnWriteTimeout: time.Second * 5,
	}
}
