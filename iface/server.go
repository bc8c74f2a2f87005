package iface

/*
 * interface of server
 */

type IServer interface {
	Stop()
	Start() error
	GetAddr() string
}
