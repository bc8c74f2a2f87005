package api

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/andyzhou/hideseek/iface"
	"github.com/gin-gonic/gin"
	"github.com/golang/protobuf/proto"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/types/known/structpb"
)

/*
 * status api face, implement of IServer
 * - read only view of running rooms
 */

//inter macro define
const (
	ContentTypeProtobuf = "application/x-protobuf"
)

//face info
type Server struct {
	address  string
	manager  iface.IManager
	engine   *gin.Engine
	server   *http.Server
	listener net.Listener
}

//construct
func NewServer(address string, manager iface.IManager) *Server {
	//self init
	this := &Server{
		address: address,
		manager: manager,
		engine:  gin.New(),
	}
	this.engine.Use(gin.Recovery())
	this.engine.GET("/api/rooms", this.listRooms)
	this.engine.GET("/api/rooms/:id", this.getRoom)
	this.server = &http.Server{Handler: this.engine}
	return this
}

func (f *Server) Handler() http.Handler {
	return f.engine
}

//listen and spawn serve process
func (f *Server) Start() error {
	listener, err := net.Listen("tcp", f.address)
	if err != nil {
		return err
	}
	f.listener = listener
	log.Info().Str("addr", f.GetAddr()).Msg("status api listening")

	go func() {
		if err := f.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("status api stopped")
		}
	}()
	return nil
}

func (f *Server) Stop() {
	f.server.Close()
}

func (f *Server) GetAddr() string {
	if f.listener == nil {
		return f.address
	}
	return f.listener.Addr().String()
}

//////////////////
//private func
//////////////////

func (f *Server) listRooms(ctx *gin.Context) {
	rooms := f.manager.ListRooms()
	if !wantsProtobuf(ctx) {
		ctx.JSON(http.StatusOK, gin.H{"rooms": rooms})
		return
	}

	list := make([]interface{}, 0, len(rooms))
	for _, info := range rooms {
		list = append(list, roomFields(info))
	}
	msg, err := structpb.NewStruct(map[string]interface{}{"rooms": list})
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "encode-failed"})
		return
	}
	f.writeProtobuf(ctx, msg)
}

func (f *Server) getRoom(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "bad-room-id"})
		return
	}
	room := f.manager.GetRoom(id)
	if room == nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "room-not-found"})
		return
	}
	info := room.GetInfo()
	if !wantsProtobuf(ctx) {
		ctx.JSON(http.StatusOK, info)
		return
	}

	msg, err := structpb.NewStruct(roomFields(info))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "encode-failed"})
		return
	}
	f.writeProtobuf(ctx, msg)
}

func (f *Server) writeProtobuf(ctx *gin.Context, msg *structpb.Struct) {
	data, err := proto.Marshal(msg)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "encode-failed"})
		return
	}
	ctx.Data(http.StatusOK, ContentTypeProtobuf, data)
}

func wantsProtobuf(ctx *gin.Context) bool {
	return strings.Contains(ctx.GetHeader("Accept"), ContentTypeProtobuf)
}

func roomFields(info iface.RoomInfo) map[string]interface{} {
	return map[string]interface{}{
		"id":      info.Id,
		"players": info.Players,
		"state":   info.State,
		"timer":   info.Timer,
		"round":   info.Round,
		"ticks":   info.Ticks,
	}
}
