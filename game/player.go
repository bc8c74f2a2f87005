package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

//player role, values are wire bytes
type Role uint8

const (
	RoleSeeker Role = 0
	RoleHider  Role = 1
)

func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleHider:
		return true
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RoleSeeker:
		return "seeker"
	case RoleHider:
		return "hider"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

//state of one player in the game
type Player struct {
	//player inputs (sent from client)
	Controls Controls

	//player state (sent from server)
	ID       uint8
	Name     string
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Color    mgl32.Vec3
	Role     Role
	IsReady  bool
	IsCaught bool
}
