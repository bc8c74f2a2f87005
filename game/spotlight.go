package game

import (
	"math"

	"github.com/andyzhou/hideseek/define"
	"github.com/go-gl/mathgl/mgl32"
)

//server owned light, swept around the arena
type Spotlight struct {
	Pos    mgl32.Vec3
	Dir    mgl32.Vec3
	Energy mgl32.Vec3
	Cutoff float32 //cone half angle, radians
}

func newSpotlight() Spotlight {
	return Spotlight{
		Pos:    mgl32.Vec3{0, 0, define.SpotlightHeight},
		Energy: mgl32.Vec3{define.SpotlightEnergy, define.SpotlightEnergy, define.SpotlightEnergy},
		Cutoff: define.SpotlightCutoff,
	}
}

//advance the sweep angle and point back toward the center
func (f *Game) animateSpotlight(elapsed float32) {
	f.angle += f.speed * elapsed
	s, c := math.Sincos(float64(f.angle))
	reach := float64(define.SpotlightReach)
	f.Spotlight.Dir = mgl32.Vec3{
		float32(reach * c),
		float32(reach * s),
		-1,
	}.Normalize()
}
