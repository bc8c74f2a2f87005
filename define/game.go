package define

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

//server update rate
const (
	Frequency = 30 //ticks per second
	Tick      = float32(1.0) / Frequency
)

//arena size
var (
	ArenaMin = mgl32.Vec2{-10.0, -10.0}
	ArenaMax = mgl32.Vec2{10.0, 10.0}
)

//player constants
const (
	PlayerRadius        float32 = 0.8
	PlayerSpeed         float32 = 6.0
	PlayerAccelHalflife float32 = 0.25
	SeekerSpeedScale    float32 = 1.15
	BounceScale         float32 = 1.75
)

//round
const (
	RoundTime      float32 = 60.0 //seconds
	MaxPlayers             = 255  //player count is one byte on the wire
	MaxNameLen             = 255
	SpawnSeed      uint64  = 0x15466666
	SpawnInsetLow  float32 = 0.1
	SpawnInsetSpan float32 = 0.8
)

//spotlight defaults
const (
	SpotlightHeight float32 = 5.0
	SpotlightEnergy float32 = 20.0
	SpotlightSpeed  float32 = 1.0 //radians per second
	SpotlightReach  float32 = 1.3
)

var SpotlightCutoff = float32(20.0 * math.Pi / 180.0)
