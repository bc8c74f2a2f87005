package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/andyzhou/hideseek/define"
	"github.com/go-gl/mathgl/mgl32"
)

/*
 * game session, separate from any transport
 * - owns every player, spawn and remove only
 * - one goroutine owns a session, nothing here locks
 */

//round state, values are wire bytes
type GameState uint8

const (
	BeforeStart GameState = 0
	Playing     GameState = 1
	SeekerWin   GameState = 2
	HiderWin    GameState = 3
)

func (s GameState) Valid() bool {
	switch s {
	case BeforeStart, Playing, SeekerWin, HiderWin:
		return true
	}
	return false
}

//round over, never left once entered
func (s GameState) IsOver() bool {
	switch s {
	case SeekerWin, HiderWin:
		return true
	case BeforeStart, Playing:
		return false
	}
	panic(fmt.Sprintf("game: invalid state %d", uint8(s)))
}

func (s GameState) String() string {
	switch s {
	case BeforeStart:
		return "before_start"
	case Playing:
		return "playing"
	case SeekerWin:
		return "seeker_win"
	case HiderWin:
		return "hider_win"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

//face info
type Game struct {
	//slots in spawn order, removed players leave a nil hole
	slots []*Player
	holes int

	rng              *rand.Rand //used for spawning players only
	nextPlayerNumber uint32     //used for naming players
	currentPlayerID  uint8

	State            GameState
	Timer            float32
	AllIsReady       bool
	HiderCount       int
	CaughtHiderCount int

	Spotlight Spotlight
	angle     float32
	speed     float32
}

//construct
func NewGame(seed uint64, roundTime float32) *Game {
	//self init
	this := &Game{
		slots:            make([]*Player, 0),
		rng:              rand.New(rand.NewPCG(seed, seed)),
		nextPlayerNumber: 1,
		State:            BeforeStart,
		Timer:            roundTime,
		Spotlight:        newSpotlight(),
		speed:            define.SpotlightSpeed,
	}
	return this
}

//add player at the end of the session order
func (f *Game) SpawnPlayer() (*Player, error) {
	if f.PlayerCount() >= define.MaxPlayers {
		return nil, define.ErrSessionFull
	}
	id, ok := f.nextFreeID()
	if !ok {
		return nil, define.ErrSessionFull
	}

	p := &Player{
		ID: id,
	}

	//random point in the middle area of the arena
	p.Position = mgl32.Vec2{
		mix(define.ArenaMin[0], define.ArenaMax[0], define.SpawnInsetLow+define.SpawnInsetSpan*f.rng.Float32()),
		mix(define.ArenaMin[1], define.ArenaMax[1], define.SpawnInsetLow+define.SpawnInsetSpan*f.rng.Float32()),
	}

	//random non-black color
	for {
		p.Color = mgl32.Vec3{f.rng.Float32(), f.rng.Float32(), f.rng.Float32()}
		if p.Color != (mgl32.Vec3{}) {
			break
		}
	}
	p.Color = p.Color.Normalize()

	p.Name = fmt.Sprintf("Player %d", f.nextPlayerNumber)
	f.nextPlayerNumber++

	f.slots = append(f.slots, p)

	count := f.PlayerCount()
	if count == 1 {
		p.Role = RoleSeeker
	} else {
		p.Role = RoleHider
	}
	f.HiderCount = max(0, count-1)
	return p, nil
}

//remove player from game
//removing a player that is not in the session is a programming error
func (f *Game) RemovePlayer(p *Player) {
	for i, v := range f.slots {
		if v != nil && v == p {
			f.slots[i] = nil
			f.holes++
			f.recount()
			f.compact()
			return
		}
	}
	panic(fmt.Sprintf("game: remove of player %p not in session", p))
}

//players in session order
func (f *Game) Players() []*Player {
	result := make([]*Player, 0, len(f.slots)-f.holes)
	for _, v := range f.slots {
		if v != nil {
			result = append(result, v)
		}
	}
	return result
}

//get player by stable id
func (f *Game) PlayerByID(id uint8) *Player {
	for _, v := range f.slots {
		if v != nil && v.ID == id {
			return v
		}
	}
	return nil
}

func (f *Game) PlayerCount() int {
	return len(f.slots) - f.holes
}

//drop every player and take a decoded list as-is
func (f *Game) ReplacePlayers(players []*Player) {
	f.slots = make([]*Player, 0, len(players))
	f.holes = 0
	f.slots = append(f.slots, players...)
}

///////////////
//private func
///////////////

//next id not held by a present player
func (f *Game) nextFreeID() (uint8, bool) {
	id := f.currentPlayerID
	for i := 0; i < 256; i++ {
		if f.PlayerByID(id) == nil {
			f.currentPlayerID = id + 1
			return id, true
		}
		id++
	}
	return 0, false
}

//keep hider counters consistent after a removal
//spawn still uses count-1, so after the seeker left a later spawn
//undercounts hiders by one; without a seeker only the timer ends the round
func (f *Game) recount() {
	hiders, caught := 0, 0
	for _, v := range f.slots {
		if v == nil || v.Role != RoleHider {
			continue
		}
		hiders++
		if v.IsCaught {
			caught++
		}
	}
	f.HiderCount = hiders
	f.CaughtHiderCount = caught
}

//squeeze holes once they dominate, player pointers stay valid
func (f *Game) compact() {
	if f.holes*2 < len(f.slots) {
		return
	}
	f.slots = f.Players()
	f.holes = 0
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}
