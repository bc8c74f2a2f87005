package game

import (
	"fmt"
	"math"

	"github.com/andyzhou/hideseek/define"
	"github.com/go-gl/mathgl/mgl32"
)

/*
 * per tick state update
 */

//advance the session by elapsed seconds
func (f *Game) Update(elapsed float32) {
	//do relate opt by game state
	switch f.State {
	case SeekerWin, HiderWin:
		return
	case BeforeStart:
		if f.checkReady() {
			f.State = Playing
		}
	case Playing:
	default:
		panic(fmt.Sprintf("game: invalid state %d", uint8(f.State)))
	}

	if f.State == Playing {
		f.Timer -= elapsed
		if f.Timer <= 0 {
			f.State = HiderWin
			return
		}
		if f.CaughtHiderCount >= f.HiderCount {
			f.State = SeekerWin
			return
		}
	}

	players := f.Players()

	//position/velocity update
	for _, p := range players {
		movePlayer(p, elapsed)
	}

	//collision resolution
	f.resolveCollisions(players)

	f.animateSpotlight(elapsed)
}

///////////////
//private func
///////////////

//latch ready on jump, true once two or more players are all ready
func (f *Game) checkReady() bool {
	players := f.Players()
	f.AllIsReady = len(players) >= 2
	for _, p := range players {
		if p.Controls.Jump.Downs > 0 {
			p.IsReady = true
		}
		f.AllIsReady = f.AllIsReady && p.IsReady
	}
	return f.AllIsReady
}

//ease velocity toward the input direction and integrate position
func movePlayer(p *Player, elapsed float32) {
	dir := mgl32.Vec2{}
	if p.Controls.Left.Pressed {
		dir[0] -= 1
	}
	if p.Controls.Right.Pressed {
		dir[0] += 1
	}
	if p.Controls.Down.Pressed {
		dir[1] -= 1
	}
	if p.Controls.Up.Pressed {
		dir[1] += 1
	}

	if dir == (mgl32.Vec2{}) {
		//no inputs: just drift to a stop
		amt := smoothing(elapsed, define.PlayerAccelHalflife*2)
		p.Velocity = p.Velocity.Mul(1 - amt)
	} else {
		dir = dir.Normalize()
		amt := smoothing(elapsed, define.PlayerAccelHalflife)

		//accelerate along velocity (if not fast enough)
		along := p.Velocity.Dot(dir)
		if along < define.PlayerSpeed {
			along = mix(along, define.PlayerSpeed, amt)
		}

		//damp perpendicular velocity
		side := mgl32.Vec2{-dir[1], dir[0]}
		perp := p.Velocity.Dot(side)
		perp = mix(perp, 0, amt)

		p.Velocity = dir.Mul(along).Add(side.Mul(perp))
	}

	scale := float32(1)
	if p.Role == RoleSeeker {
		scale = define.SeekerSpeedScale
	}
	p.Position = p.Position.Add(p.Velocity.Mul(scale * elapsed))

	//downs have been handled
	p.Controls.ResetDowns()
}

//pairwise player collisions, catches, then arena bounds
func (f *Game) resolveCollisions(players []*Player) {
	reach := 2 * define.PlayerRadius
	for i, p1 := range players {
		if p1.IsCaught {
			continue
		}

		//player/player collisions
		for _, p2 := range players[:i] {
			if p2.IsCaught {
				continue
			}
			p12 := p2.Position.Sub(p1.Position)
			len2 := p12.Dot(p12)
			if len2 > reach*reach {
				continue
			}
			//coincident centres have no direction, neither catch nor bounce
			if len2 == 0 {
				continue
			}

			if f.State == Playing && p1.Role != p2.Role {
				if p1.Role == RoleHider {
					f.catch(p1)
					break
				}
				f.catch(p2)
				continue
			}

			//mirror velocity to be in separating direction
			dir := p12.Mul(1 / float32(math.Sqrt(float64(len2))))
			v12 := p2.Velocity.Sub(p1.Velocity)
			delta := dir.Mul(max(0, -define.BounceScale*dir.Dot(v12)))
			p2.Velocity = p2.Velocity.Add(delta.Mul(0.5))
			p1.Velocity = p1.Velocity.Sub(delta.Mul(0.5))
		}
		if p1.IsCaught {
			continue
		}

		//player/arena collisions
		clampToArena(p1)
	}
}

func (f *Game) catch(hider *Player) {
	hider.IsCaught = true
	if f.CaughtHiderCount < f.HiderCount {
		f.CaughtHiderCount++
	}
}

func clampToArena(p *Player) {
	lo := define.ArenaMin.Add(mgl32.Vec2{define.PlayerRadius, define.PlayerRadius})
	hi := define.ArenaMax.Sub(mgl32.Vec2{define.PlayerRadius, define.PlayerRadius})
	for axis := 0; axis < 2; axis++ {
		if p.Position[axis] < lo[axis] {
			p.Position[axis] = lo[axis]
			p.Velocity[axis] = abs(p.Velocity[axis])
		}
		if p.Position[axis] > hi[axis] {
			p.Position[axis] = hi[axis]
			p.Velocity[axis] = -abs(p.Velocity[axis])
		}
	}
}

//exponential smoothing factor for a half life
func smoothing(elapsed, halflife float32) float32 {
	return 1 - float32(math.Pow(0.5, float64(elapsed/halflife)))
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
