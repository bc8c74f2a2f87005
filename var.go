package hideseek

import "github.com/andyzhou/hideseek/game"

/*
 * shared variable or struct
 * most used for callback
 */

//roster changes seen by a client, for side tables keyed by player id
type RosterListener interface {
	OnPlayerAppear(p *game.Player)
	OnPlayerVanish(id uint8)
}

//func based roster listener, nil funcs are skipped
type RosterFuncs struct {
	Appear func(p *game.Player)
	Vanish func(id uint8)
}

func (r RosterFuncs) OnPlayerAppear(p *game.Player) {
	if r.Appear != nil {
		r.Appear(p)
	}
}

func (r RosterFuncs) OnPlayerVanish(id uint8) {
	if r.Vanish != nil {
		r.Vanish(id)
	}
}
