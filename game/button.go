package game

import (
	"github.com/rs/zerolog/log"
)

/*
 * player input buttons
 * - downs counts press edges since the last tick consumed them
 * - pressed tracks whether the button is held right now
 */

//button kind
type ButtonKind uint8

const (
	ButtonLeft ButtonKind = iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonJump
	ButtonCount
)

//one control input
type Button struct {
	Downs   uint8 //times pressed since last consumed, saturates at 255
	Pressed bool  //held right now
}

//record press edge
func (b *Button) RecordPress() {
	if b.Downs == 0xff {
		log.Warn().Msg("button downs counter saturated")
	} else {
		b.Downs++
	}
	b.Pressed = true
}

//record release edge
func (b *Button) RecordRelease() {
	b.Pressed = false
}

//merge downs from another source, saturating at 255
func (b *Button) AddDowns(n uint8) {
	d := uint32(b.Downs) + uint32(n)
	if d > 0xff {
		log.Warn().Uint32("downs", d).Msg("got a whole lot of downs")
		d = 0xff
	}
	b.Downs = uint8(d)
}

//player inputs, sent from client
type Controls struct {
	Left, Right, Up, Down, Jump Button
}

//get button by kind, nil for unknown kind
func (c *Controls) Button(kind ButtonKind) *Button {
	switch kind {
	case ButtonLeft:
		return &c.Left
	case ButtonRight:
		return &c.Right
	case ButtonUp:
		return &c.Up
	case ButtonDown:
		return &c.Down
	case ButtonJump:
		return &c.Jump
	}
	return nil
}

//buttons in wire order
func (c *Controls) Buttons() [ButtonCount]*Button {
	return [ButtonCount]*Button{&c.Left, &c.Right, &c.Up, &c.Down, &c.Jump}
}

//zero all downs, held state is kept
func (c *Controls) ResetDowns() {
	for _, b := range c.Buttons() {
		b.Downs = 0
	}
}
