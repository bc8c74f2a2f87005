package protocol

import (
	"testing"

	"github.com/andyzhou/hideseek/define"
	"github.com/andyzhou/hideseek/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlsFrameLayout(t *testing.T) {
	c := game.Controls{
		Left:  game.Button{Downs: 3, Pressed: true},
		Right: game.Button{Downs: 0, Pressed: false},
		Up:    game.Button{Downs: 0x7f, Pressed: false},
		Down:  game.Button{Downs: 1, Pressed: true},
		Jump:  game.Button{Downs: 0, Pressed: true},
	}
	data := EncodeControls(&c)
	assert.Equal(t, []byte{1, 5, 0, 0, 0x83, 0x00, 0x7f, 0x81, 0x80}, data)
}

func TestControlsRoundTrip(t *testing.T) {
	for downs := 0; downs <= 0x7f; downs += 7 {
		for _, pressed := range []bool{false, true} {
			var src game.Controls
			for i, b := range src.Buttons() {
				b.Downs = uint8((downs + i) & 0x7f)
				b.Pressed = pressed != (i%2 == 0)
			}

			wire := NewBuffer()
			SendControls(wire, &src)
			in := NewBuffer()
			wire.FlushTo(in)

			var dst game.Controls
			ok, err := RecvControls(in, &dst)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, src, dst)
			assert.Empty(t, in.RecvBuffer())
		}
	}
}

func TestControlsDecodeMergesDowns(t *testing.T) {
	src := game.Controls{Jump: game.Button{Downs: 100, Pressed: false}}
	in := NewBuffer()
	in.Feed(EncodeControls(&src))
	in.Feed(EncodeControls(&src))
	in.Feed(EncodeControls(&src))

	dst := game.Controls{Jump: game.Button{Downs: 10, Pressed: true}}
	frames := 0
	for {
		ok, err := RecvControls(in, &dst)
		require.NoError(t, err)
		if !ok {
			break
		}
		frames++
	}
	assert.Equal(t, 3, frames)
	assert.Equal(t, uint8(255), dst.Jump.Downs, "saturating add")
	assert.False(t, dst.Jump.Pressed, "pressed is overwritten")
}

func TestControlsSendTruncatesRawDowns(t *testing.T) {
	src := game.Controls{Left: game.Button{Downs: 200, Pressed: true}}
	data := EncodeControls(&src)
	assert.Equal(t, uint8(0x80|(200&0x7f)), data[HeadLen])

	in := NewBuffer()
	in.Feed(data)
	var dst game.Controls
	ok, err := RecvControls(in, &dst)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint8(200&0x7f), dst.Left.Downs)
}

func TestControlsPartialFrameIsNoMessage(t *testing.T) {
	src := game.Controls{Up: game.Button{Downs: 2, Pressed: true}}
	data := EncodeControls(&src)

	for n := 0; n < len(data); n++ {
		in := NewBuffer()
		in.Feed(data[:n])
		var dst game.Controls
		ok, err := RecvControls(in, &dst)
		require.NoError(t, err)
		assert.False(t, ok, "n=%d", n)
		assert.Equal(t, data[:n], in.RecvBuffer(), "buffer left unmodified")
		assert.Equal(t, game.Controls{}, dst)
	}
}

func TestControlsWrongSizeIsFramingError(t *testing.T) {
	for _, size := range []byte{0, 4, 6, 0xff} {
		in := NewBuffer()
		in.Feed([]byte{KindControls, size, 0, 0})
		var dst game.Controls
		ok, err := RecvControls(in, &dst)
		assert.False(t, ok)
		assert.ErrorIs(t, err, define.ErrControlsSize, "size=%d", size)
	}

	//length bytes beyond the low one count too
	in := NewBuffer()
	in.Feed([]byte{KindControls, 5, 0, 1, 0, 0, 0, 0, 0})
	_, err := RecvControls(in, &game.Controls{})
	assert.ErrorIs(t, err, define.ErrControlsSize)
}

func TestControlsIgnoresOtherKinds(t *testing.T) {
	in := NewBuffer()
	in.Feed([]byte{KindState, 5, 0, 0, 1, 2, 3, 4, 5})
	ok, err := RecvControls(in, &game.Controls{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, in.RecvBuffer(), 9)
}

func TestPackButton(t *testing.T) {
	assert.Equal(t, uint8(0x00), PackButton(game.Button{}))
	assert.Equal(t, uint8(0xff), PackButton(game.Button{Downs: 0x7f, Pressed: true}))
	assert.Equal(t, uint8(0x00), PackButton(game.Button{Downs: 0x80}))

	downs, pressed := UnpackButton(0x85)
	assert.Equal(t, uint8(5), downs)
	assert.True(t, pressed)
}
