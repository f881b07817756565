package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/video-feed/services/player"
)

type recorder struct {
	cmds []Command
}

func (r *recorder) SendCommand(cmd Command) {
	r.cmds = append(r.cmds, cmd)
}

func (r *recorder) ops() []Op {
	var res []Op
	for _, c := range r.cmds {
		res = append(res, c.Op)
	}
	return res
}

func TestElement_ForwardsWrites(t *testing.T) {
	e := NewElement()
	r := &recorder{}
	e.Attach(r)

	e.SetSrc("https://example.com/a.mp4")
	require.NoError(t, e.Play())
	e.SetCurrentTime(42)
	e.SetVolume(0.5)
	e.Pause()

	assert.Equal(t, []Op{OpSrc, OpPlay, OpSeek, OpVolume, OpPause}, r.ops())
	assert.Equal(t, "https://example.com/a.mp4", r.cmds[0].URL)
	assert.Equal(t, 42.0, r.cmds[2].Value)
	assert.True(t, e.Paused())
	assert.Equal(t, 0.5, e.Volume())
}

func TestElement_WritesWhileDetachedUpdateMirror(t *testing.T) {
	e := NewElement()
	e.SetSrc("https://example.com/a.mp4")
	require.NoError(t, e.Play())
	assert.False(t, e.Paused())
	assert.False(t, e.Attached())
}

func TestElement_AttachReplaysState(t *testing.T) {
	e := NewElement()
	e.SetSrc("https://example.com/a.mp4")
	require.NoError(t, e.Play())
	require.NoError(t, e.Apply(Event{Type: EventTimeUpdate, Time: 12}))
	e.SetVolume(0.3)

	r := &recorder{}
	e.Attach(r)
	assert.Equal(t, []Op{OpSrc, OpSeek, OpVolume, OpPlay}, r.ops())
	assert.Equal(t, 12.0, r.cmds[1].Value)
	assert.Equal(t, 0.3, r.cmds[2].Value)
}

func TestElement_AttachWithoutSourceSendsNothing(t *testing.T) {
	e := NewElement()
	r := &recorder{}
	e.Attach(r)
	assert.Empty(t, r.cmds)
}

func TestElement_DetachIgnoresForeignSink(t *testing.T) {
	e := NewElement()
	a, b := &recorder{}, &recorder{}
	e.Attach(a)
	e.Attach(b)
	e.Detach(a)
	assert.True(t, e.Attached())
	e.Detach(b)
	assert.False(t, e.Attached())
}

func TestElement_ApplyNotifiesListeners(t *testing.T) {
	tests := []struct {
		ev     Event
		want   player.Event
		paused bool
	}{
		{Event{Type: EventPlay}, player.EventPlay, false},
		{Event{Type: EventPause}, player.EventPause, true},
		{Event{Type: EventPlayRejected}, player.EventPause, true},
		{Event{Type: EventEnded}, player.EventEnded, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.ev.Type), func(t *testing.T) {
			e := NewElement()
			require.NoError(t, e.Play())
			fired := 0
			e.On(tt.want, func() { fired++ })
			require.NoError(t, e.Apply(tt.ev))
			assert.Equal(t, 1, fired)
			assert.Equal(t, tt.paused, e.Paused())
		})
	}
}

func TestElement_ApplyMirrorsValues(t *testing.T) {
	e := NewElement()
	volumeChanges := 0
	e.On(player.EventVolumeChange, func() { volumeChanges++ })
	require.NoError(t, e.Apply(Event{Type: EventLoadedMetadata, Duration: 90}))
	require.NoError(t, e.Apply(Event{Type: EventTimeUpdate, Time: 30}))
	require.NoError(t, e.Apply(Event{Type: EventVolumeChange, Volume: 0.25}))
	assert.Equal(t, 90.0, e.Duration())
	assert.Equal(t, 30.0, e.CurrentTime())
	assert.Equal(t, 0.25, e.Volume())
	assert.Equal(t, 1, volumeChanges)

	require.NoError(t, e.Apply(Event{Type: EventEnded}))
	assert.Equal(t, 90.0, e.CurrentTime())
}

func TestElement_ApplyUnknownEvent(t *testing.T) {
	e := NewElement()
	assert.Error(t, e.Apply(Event{Type: "bogus"}))
}

func TestCapability_Lifecycle(t *testing.T) {
	e := NewElement()
	pip := e.PictureInPicture()
	assert.ErrorIs(t, pip.Request(), ErrUnsupported)

	require.NoError(t, e.Apply(Event{Type: EventCapabilities, PictureInPicture: true, Fullscreen: true}))
	assert.ErrorIs(t, pip.Request(), ErrDetached)

	r := &recorder{}
	e.Attach(r)
	require.NoError(t, pip.Request())
	require.NoError(t, e.Fullscreen().Exit())
	assert.Equal(t, []Command{
		{Op: OpPictureInPicture, On: true},
		{Op: OpFullscreen, On: false},
	}, r.cmds)
	assert.False(t, pip.Active(), "active only changes on browser notification")
}

func TestCapability_ChangeNotifications(t *testing.T) {
	e := NewElement()
	fs := e.Fullscreen()
	changes := 0
	fs.OnChange(func() { changes++ })

	require.NoError(t, e.Apply(Event{Type: EventFullscreenChange, Active: true}))
	require.NoError(t, e.Apply(Event{Type: EventFullscreenChange, Active: true}))
	assert.True(t, fs.Active())
	assert.Equal(t, 1, changes)

	r := &recorder{}
	e.Attach(r)
	e.Detach(r)
	assert.False(t, fs.Active())
	assert.Equal(t, 2, changes)
}

func TestElement_PictureInPictureEvents(t *testing.T) {
	e := NewElement()
	entered := 0
	e.On(player.EventEnterPictureInPicture, func() { entered++ })
	require.NoError(t, e.Apply(Event{Type: EventEnterPictureInPicture}))
	assert.Equal(t, 1, entered)
	assert.True(t, e.PictureInPicture().Active())
	require.NoError(t, e.Apply(Event{Type: EventLeavePictureInPicture}))
	assert.False(t, e.PictureInPicture().Active())
}
