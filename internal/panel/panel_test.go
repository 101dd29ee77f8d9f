package panel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	visible bool

	visibleErr  error
	positionErr error
	showErr     error
	hideErr     error
	emitErr     error

	positions [][2]int
	events    []string
	shows     int
	hides     int
}

func (w *fakeWindow) IsVisible() (bool, error) {
	if w.visibleErr != nil {
		return false, w.visibleErr
	}
	return w.visible, nil
}

func (w *fakeWindow) SetPosition(x, y int) error {
	if w.positionErr != nil {
		return w.positionErr
	}
	w.positions = append(w.positions, [2]int{x, y})
	return nil
}

func (w *fakeWindow) Show() error {
	if w.showErr != nil {
		return w.showErr
	}
	w.shows++
	w.visible = true
	return nil
}

func (w *fakeWindow) Hide() error {
	if w.hideErr != nil {
		return w.hideErr
	}
	w.hides++
	w.visible = false
	return nil
}

func (w *fakeWindow) Emit(event string) error {
	w.events = append(w.events, event)
	return w.emitErr
}

type fakeHost struct {
	label     string
	win       *fakeWindow
	screens   []Screen
	screenErr error
	lookupErr error
}

func (h *fakeHost) Window(label string) (Window, error) {
	if h.lookupErr != nil {
		return nil, h.lookupErr
	}
	if label != h.label || h.win == nil {
		return nil, ErrNotFound
	}
	return h.win, nil
}

func (h *fakeHost) Screens() ([]Screen, error) {
	return h.screens, h.screenErr
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		label:   "panel-window",
		win:     &fakeWindow{},
		screens: []Screen{{Width: 1512, Height: 982, IsPrimary: true}},
	}
}

func defaultAnchor() Anchor {
	return Anchor{RightMargin: DefaultRightMargin, TopOffset: DefaultTopOffset}
}

func TestToggle_ShowFromHidden(t *testing.T) {
	host := newFakeHost()
	tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

	require.NoError(t, tg.Toggle())

	assert.True(t, host.win.visible)
	assert.Equal(t, [][2]int{{1512 - 340, 30}}, host.win.positions)
	assert.Equal(t, []string{EventShown}, host.win.events)
}

func TestToggle_IsItsOwnInverse(t *testing.T) {
	host := newFakeHost()
	tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

	require.NoError(t, tg.Toggle())
	assert.True(t, host.win.visible)

	require.NoError(t, tg.Toggle())
	assert.False(t, host.win.visible)
	assert.Equal(t, 1, host.win.shows)
	assert.Equal(t, 1, host.win.hides)

	// 隐藏时不发送事件
	assert.Equal(t, []string{EventShown}, host.win.events)
}

func TestToggle_PanelNotFound(t *testing.T) {
	host := newFakeHost()
	tg := NewToggler(host, "missing", defaultAnchor(), nil)

	err := tg.Toggle()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, host.win.shows)
}

func TestToggle_LookupFailureIsHostError(t *testing.T) {
	host := newFakeHost()
	host.lookupErr = errors.New("registry unavailable")
	tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

	err := tg.Toggle()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHost)
	assert.Contains(t, err.Error(), "registry unavailable")
}

func TestToggle_VisibilityErrorNoTransition(t *testing.T) {
	host := newFakeHost()
	host.win.visibleErr = errors.New("boom")
	tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

	err := tg.Toggle()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHost)
	assert.Equal(t, 0, host.win.shows)
	assert.Equal(t, 0, host.win.hides)
	assert.Empty(t, host.win.positions)
}

func TestToggle_PositioningIsBestEffort(t *testing.T) {
	t.Run("screen lookup fails", func(t *testing.T) {
		host := newFakeHost()
		host.screenErr = errors.New("no monitor")
		tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

		require.NoError(t, tg.Toggle())
		assert.True(t, host.win.visible)
		assert.Empty(t, host.win.positions)
	})

	t.Run("no screens", func(t *testing.T) {
		host := newFakeHost()
		host.screens = nil
		tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

		require.NoError(t, tg.Toggle())
		assert.True(t, host.win.visible)
	})

	t.Run("set position fails", func(t *testing.T) {
		host := newFakeHost()
		host.win.positionErr = errors.New("denied")
		tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

		require.NoError(t, tg.Toggle())
		assert.True(t, host.win.visible)
		assert.Equal(t, []string{EventShown}, host.win.events)
	})
}

func TestToggle_ShowAndHideErrors(t *testing.T) {
	host := newFakeHost()
	host.win.showErr = errors.New("cannot show")
	tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

	err := tg.Toggle()
	assert.ErrorIs(t, err, ErrHost)
	assert.Empty(t, host.win.events)

	host = newFakeHost()
	host.win.visible = true
	host.win.hideErr = errors.New("cannot hide")
	tg = NewToggler(host, "panel-window", defaultAnchor(), nil)

	err = tg.Toggle()
	assert.ErrorIs(t, err, ErrHost)
	assert.True(t, host.win.visible)
}

func TestToggle_EmitFailureIgnored(t *testing.T) {
	host := newFakeHost()
	host.win.emitErr = errors.New("no listeners")
	tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

	require.NoError(t, tg.Toggle())
	assert.True(t, host.win.visible)
}

func TestSetAnchor(t *testing.T) {
	host := newFakeHost()
	tg := NewToggler(host, "panel-window", defaultAnchor(), nil)

	tg.SetAnchor(Anchor{RightMargin: 400, TopOffset: 40})
	assert.Equal(t, Anchor{RightMargin: 400, TopOffset: 40}, tg.Anchor())

	require.NoError(t, tg.Toggle())
	assert.Equal(t, [][2]int{{1112, 40}}, host.win.positions)
}

func TestAnchorPosition_ClampsToZero(t *testing.T) {
	x, y := defaultAnchor().Position(Screen{Width: 200})
	assert.Equal(t, 0, x)
	assert.Equal(t, DefaultTopOffset, y)
}

func TestPickScreen(t *testing.T) {
	_, ok := pickScreen(nil)
	assert.False(t, ok)

	s, ok := pickScreen([]Screen{{Width: 1}, {Width: 2, IsCurrent: true}, {Width: 3, IsPrimary: true}})
	require.True(t, ok)
	assert.Equal(t, 3, s.Width)

	s, ok = pickScreen([]Screen{{Width: 1}, {Width: 2, IsCurrent: true}})
	require.True(t, ok)
	assert.Equal(t, 2, s.Width)

	s, ok = pickScreen([]Screen{{Width: 1}, {Width: 2}})
	require.True(t, ok)
	assert.Equal(t, 1, s.Width)
}

func TestWailsHost_NotAttached(t *testing.T) {
	h := NewWailsHost("panel-window")

	_, err := h.Window("panel-window")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.Screens()
	assert.Error(t, err)

	tg := NewToggler(h, "panel-window", defaultAnchor(), nil)
	assert.ErrorIs(t, tg.Toggle(), ErrNotFound)
}
