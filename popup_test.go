package xdgshell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libwl.dev/xdgshell/geom"
)

func newTestPopup(t *testing.T, shell *XdgShell, parent *XdgSurface) (*XdgSurface, *XdgPopup, *spyPopupObserver) {
	t.Helper()
	fs := &fakeSurface{}
	xs, err := shell.GetXdgSurface(fakeResource{id: 20}, fakeClient(1), fs, &spySurfaceObserver{})
	require.NoError(t, err)

	pos := NewPositioner(fakeResource{id: 21})
	require.NoError(t, pos.SetSize(100, 50))
	require.NoError(t, pos.SetAnchorRect(10, 10, 1, 1))
	require.NoError(t, pos.SetAnchor(AnchorTopRight))
	require.NoError(t, pos.SetGravity(AnchorBottomRight))

	popObs := &spyPopupObserver{}
	pop, err := xs.GetPopup(fakeResource{id: 22}, parent, pos, popObs)
	require.NoError(t, err)
	return xs, pop, popObs
}

// TestPopup_ScenarioS3 exercises get_popup end-to-end: popupCreated
// fires, the placement matches the positioner test's derivation, and
// ack_configure(1) resolves the first queued record.
func TestPopup_ScenarioS3(t *testing.T) {
	shell, _, display, _ := newTestShell()
	parentFs := &fakeSurface{}
	parent, err := shell.GetXdgSurface(fakeResource{id: 1}, fakeClient(1), parentFs, &spySurfaceObserver{})
	require.NoError(t, err)
	_, err = parent.GetToplevel(fakeResource{id: 2}, &spyToplevelObserver{})
	require.NoError(t, err)

	xs, pop, popObs := newTestPopup(t, shell, parent)

	rect := pop.PlaceRelativeTo(geom.Rt(0, 0, 800, 600), geom.Rt[int32](0, 0, 4096, 4096))
	assert.Equal(t, geom.Rt(11, 10, 111, 60), rect)

	serial := pop.SendConfigure(display, rect)
	assert.Equal(t, uint32(1), serial)
	require.Len(t, popObs.configures, 1)
	assert.Equal(t, rect, popObs.configures[0].geometry)

	xs.AckConfigure(serial)
}

func TestPopup_GrabAndTopmostFirstDestroy(t *testing.T) {
	shell, _, _, _ := newTestShell()
	parentFs := &fakeSurface{}
	parent, err := shell.GetXdgSurface(fakeResource{id: 1}, fakeClient(1), parentFs, &spySurfaceObserver{})
	require.NoError(t, err)
	_, err = parent.GetToplevel(fakeResource{id: 2}, &spyToplevelObserver{})
	require.NoError(t, err)

	_, popA, _ := newTestPopup(t, shell, parent)
	popA.Grab(nil, 1)

	fsB := &fakeSurface{}
	xsB, err := shell.GetXdgSurface(fakeResource{id: 30}, fakeClient(1), fsB, &spySurfaceObserver{})
	require.NoError(t, err)
	posB := NewPositioner(fakeResource{id: 31})
	require.NoError(t, posB.SetSize(10, 10))
	require.NoError(t, posB.SetAnchorRect(0, 0, 1, 1))
	popB, err := xsB.GetPopup(fakeResource{id: 32}, popA.Surface(), posB, &spyPopupObserver{})
	require.NoError(t, err)
	popB.Grab(nil, 2)

	// popA is no longer topmost: its own grab stack now has popB above
	// it, since popB's root ancestor walk resolves through popA to the
	// same toplevel.
	err = popA.Destroy()
	require.Error(t, err)
	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.EqualValues(t, ErrorNotTheTopmostPopup, protoErr.Code)

	require.NoError(t, popB.Destroy())
	require.NoError(t, popA.Destroy())
}

func TestPopup_DestroyWithoutGrabNeverBlocks(t *testing.T) {
	shell, _, _, _ := newTestShell()
	parentFs := &fakeSurface{}
	parent, err := shell.GetXdgSurface(fakeResource{id: 1}, fakeClient(1), parentFs, &spySurfaceObserver{})
	require.NoError(t, err)
	_, err = parent.GetToplevel(fakeResource{id: 2}, &spyToplevelObserver{})
	require.NoError(t, err)

	_, pop, _ := newTestPopup(t, shell, parent)
	require.NoError(t, pop.Destroy())
}
