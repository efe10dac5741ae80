package xdgshell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libwl.dev/xdgshell/geom"
)

func newTestToplevel(t *testing.T) (*XdgToplevel, *fakeSurface, *spySurfaceObserver, *spyToplevelObserver) {
	t.Helper()
	shell, _, _, _ := newTestShell()
	fs := &fakeSurface{}
	surfObs := &spySurfaceObserver{}
	xs, err := newXdgSurface(shell, fakeResource{id: 1}, fakeClient(1), fs, surfObs, shell.log)
	require.NoError(t, err)

	topObs := &spyToplevelObserver{}
	top, err := xs.GetToplevel(fakeResource{id: 2}, topObs)
	require.NoError(t, err)
	return top, fs, surfObs, topObs
}

func TestToplevel_SetTitleOnlyFiresOnChange(t *testing.T) {
	top, _, _, obs := newTestToplevel(t)

	top.SetTitle("Hello")
	top.SetTitle("Hello")
	top.SetTitle("World")

	assert.Equal(t, []string{"Hello", "World"}, obs.titles)
	assert.Equal(t, "World", top.Title())
}

func TestToplevel_SetAppIDOnlyFiresOnChange(t *testing.T) {
	top, _, _, obs := newTestToplevel(t)

	top.SetAppID("org.example.App")
	top.SetAppID("org.example.App")

	assert.Equal(t, []string{"org.example.App"}, obs.appIDs)
}

func TestToplevel_RequestsBeforeConfigureAreRejected(t *testing.T) {
	top, _, _, _ := newTestToplevel(t)

	err := top.Move(nil, 1)
	require.Error(t, err)

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, InterfaceSurface, protoErr.Interface)
	assert.EqualValues(t, ErrorNotConstructed, protoErr.Code)
	assert.Equal(t, uint32(1), protoErr.Object)
}

// TestToplevel_MinMaxClamp is scenario S2: set_min_size(300,200);
// set_max_size(0,0); commit after the initial configure. Effective
// maximum reports (INT32_MAX, INT32_MAX) for the unset dimensions.
func TestToplevel_MinMaxClamp(t *testing.T) {
	top, fs, _, obs := newTestToplevel(t)

	display := &fakeDisplay{}
	top.SendConfigure(display, geom.Pt(800, 600), NewStateSet(StateActivated))
	fs.Commit() // client's first commit, still pre-ack in this test but isConfigured is already true

	require.NoError(t, top.SetMinSize(300, 200))
	// set_max_size(0,0) is a no-op relative to the zero-valued default
	// current.maxSize, so no MaxSizeChanged fires for this commit; the
	// effective (unconstrained) value is still observable via MaxSize.
	require.NoError(t, top.SetMaxSize(0, 0))
	fs.Commit()

	assert.Equal(t, Size{W: 300, H: 200}, top.MinSize())
	assert.Equal(t, Size{W: 1<<31 - 1, H: 1<<31 - 1}, top.MaxSize())
	assert.Equal(t, []Size{{W: 300, H: 200}}, obs.minSizes)
	assert.Empty(t, obs.maxSizes)
}

func TestToplevel_MoveResizeRequireConfigured(t *testing.T) {
	top, fs, _, obs := newTestToplevel(t)
	display := &fakeDisplay{}
	top.SendConfigure(display, geom.Pt(100, 100), NewStateSet())
	fs.Commit()

	require.NoError(t, top.Move(nil, 5))
	require.NoError(t, top.Resize(nil, 6, uint32(EdgeTop)|uint32(EdgeLeft)))

	assert.Equal(t, 1, obs.moves)
	require.Len(t, obs.resizes, 1)
	assert.True(t, obs.resizes[0].Has(EdgeTop))
	assert.True(t, obs.resizes[0].Has(EdgeLeft))
	assert.False(t, obs.resizes[0].Has(EdgeBottom))
}

// TestDecodeResizeEdges_MatchesWireProtocolBitmask pins
// decodeResizeEdges to xdg_toplevel.resize_edge's actual bit values
// (top=1, bottom=2, left=4, right=8), not a rotating top/right/bottom/left
// assignment, using the literal wire integers rather than the Go
// symbolic constants so a swapped bit assignment can't hide here too.
func TestDecodeResizeEdges_MatchesWireProtocolBitmask(t *testing.T) {
	assert.Equal(t, newEdgeSet(EdgeRight), decodeResizeEdges(8))
	assert.Equal(t, newEdgeSet(EdgeLeft), decodeResizeEdges(4))
	assert.Equal(t, newEdgeSet(EdgeBottom), decodeResizeEdges(2))
	assert.Equal(t, newEdgeSet(EdgeTop, EdgeLeft), decodeResizeEdges(5))
}

func TestToplevel_SendConfigureAssignsIncreasingSerials(t *testing.T) {
	top, _, _, obs := newTestToplevel(t)
	display := &fakeDisplay{}

	s1 := top.SendConfigure(display, geom.Pt(100, 100), NewStateSet(StateActivated))
	s2 := top.SendConfigure(display, geom.Pt(200, 100), NewStateSet(StateActivated))

	assert.Less(t, s1, s2)
	require.Len(t, obs.configures, 2)
	assert.Equal(t, s1, obs.configures[0].serial)
	assert.Equal(t, s2, obs.configures[1].serial)
}

func TestPackStates_CollapsesMaximizedHV(t *testing.T) {
	packed := packStates(NewStateSet(StateMaximizedH, StateMaximizedV, StateActivated))
	assert.Equal(t, []State{StateMaximizedH, StateActivated}, packed)
}

func TestPackStates_KeepsSingleAxisMaximizedSeparate(t *testing.T) {
	packed := packStates(NewStateSet(StateMaximizedH))
	assert.Equal(t, []State{StateMaximizedH}, packed)

	packed = packStates(NewStateSet(StateMaximizedV))
	assert.Equal(t, []State{StateMaximizedV}, packed)
}

func TestToplevel_AttachDetach(t *testing.T) {
	top, _, _, _ := newTestToplevel(t)

	top.Attach(AttachmentDecoration, "deco-handle")
	handle, ok := top.Attachment(AttachmentDecoration)
	require.True(t, ok)
	assert.Equal(t, "deco-handle", handle)

	top.Detach(AttachmentDecoration)
	_, ok = top.Attachment(AttachmentDecoration)
	assert.False(t, ok)
}
