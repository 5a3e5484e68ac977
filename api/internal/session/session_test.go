package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"truthguard-bot/api/internal/session"
	"truthguard-bot/api/internal/view"
)

func vm(score float64) view.ResultViewModel {
	return view.ResultViewModel{Bucket: view.BucketFor(score), Score: score}
}

func TestLifecycleToResult(t *testing.T) {
	tr := session.NewTracker()
	require.Equal(t, session.Idle, tr.State())

	s, err := tr.Begin(session.ModalityText)
	require.NoError(t, err)
	require.Equal(t, session.Loading, tr.State())
	require.False(t, s.StartedAt.IsZero())

	require.True(t, tr.Resolve(s.ID, vm(92)))
	require.Equal(t, session.Result, tr.State())
	require.Equal(t, view.BucketHigh, tr.Active().Result.Bucket)
}

func TestLifecycleToError(t *testing.T) {
	tr := session.NewTracker()
	s, _ := tr.Begin(session.ModalityImage)

	cause := errors.New("connection refused")
	require.True(t, tr.Fail(s.ID, "service unreachable", cause))
	require.Equal(t, session.Error, tr.State())
	require.Equal(t, "service unreachable", tr.Active().ErrMessage)
	require.Equal(t, cause, tr.Active().Cause())

	// error is cleared only by a new submission
	s2, err := tr.Begin(session.ModalityImage)
	require.NoError(t, err)
	require.Equal(t, session.Loading, tr.State())
	require.NotEqual(t, s.ID, s2.ID)
}

func TestSameModalityBlockedWhileLoading(t *testing.T) {
	tr := session.NewTracker()
	_, err := tr.Begin(session.ModalityText)
	require.NoError(t, err)

	_, err = tr.Begin(session.ModalityText)
	require.ErrorIs(t, err, session.ErrBusy)
}

func TestTerminalSessionsTransitionOnce(t *testing.T) {
	tr := session.NewTracker()
	s, _ := tr.Begin(session.ModalityText)
	require.True(t, tr.Resolve(s.ID, vm(70)))

	// second terminal transition for the same session is refused
	require.False(t, tr.Resolve(s.ID, vm(10)))
	require.False(t, tr.Fail(s.ID, "late failure", nil))
	require.Equal(t, view.BucketMedium, tr.Active().Result.Bucket)
}

// Two rapid submissions: the first call's late response must be discarded by
// the session-ID guard; final state reflects only the second request.
func TestStaleResponseDiscarded(t *testing.T) {
	tr := session.NewTracker()

	s1, err := tr.Begin(session.ModalityText)
	require.NoError(t, err)

	// user switches to the image tab and submits before s1 resolves
	s2, err := tr.Begin(session.ModalityImage)
	require.NoError(t, err)

	// s2's response arrives first
	require.True(t, tr.Resolve(s2.ID, vm(92)))

	// s1's response arrives late and is discarded
	require.False(t, tr.Resolve(s1.ID, vm(10)))
	require.False(t, tr.Fail(s1.ID, "late error", nil))

	require.Equal(t, session.Result, tr.State())
	require.Equal(t, 92.0, tr.Active().Result.Score)
}

// Each modality keeps its own last terminal session; switching does not wipe
// the other tab's result.
func TestLastSessionPerModality(t *testing.T) {
	tr := session.NewTracker()

	s1, _ := tr.Begin(session.ModalityText)
	require.True(t, tr.Resolve(s1.ID, vm(92)))

	s2, _ := tr.Begin(session.ModalityImage)
	require.True(t, tr.Resolve(s2.ID, vm(30)))

	textLast := tr.Last(session.ModalityText)
	require.NotNil(t, textLast)
	require.Equal(t, 92.0, textLast.Result.Score)

	imageLast := tr.Last(session.ModalityImage)
	require.NotNil(t, imageLast)
	require.Equal(t, 30.0, imageLast.Result.Score)
}

func TestSupersededSessionNotRememberedAsLast(t *testing.T) {
	tr := session.NewTracker()

	s1, _ := tr.Begin(session.ModalityText)
	s2, _ := tr.Begin(session.ModalityImage) // supersedes pending s1

	require.True(t, tr.Resolve(s2.ID, vm(50)))
	require.False(t, tr.Resolve(s1.ID, vm(99)))

	require.Nil(t, tr.Last(session.ModalityText), "a superseded session never reached a terminal state")
}
