package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAlbumGuardFirstPhotoWins(t *testing.T) {
	now := time.Now()
	require.True(t, firstOfAlbum("album-first-wins", now))
	require.False(t, firstOfAlbum("album-first-wins", now.Add(time.Second)))
	require.False(t, firstOfAlbum("album-first-wins", now.Add(albumWindow)))
}

func TestAlbumGuardEvictsOldGroups(t *testing.T) {
	now := time.Now()
	require.True(t, firstOfAlbum("album-old", now))

	// a later call sweeps entries outside the window
	later := now.Add(albumWindow + time.Minute)
	require.True(t, firstOfAlbum("album-new", later))
	_, ok := seenGroups.Load("album-old")
	require.False(t, ok)

	// the swept group id counts as fresh again
	require.True(t, firstOfAlbum("album-old", later))
}
