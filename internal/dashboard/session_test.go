package dashboard

import (
	"context"
	"testing"

	"gphotos-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ModalLifecycle(t *testing.T) {
	var s Session
	assert.Equal(t, NoModal, s.Active())

	s.OpenCreate()
	assert.Equal(t, CreateModal, s.Active())

	s.OpenAuth("profile1", false)
	assert.Equal(t, AuthModal, s.Active())

	s.OpenConfig("profile1", true)
	assert.Equal(t, ConfigModal, s.Active())
	assert.True(t, s.Config.EditMode)

	s.OpenFolders("/photos")
	assert.Equal(t, FoldersModal, s.Active())

	s.AskConfirm(Delete, "profile1", "Family")
	assert.Equal(t, ConfirmModal, s.Active())

	pending := s.CloseConfirm()
	assert.Equal(t, Delete, pending.Action)
	assert.Equal(t, "profile1", pending.Target)
	assert.Equal(t, ConfirmState{}, s.Confirm)

	s.Close(FoldersModal)
	assert.Equal(t, FoldersState{}, s.Folders)
	assert.Equal(t, ConfigModal, s.Active())

	s.CloseConfig()
	assert.Equal(t, ConfigState{}, s.Config)
	assert.Equal(t, AuthModal, s.Active())

	s.CloseAll()
	assert.Equal(t, Session{}, s)
}

func TestParseModal(t *testing.T) {
	for m := LogsModal; m <= ConfirmModal; m++ {
		assert.Equal(t, m, ParseModal(m.String()))
	}
	assert.Equal(t, NoModal, ParseModal("bogus"))
}

func TestSession_SingleLogStream(t *testing.T) {
	src := testutil.NewMockLogSource()
	ctx := context.Background()
	var s Session

	s.OpenLogs("c1", "worker-1", true)
	first, err := Subscribe(ctx, src, "c1")
	require.NoError(t, err)
	require.True(t, s.AttachStream(first))
	assert.True(t, s.CurrentStream(first.ID))

	s.OpenLogs("c2", "worker-2", true)
	<-first.Done()
	assert.Nil(t, s.Logs.Stream)
	assert.Equal(t, "c2", s.Logs.ContainerID)

	second, err := Subscribe(ctx, src, "c2")
	require.NoError(t, err)
	require.True(t, s.AttachStream(second))
	assert.False(t, s.CurrentStream(first.ID))

	s.CloseLogs()
	<-second.Done()
	assert.Equal(t, LogsState{}, s.Logs)
}

func TestSession_AttachStaleStream(t *testing.T) {
	src := testutil.NewMockLogSource()
	var s Session
	s.OpenLogs("c2", "worker-2", false)

	stale, err := Subscribe(context.Background(), src, "c1")
	require.NoError(t, err)
	assert.False(t, s.AttachStream(stale))
	<-stale.Done()
	assert.Nil(t, s.Logs.Stream)

	s.CloseLogs()
	late, err := Subscribe(context.Background(), src, "c2")
	require.NoError(t, err)
	assert.False(t, s.AttachStream(late))
	<-late.Done()
}

func TestSession_ToggleAutoScroll(t *testing.T) {
	var s Session
	s.OpenLogs("c1", "w", true)
	assert.False(t, s.ToggleAutoScroll())
	assert.True(t, s.ToggleAutoScroll())
}
