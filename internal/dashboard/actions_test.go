package dashboard

import (
	"testing"

	"gphotos-admin/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestContainerActions(t *testing.T) {
	tests := []struct {
		name      string
		container types.Container
		want      []ActionKind
	}{
		{
			name:      "running default profile",
			container: types.Container{Status: "running", Profile: "default"},
			want:      []ActionKind{ViewLogs, Stop, Restart},
		},
		{
			name:      "exited default profile",
			container: types.Container{Status: "exited", Profile: "default"},
			want:      []ActionKind{ViewLogs, Start, Restart},
		},
		{
			name:      "running named profile",
			container: types.Container{Status: "Running", Profile: "profile2"},
			want:      []ActionKind{ViewLogs, Stop, Restart, ReAuth, EditConfig, Delete},
		},
		{
			name:      "stopped named profile",
			container: types.Container{Status: "stopped", Profile: "profile2"},
			want:      []ActionKind{ViewLogs, Start, Restart, ReAuth, EditConfig, Delete},
		},
		{
			name:      "missing profile is treated as default",
			container: types.Container{Status: "created"},
			want:      []ActionKind{ViewLogs, Start, Restart},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContainerActions(tt.container)
			assert.Equal(t, tt.want, got)
			assert.False(t, Has(got, Stop) && Has(got, Start), "stop and start are exclusive")
		})
	}
}

func TestProfileActions(t *testing.T) {
	tests := []struct {
		name    string
		profile types.Profile
		want    ActionKind
	}{
		{name: "fresh profile", profile: types.Profile{}, want: Authenticate},
		{name: "authenticated without compose", profile: types.Profile{Authenticated: true}, want: Configure},
		{name: "compose without auth", profile: types.Profile{HasCompose: true}, want: StartProfile},
		{name: "compose and auth", profile: types.Profile{HasCompose: true, Authenticated: true}, want: StartProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryProfileAction(tt.profile))
			assert.Equal(t, []ActionKind{tt.want, RemoveFiles}, ProfileActions(tt.profile))
		})
	}
}

func TestActionKind_Labels(t *testing.T) {
	assert.Equal(t, "Re-Auth", ReAuth.Label())
	assert.Equal(t, "Edit Config", EditConfig.Label())
	assert.Equal(t, "stop-auth", StopAuth.String())
	assert.Equal(t, "action-99", ActionKind(99).String())

	for k := ViewLogs; k <= StopAuth; k++ {
		parsed, ok := ParseAction(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, parsed)
	}
	_, ok := ParseAction("launch")
	assert.False(t, ok)
}

func TestDestructiveActions(t *testing.T) {
	for k := ViewLogs; k <= StopAuth; k++ {
		want := k == Delete || k == RemoveFiles || k == Stop || k == Restart
		assert.Equal(t, want, k.Destructive(), k.String())
	}
	assert.Contains(t, ConfirmPrompt(Delete, "Family"), `"Family"`)
	assert.Contains(t, ConfirmPrompt(RemoveFiles, "Family"), "cannot be undone")
	assert.Equal(t, "Restart gphotos-sync-family?", ConfirmPrompt(Restart, "gphotos-sync-family"))
}
