package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_DecodesBackendStrings(t *testing.T) {
	body := `[{"id":"0123456789abcdef","name":"gphotos-sync-profile1","profile":"profile1",
		"status":"running","run_on_startup":"true","worker_count":"6","cron_schedule":"0 2 * * *"}]`

	var containers []Container
	require.NoError(t, json.Unmarshal([]byte(body), &containers))
	require.Len(t, containers, 1)

	c := containers[0]
	assert.True(t, c.IsRunning())
	assert.True(t, bool(c.RunOnStartup))
	assert.Equal(t, "6", c.WorkerCount.String())
	assert.Equal(t, "0123456789ab", c.ShortID())
	assert.Equal(t, "gphotos-sync-profile1", c.Title())
}

func TestFlexTypes(t *testing.T) {
	var cfg Configuration
	require.NoError(t, json.Unmarshal([]byte(`{"run_on_startup":"false","worker_count":"","puid":1000,"legacy_mode":true}`), &cfg))
	assert.False(t, bool(cfg.RunOnStartup))
	assert.Equal(t, FlexInt(0), cfg.WorkerCount)
	assert.Equal(t, FlexInt(1000), cfg.PUID)
	assert.True(t, bool(cfg.LegacyMode))

	out, err := json.Marshal(Configuration{RunOnStartup: true, WorkerCount: 4})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"run_on_startup":true`)
	assert.Contains(t, string(out), `"worker_count":4`)

	var bad FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"six"`), &bad))
}

func TestActionResult_StatusIs(t *testing.T) {
	r := &ActionResult{Status: " Deleted "}
	assert.True(t, r.StatusIs(StatusDeleted, StatusPartial))
	assert.False(t, r.StatusIs(StatusStarted))

	var nilResult *ActionResult
	assert.False(t, nilResult.StatusIs(StatusDeleted))
	assert.Equal(t, "", nilResult.ErrorText())

	assert.Equal(t, "msg", (&ActionResult{Message: "msg"}).ErrorText())
	assert.Equal(t, "err", (&ActionResult{Error: "err", Message: "msg"}).ErrorText())
}

func TestResult(t *testing.T) {
	ok := NewResult([]int{1, 2})
	assert.False(t, ok.IsError())
	assert.Equal(t, []int{1, 2}, ok.OrElse(nil))

	failed := NewErrorResult[[]int](assert.AnError)
	assert.True(t, failed.IsError())
	assert.Equal(t, []int{9}, failed.OrElse([]int{9}))
}
