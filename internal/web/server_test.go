package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gphotos-admin/internal/client"
	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/testutil"
	"gphotos-admin/internal/types"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultID = "abc123def4567890"
	familyID  = "fed987cba6543210"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	backend.Containers = []types.Container{
		{ID: defaultID, Name: "gphotos-sync-default", Profile: "default", Status: types.StatusRunning, CronSchedule: "0 2 * * *"},
		{ID: familyID, Name: "gphotos-sync-profile9", DisplayName: "Family", Profile: "profile9", Status: types.StatusExited},
	}
	backend.Profiles = []types.Profile{
		{Name: "profile1", DisplayName: "Work", Authenticated: true},
		{Name: "profile9", DisplayName: "Family", HasCompose: true, Authenticated: true},
	}
	backend.Configs["profile9"] = types.DefaultConfiguration()

	api, err := client.New(backend.URL())
	require.NoError(t, err)

	s, err := New(DefaultConfig(), api)
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }
	return s, backend
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	return serve(s, testutil.NewHTMXRequest(http.MethodGet, target))
}

func configForm(cfg types.Configuration, edit bool) url.Values {
	form := url.Values{}
	for key, v := range dashboard.ConfigValues(cfg) {
		if v == "false" {
			continue
		}
		form.Set(key, v)
	}
	if edit {
		form.Set("edit", "true")
	}
	return form
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `hx-get="/ui/containers"`)
	assert.Contains(t, body, "every 10s")
	assert.Contains(t, body, "refresh from:body")
	assert.Contains(t, body, `id="toasts"`)
	assert.Contains(t, body, "responseHandling")
}

func TestListingFragments(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("stats", func(t *testing.T) {
		rec := get(s, "/ui/stats")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Total <strong>2</strong>")
		assert.Contains(t, rec.Body.String(), "Running <strong>1</strong>")
	})

	t.Run("containers", func(t *testing.T) {
		rec := get(s, "/ui/containers")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "gphotos-sync-default")
		assert.Contains(t, body, "Family")
		assert.Contains(t, body, `hx-post="/ui/containers/`+defaultID+`/stop"`)
		assert.Contains(t, body, `hx-confirm="Stop gphotos-sync-default?"`)
		assert.Contains(t, body, `hx-confirm="Restart gphotos-sync-default?"`)
		assert.Contains(t, body, `hx-post="/ui/containers/`+familyID+`/start"`)
		assert.Contains(t, body, `hx-delete="/ui/profiles/profile9"`)
		// the default profile is never deletable
		assert.NotContains(t, body, `hx-delete="/ui/profiles/default"`)
	})

	t.Run("profiles without a worker", func(t *testing.T) {
		rec := get(s, "/ui/profiles")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Work")
		assert.NotContains(t, body, "Family")
		assert.Contains(t, body, `hx-get="/ui/modals/config/profile1"`)
	})
}

func TestListingFailureKeepsPreviousFragment(t *testing.T) {
	s, backend := newTestServer(t)
	backend.Fail(http.MethodGet, "/api/containers", http.StatusInternalServerError, `{"error":"docker unavailable"}`)
	backend.Fail(http.MethodGet, "/api/stats", http.StatusInternalServerError, `{"error":"docker unavailable"}`)

	for _, target := range []string{"/ui/containers", "/ui/stats"} {
		rec := get(s, target)
		assert.Equal(t, http.StatusNoContent, rec.Code, target)
		assert.Empty(t, rec.Body.String(), target)
	}

	rec := get(s, "/ui/profiles")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Work")
}

func TestRefresh(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(s, "/ui/refresh")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "refresh", rec.Header().Get("HX-Trigger"))
}

func TestContainerAction(t *testing.T) {
	s, backend := newTestServer(t)

	rec := serve(s, testutil.NewHTMXRequest(http.MethodPost, "/ui/containers/"+defaultID+"/stop"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	body := rec.Body.String()
	assert.Contains(t, body, `class="toast success"`)
	assert.Contains(t, body, "Stopped")
	assert.Contains(t, body, `hx-trigger="load delay:1000ms"`)
	assert.Equal(t, 1, backend.CallCount(http.MethodPost, "/api/container/"+defaultID+"/stop"))
}

func TestContainerAction_Rejected(t *testing.T) {
	s, backend := newTestServer(t)

	t.Run("unknown action", func(t *testing.T) {
		rec := serve(s, testutil.NewHTMXRequest(http.MethodPost, "/ui/containers/"+defaultID+"/delete"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `class="toast error"`)
	})

	t.Run("backend failure", func(t *testing.T) {
		backend.Fail(http.MethodPost, "/api/container/"+defaultID+"/restart", http.StatusInternalServerError, `{"error":"boom"}`)
		rec := serve(s, testutil.NewHTMXRequest(http.MethodPost, "/ui/containers/"+defaultID+"/restart"))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Restart failed")
		assert.Contains(t, body, "boom")
		assert.NotContains(t, body, "/ui/refresh")
	})
}

func TestDeleteProfile(t *testing.T) {
	s, backend := newTestServer(t)

	t.Run("default profile", func(t *testing.T) {
		rec := serve(s, httptest.NewRequest(http.MethodDelete, "/ui/profiles/default", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
		assert.Contains(t, rec.Body.String(), "Invalid input")
		assert.Zero(t, backend.CallCount(http.MethodDelete, "/api/delete-profile/default"))
	})

	t.Run("partial", func(t *testing.T) {
		backend.PartialDelete = true
		rec := serve(s, testutil.NewHTMXRequest(http.MethodDelete, "/ui/profiles/profile9"))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `class="toast warning"`)
		assert.Contains(t, body, "Failed to remove profile directory")
	})

	t.Run("files", func(t *testing.T) {
		rec := serve(s, testutil.NewHTMXRequest(http.MethodDelete, "/ui/profiles/profile1/files"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, backend.CallCount(http.MethodDelete, "/api/delete-profile-files/profile1"))
	})
}

func TestCreateProfile(t *testing.T) {
	s, backend := newTestServer(t)

	t.Run("empty name keeps the dialog", func(t *testing.T) {
		rec := serve(s, testutil.NewFormRequest(http.MethodPost, "/ui/profiles", url.Values{"name": {"  "}}))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("HX-Reswap"))
		assert.Contains(t, rec.Body.String(), "cannot be empty")
		assert.Zero(t, backend.CallCount(http.MethodPost, "/api/create-new-profile"))
	})

	t.Run("opens authentication", func(t *testing.T) {
		rec := serve(s, testutil.NewFormRequest(http.MethodPost, "/ui/profiles", url.Values{"name": {"Holidays"}}))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Created profile2 (#2)")
		assert.Contains(t, body, `<div id="modal" hx-swap-oob="innerHTML">`)
		assert.Contains(t, body, `hx-post="/ui/profiles/profile2/auth"`)
		assert.Contains(t, body, "delay:500ms")
	})
}

func TestAuthenticateThenConfigure(t *testing.T) {
	s, backend := newTestServer(t)

	rec := serve(s, testutil.NewHTMXRequest(http.MethodPost, "/ui/profiles/profile1/auth"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication started")
	assert.Contains(t, rec.Body.String(), `hx-post="/ui/profiles/profile1/auth/stop"`)
	assert.Contains(t, rec.Body.String(), "http://localhost:6080/vnc.html")
	assert.Equal(t, "profile1", backend.AuthSession())

	rec = serve(s, testutil.NewHTMXRequest(http.MethodPost, "/ui/profiles/profile1/auth/stop"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Credentials saved")
	assert.Contains(t, body, `hx-post="/ui/profiles/profile1/config"`)
	// no compose file yet: the editor starts from the defaults
	assert.Contains(t, body, `value="0 2 * * *"`)
	assert.Contains(t, body, "Save and start")
}

func TestReauthenticateClosesDialog(t *testing.T) {
	s, backend := newTestServer(t)

	rec := serve(s, testutil.NewHTMXRequest(http.MethodPost, "/ui/profiles/profile9/auth?reauth=true"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, backend.CallCount(http.MethodPost, "/api/reauth-profile/profile9"))
	assert.Contains(t, rec.Body.String(), `auth/stop?reauth=true`)

	rec = serve(s, testutil.NewHTMXRequest(http.MethodPost, "/ui/profiles/profile9/auth/stop?reauth=true"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<div id="modal" hx-swap-oob="innerHTML"></div>`)
	assert.NotContains(t, body, "/config")
}

func TestSaveConfig(t *testing.T) {
	t.Run("new profile starts after settling", func(t *testing.T) {
		s, backend := newTestServer(t)
		cfg := types.DefaultConfiguration()
		cfg.PhotoDir = "/photos"

		rec := serve(s, testutil.NewFormRequest(http.MethodPost, "/ui/profiles/profile1/config", configForm(cfg, false)))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Configuration saved")
		assert.Contains(t, body, `hx-post="/ui/profiles/profile1/start" hx-trigger="load delay:500ms"`)
		assert.NotContains(t, body, "/ui/refresh")
		assert.Equal(t, "/photos", backend.Configs["profile1"].PhotoDir)
		assert.Zero(t, backend.CallCount(http.MethodPost, "/api/start-profile/profile1"))

		rec = serve(s, testutil.NewHTMXRequest(http.MethodPost, "/ui/profiles/profile1/start"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Started")
	})

	t.Run("existing profile is recreated", func(t *testing.T) {
		s, backend := newTestServer(t)
		cfg := types.DefaultConfiguration()
		cfg.WorkerCount = 3
		cfg.RunOnStartup = true

		rec := serve(s, testutil.NewFormRequest(http.MethodPost, "/ui/profiles/profile9/config", configForm(cfg, true)))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Container recreated")
		assert.Contains(t, body, `<div id="modal" hx-swap-oob="innerHTML"></div>`)
		assert.Equal(t, 1, backend.CallCount(http.MethodPost, "/api/recreate-profile/profile9"))
		assert.Equal(t, types.FlexInt(3), backend.Configs["profile9"].WorkerCount)
		assert.True(t, bool(backend.Configs["profile9"].RunOnStartup))
	})

	t.Run("invalid values keep the editor", func(t *testing.T) {
		s, backend := newTestServer(t)
		cfg := types.DefaultConfiguration()
		cfg.CronSchedule = "every day"

		rec := serve(s, testutil.NewFormRequest(http.MethodPost, "/ui/profiles/profile1/config", configForm(cfg, false)))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `class="error"`)
		assert.Contains(t, body, `value="every day"`)
		assert.Zero(t, backend.CallCount(http.MethodPost, "/api/create-compose/profile1"))
	})
}

func TestConfigModal(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(s, "/ui/modals/config/profile9?edit=true")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Edit configuration: profile9")
	assert.Contains(t, body, `name="edit" value="true"`)
	assert.Contains(t, body, "Next runs:")

	t.Run("edit without compose file", func(t *testing.T) {
		rec := get(s, "/ui/modals/config/profile1?edit=true")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestFolderPicker(t *testing.T) {
	s, backend := newTestServer(t)
	backend.Directories["/photos"] = []string{"2023", "2024"}
	backend.FileCounts["/photos"] = 1500

	rec := get(s, "/ui/modals/folders")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-get="/ui/modals/folders?path=%2Fphotos"`)

	rec = get(s, "/ui/modals/folders?path=/photos")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "2024/")
	assert.Contains(t, body, "1,500 files")

	rec = get(s, "/ui/folders/select?path=/photos/2024")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="photo_dir" name="photo_dir" value="/photos/2024"`)

	rec = get(s, "/ui/modals/folders?path=photos")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogsModalAndDownload(t *testing.T) {
	s, backend := newTestServer(t)
	backend.Logs[defaultID] = []string{"sync started", "downloaded 3 photos"}

	rec := get(s, "/ui/modals/logs/"+defaultID)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Logs: gphotos-sync-default")
	assert.Contains(t, body, "downloaded 3 photos")
	assert.Contains(t, body, `ws-connect="/ui/containers/`+defaultID+`/logs/ws"`)
	assert.Contains(t, body, `id="autoscroll" checked`)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/ui/containers/"+defaultID+"/logs/download", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), dashboard.DownloadFilename(defaultID, fixedNow))
	assert.Equal(t, "sync started\ndownloaded 3 photos\n", rec.Body.String())
}

func TestCloseModal(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(s, "/ui/modals/close")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `id="picker" hx-swap-oob="innerHTML"`))

	rec = get(s, "/ui/modals/close?slot=picker")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = get(s, "/ui/modals/close?slot=body")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
