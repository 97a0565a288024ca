package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"gphotos-admin/internal/types"
)

// Request is a call recorded by FakeBackend
type Request struct {
	Method string
	Path   string
	Body   string
}

type failure struct {
	status int
	body   string
}

// FakeBackend is an in-memory implementation of the sync backend REST API
type FakeBackend struct {
	mu sync.Mutex

	Containers  []types.Container
	Profiles    []types.Profile
	Configs     map[string]types.Configuration
	Logs        map[string][]string
	Directories map[string][]string
	FileCounts  map[string]int

	// PartialDelete makes delete endpoints answer "partial" with one error
	PartialDelete bool

	authSession string
	nextProfile int
	failures    map[string]failure
	requests    []Request
	streams     map[string][]chan string
	streamOpen  chan string
	streamDone  chan string

	server *httptest.Server
}

// NewFakeBackend starts a fake backend that is closed with the test
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		Configs:     map[string]types.Configuration{},
		Logs:        map[string][]string{},
		Directories: map[string][]string{"/": {"photos", "data"}},
		FileCounts:  map[string]int{},
		failures:    map[string]failure{},
		streams:     map[string][]chan string{},
		streamOpen:  make(chan string, 16),
		streamDone:  make(chan string, 16),
		nextProfile: 1,
	}
	f.server = httptest.NewServer(f.handler())
	t.Cleanup(f.Close)
	return f
}

// URL returns the base URL of the fake backend
func (f *FakeBackend) URL() string {
	return f.server.URL
}

// Close shuts the server down, ending every open stream
func (f *FakeBackend) Close() {
	f.mu.Lock()
	for id, chans := range f.streams {
		for _, ch := range chans {
			close(ch)
		}
		delete(f.streams, id)
	}
	f.mu.Unlock()
	f.server.Close()
}

// Fail makes every request to method+path answer with status and body
func (f *FakeBackend) Fail(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = failure{status: status, body: body}
}

// Requests returns the calls received so far
func (f *FakeBackend) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// CallCount counts calls to method+path
func (f *FakeBackend) CallCount(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// AuthSession returns the profile whose credentials are being captured
func (f *FakeBackend) AuthSession() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authSession
}

// StreamOpened delivers the container id of every stream that connects
func (f *FakeBackend) StreamOpened() <-chan string {
	return f.streamOpen
}

// StreamClosed delivers the container id of every stream that disconnects
func (f *FakeBackend) StreamClosed() <-chan string {
	return f.streamDone
}

// OpenStreams counts live log streams for a container
func (f *FakeBackend) OpenStreams(containerID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.streams[containerID])
}

// PushLog appends a line to a container's logs and sends it to open streams
func (f *FakeBackend) PushLog(containerID, line string) {
	f.mu.Lock()
	f.Logs[containerID] = append(f.Logs[containerID], line)
	chans := append([]chan string(nil), f.streams[containerID]...)
	f.mu.Unlock()
	for _, ch := range chans {
		ch <- line
	}
}

func (f *FakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/containers", f.listContainers)
	mux.HandleFunc("GET /api/stats", f.stats)
	mux.HandleFunc("GET /api/container/{id}/logs", f.logs)
	mux.HandleFunc("GET /api/container/{id}/logs/stream", f.stream)
	mux.HandleFunc("POST /api/container/{id}/{action}", f.containerAction)
	mux.HandleFunc("GET /api/available-profiles", f.availableProfiles)
	mux.HandleFunc("GET /api/check-auth/{name}", f.checkAuth)
	mux.HandleFunc("GET /api/get-config/{name}", f.getConfig)
	mux.HandleFunc("POST /api/create-compose/{name}", f.createCompose)
	mux.HandleFunc("POST /api/start-profile/{name}", f.startProfile)
	mux.HandleFunc("POST /api/recreate-profile/{name}", f.recreateProfile)
	mux.HandleFunc("POST /api/create-new-profile", f.createNewProfile)
	mux.HandleFunc("DELETE /api/delete-profile/{name}", f.deleteProfile)
	mux.HandleFunc("DELETE /api/delete-profile-files/{name}", f.deleteProfileFiles)
	mux.HandleFunc("POST /api/start-auth/{name}", f.startAuth)
	mux.HandleFunc("POST /api/reauth-profile/{name}", f.startAuth)
	mux.HandleFunc("POST /api/stop-auth", f.stopAuth)
	mux.HandleFunc("POST /api/browse-directories", f.browse)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		f.mu.Lock()
		f.requests = append(f.requests, Request{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		fail, failing := f.failures[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(fail.status)
			_, _ = io.WriteString(w, fail.body)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func notify(ch chan string, id string) {
	select {
	case ch <- id:
	default:
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (f *FakeBackend) listContainers(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	containers := append([]types.Container{}, f.Containers...)
	writeJSON(w, http.StatusOK, containers)
}

func (f *FakeBackend) stats(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := types.Stats{Total: len(f.Containers)}
	for _, c := range f.Containers {
		if c.IsRunning() {
			s.Running++
		} else {
			s.Stopped++
		}
	}
	writeJSON(w, http.StatusOK, s)
}

func (f *FakeBackend) container(id string) *types.Container {
	for i := range f.Containers {
		if f.Containers[i].ID == id || f.Containers[i].Name == id {
			return &f.Containers[i]
		}
	}
	return nil
}

func (f *FakeBackend) profile(name string) *types.Profile {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i]
		}
	}
	return nil
}

func (f *FakeBackend) logs(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.container(id) == nil {
		writeError(w, http.StatusNotFound, "Container not found")
		return
	}
	text := strings.Join(f.Logs[id], "\n")
	if text != "" {
		text += "\n"
	}
	writeJSON(w, http.StatusOK, types.LogsSnapshot{Logs: text})
}

func (f *FakeBackend) stream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch := make(chan string, 16)
	f.mu.Lock()
	if f.container(id) == nil {
		f.mu.Unlock()
		writeError(w, http.StatusNotFound, "Container not found")
		return
	}
	f.streams[id] = append(f.streams[id], ch)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, ": connected\n\n")
	flusher.Flush()
	notify(f.streamOpen, id)

	defer func() {
		f.mu.Lock()
		chans := f.streams[id]
		for i, c := range chans {
			if c == ch {
				f.streams[id] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
		f.mu.Unlock()
		notify(f.streamDone, id)
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case line, ok := <-ch:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "data: %s\n\n", line)
			flusher.Flush()
		}
	}
}

func (f *FakeBackend) containerAction(w http.ResponseWriter, r *http.Request) {
	id, action := r.PathValue("id"), r.PathValue("action")
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.container(id)
	if c == nil {
		writeError(w, http.StatusNotFound, "Container not found")
		return
	}
	switch action {
	case "start":
		c.Status = types.StatusRunning
		writeJSON(w, http.StatusOK, types.ActionResult{Status: types.StatusStarted})
	case "stop":
		c.Status = types.StatusExited
		writeJSON(w, http.StatusOK, types.ActionResult{Status: types.StatusStopped})
	case "restart":
		c.Status = types.StatusRunning
		writeJSON(w, http.StatusOK, types.ActionResult{Status: types.StatusRestarted})
	default:
		writeError(w, http.StatusNotFound, "Unknown action")
	}
}

func (f *FakeBackend) availableProfiles(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	running := map[string]bool{}
	for _, c := range f.Containers {
		running[c.Profile] = true
	}
	profiles := []types.Profile{}
	for _, p := range f.Profiles {
		if !running[p.Name] {
			profiles = append(profiles, p)
		}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (f *FakeBackend) checkAuth(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.profile(name)
	if p == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, types.AuthStatus{Authenticated: p.Authenticated, Profile: name})
}

func (f *FakeBackend) getConfig(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.Configs[name]
	if !ok {
		writeError(w, http.StatusNotFound, "Configuration not found")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (f *FakeBackend) createCompose(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var cfg types.Configuration
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid configuration")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Configs[name] = cfg
	if p := f.profile(name); p != nil {
		p.HasCompose = true
	}
	writeJSON(w, http.StatusOK, types.ActionResult{Status: types.StatusCreated})
}

func (f *FakeBackend) startProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.profile(name)
	if p == nil || !bool(p.HasCompose) {
		writeError(w, http.StatusBadRequest, "Compose file not found")
		return
	}
	if c := f.profileContainer(name); c != nil {
		c.Status = types.StatusRunning
	} else {
		f.Containers = append(f.Containers, types.Container{
			ID:      fmt.Sprintf("%012x", len(f.Containers)+0xabc000),
			Name:    "gphotos-sync-" + name,
			Profile: name,
			Status:  types.StatusRunning,
		})
	}
	writeJSON(w, http.StatusOK, types.ActionResult{Status: types.StatusStarted})
}

func (f *FakeBackend) profileContainer(name string) *types.Container {
	for i := range f.Containers {
		if f.Containers[i].Profile == name {
			return &f.Containers[i]
		}
	}
	return nil
}

func (f *FakeBackend) recreateProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.profileContainer(name)
	if c == nil {
		writeError(w, http.StatusNotFound, "Container not found")
		return
	}
	c.Status = types.StatusRunning
	writeJSON(w, http.StatusOK, types.ActionResult{Status: types.StatusRecreated})
}

func (f *FakeBackend) createNewProfile(w http.ResponseWriter, r *http.Request) {
	var req types.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Profile name is required")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.profile(fmt.Sprintf("profile%d", f.nextProfile)) != nil {
		f.nextProfile++
	}
	num := f.nextProfile
	name := fmt.Sprintf("profile%d", num)
	f.Profiles = append(f.Profiles, types.Profile{Name: name, DisplayName: req.Name, Number: types.FlexInt(num)})
	writeJSON(w, http.StatusOK, types.ActionResult{
		Status:      types.StatusCreated,
		ProfileName: name,
		ProfileNum:  types.FlexInt(num),
	})
}

func (f *FakeBackend) deleteProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f.mu.Lock()
	defer f.mu.Unlock()

	result := types.ActionResult{Status: types.StatusDeleted}
	kept := f.Containers[:0]
	for _, c := range f.Containers {
		if c.Profile == name {
			result.Success = append(result.Success, "Removed container "+c.Name)
			continue
		}
		kept = append(kept, c)
	}
	f.Containers = kept
	if _, ok := f.Configs[name]; ok {
		delete(f.Configs, name)
		result.Success = append(result.Success, "Removed compose file")
	}
	if f.PartialDelete {
		result.Status = types.StatusPartial
		result.Errors = []string{"Failed to remove profile directory"}
	}
	writeJSON(w, http.StatusOK, result)
}

func (f *FakeBackend) deleteProfileFiles(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile(name) == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	kept := f.Profiles[:0]
	for _, p := range f.Profiles {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	f.Profiles = kept
	delete(f.Configs, name)
	result := types.ActionResult{Status: types.StatusDeleted, Success: []string{"Removed profile directory"}}
	if f.PartialDelete {
		result.Status = types.StatusPartial
		result.Errors = []string{"Failed to remove compose file"}
	}
	writeJSON(w, http.StatusOK, result)
}

func (f *FakeBackend) startAuth(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile(name) == nil && f.profileContainer(name) == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	f.authSession = name
	writeJSON(w, http.StatusOK, types.ActionResult{Status: types.StatusStarted})
}

func (f *FakeBackend) stopAuth(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authSession == "" {
		writeError(w, http.StatusBadRequest, "No authentication session running")
		return
	}
	if p := f.profile(f.authSession); p != nil {
		p.Authenticated = true
	}
	f.authSession = ""
	writeJSON(w, http.StatusOK, types.ActionResult{Status: types.StatusStopped})
}

func (f *FakeBackend) browse(w http.ResponseWriter, r *http.Request) {
	var req types.BrowseRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	path := req.Path
	if path == "" {
		path = "/"
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	dirs, ok := f.Directories[path]
	if !ok {
		writeError(w, http.StatusBadRequest, "Directory not found")
		return
	}
	dirs = append([]string(nil), dirs...)
	sort.Strings(dirs)
	parent := ""
	if path != "/" {
		parent = path[:strings.LastIndex(path, "/")]
		if parent == "" {
			parent = "/"
		}
	}
	writeJSON(w, http.StatusOK, types.BrowseResult{
		CurrentPath: path,
		ParentPath:  parent,
		Directories: dirs,
		FilesCount:  f.FileCounts[path],
	})
}
