package web

import (
	"fmt"
	"net/http"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/types"
	"gphotos-admin/internal/validation"

	"github.com/labstack/echo/v4"
)

// modal slots a fragment can be closed from
var modalSlots = map[string]bool{"modal": true, "picker": true}

func (s *Server) handleLogsModal(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ContainerID(id); err != nil {
		return err
	}
	ctx := c.Request().Context()

	view := logsView{ContainerID: id, ContainerName: id, AutoScroll: s.config.AutoScroll}
	if containers, err := s.api.ListContainers(ctx); err == nil {
		for _, ct := range containers {
			if ct.ID == id {
				view.ContainerName = ct.Title()
			}
		}
	}

	text, err := s.api.Logs(ctx, id)
	if err != nil {
		view.Err = err
	}
	for _, raw := range dashboard.SplitSnapshot(text) {
		view.Lines = append(view.Lines, dashboard.ParseLogLine(raw))
	}
	return c.Render(http.StatusOK, "modal-logs", view)
}

// handleLogsDownload saves the current log snapshot as a text file
func (s *Server) handleLogsDownload(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ContainerID(id); err != nil {
		return err
	}
	text, err := s.api.Logs(c.Request().Context(), id)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", dashboard.DownloadFilename(id, s.now())))
	res.WriteHeader(http.StatusOK)
	return dashboard.WriteLog(res, dashboard.SplitSnapshot(text))
}

func (s *Server) handleCreateModal(c echo.Context) error {
	return c.Render(http.StatusOK, "modal-create", createView{})
}

func (s *Server) handleConfigModal(c echo.Context) error {
	name, err := s.profileParam(c)
	if err != nil {
		return err
	}
	editMode := c.QueryParam("edit") == "true"
	if editMode {
		cfg, err := s.api.GetConfig(c.Request().Context(), name)
		if err != nil {
			return err
		}
		return c.Render(http.StatusOK, "modal-config", s.configView(name, true, dashboard.ConfigValues(*cfg)))
	}
	return c.Render(http.StatusOK, "modal-config", s.loadConfigView(c, name, false))
}

// loadConfigView prefills the editor from the backend. A profile without a
// compose file yet starts from the defaults.
func (s *Server) loadConfigView(c echo.Context, name string, editMode bool) configView {
	cfg := types.DefaultConfiguration()
	got, err := s.api.GetConfig(c.Request().Context(), name)
	switch {
	case err == nil:
		cfg = *got
	case !errors.IsNotFound(err):
		logger.GetLogger(c).WithError(err).WithField("profile", name).Warn("Config fetch failed, using defaults")
	}
	return s.configView(name, editMode, dashboard.ConfigValues(cfg))
}

func (s *Server) configView(name string, editMode bool, values map[string]string) configView {
	view := configView{ProfileName: name, EditMode: editMode}
	for _, f := range dashboard.ConfigFields {
		view.Fields = append(view.Fields, configField{ConfigField: f, Value: values[f.Key]})
	}
	if runs, err := validation.NextRuns(values["cron_schedule"], s.now(), 3); err == nil {
		view.NextRuns = runs
	}
	return view
}

func (s *Server) handleAuthModal(c echo.Context) error {
	name, err := s.profileParam(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "modal-auth", authView{
		ProfileName: name,
		ReAuth:      c.QueryParam("reauth") == "true",
		VNCURL:      s.config.VNCURL,
	})
}

func (s *Server) handleFoldersModal(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		path = "/"
	}
	if err := validation.PhotoDir(path); err != nil {
		return err
	}
	res, err := s.api.BrowseDirectories(c.Request().Context(), path)
	if err == nil && res.Error != "" {
		err = errors.ActionFailed("browse", res.Error)
	}
	return c.Render(http.StatusOK, "modal-folders", foldersView{Result: res, Err: err})
}

// handleSelectFolder swaps the chosen path into the photo_dir input and
// closes the picker
func (s *Server) handleSelectFolder(c echo.Context) error {
	path := c.QueryParam("path")
	if err := validation.PhotoDir(path); err != nil {
		return err
	}
	return c.Render(http.StatusOK, "folder-selected", path)
}

func (s *Server) handleCloseModal(c echo.Context) error {
	slot := c.QueryParam("slot")
	if slot == "" {
		slot = "modal"
	}
	if !modalSlots[slot] {
		return errors.InvalidInput(slot, "modal or picker")
	}
	if slot == "modal" {
		// the picker belongs to the modal
		return c.Render(http.StatusOK, "close-modal", nil)
	}
	return c.NoContent(http.StatusOK)
}
