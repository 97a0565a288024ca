package web

import (
	"net/http"
	"strconv"
	"strings"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/types"
	"gphotos-admin/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

func (s *Server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "index", pageView{
		RefreshSeconds: int(s.config.RefreshInterval.Seconds()),
		AutoScroll:     s.config.AutoScroll,
	})
}

// A failed listing fetch is logged and answered with 204 so the page keeps
// the last rendered fragment until the next poll.

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.api.Stats(c.Request().Context())
	if err != nil {
		logger.GetLogger(c).WithError(err).Warn("Stats fetch failed")
		return c.NoContent(http.StatusNoContent)
	}
	return c.Render(http.StatusOK, "stats", statsView{Stats: *stats})
}

func (s *Server) handleContainers(c echo.Context) error {
	containers, err := s.api.ListContainers(c.Request().Context())
	if err != nil {
		logger.GetLogger(c).WithError(err).Warn("Container fetch failed")
		return c.NoContent(http.StatusNoContent)
	}
	return c.Render(http.StatusOK, "containers", containersView{
		Containers: lo.Map(containers, func(ct types.Container, _ int) containerView {
			return containerView{Container: ct, Buttons: containerButtons(ct)}
		}),
	})
}

func (s *Server) handleProfiles(c echo.Context) error {
	profiles, err := s.api.AvailableProfiles(c.Request().Context())
	if err != nil {
		logger.GetLogger(c).WithError(err).Warn("Profile fetch failed")
		return c.NoContent(http.StatusNoContent)
	}
	return c.Render(http.StatusOK, "profiles", profilesView{
		Profiles: lo.Map(profiles, func(p types.Profile, _ int) profileView {
			return profileView{Profile: p, Buttons: profileButtons(p)}
		}),
	})
}

// handleRefresh tells every listing fragment to reload
func (s *Server) handleRefresh(c echo.Context) error {
	c.Response().Header().Set("HX-Trigger", "refresh")
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) renderOutcome(c echo.Context, v outcomeView) error {
	if v.Refetch && v.RefreshAfter == 0 {
		v.RefreshAfter = v.Delay
	}
	// everything in an outcome is swapped out of band
	c.Response().Header().Set("HX-Reswap", "none")
	return c.Render(http.StatusOK, "outcome", v)
}

func (s *Server) run(c echo.Context, k dashboard.ActionKind, target string) error {
	o := s.exec.Run(c.Request().Context(), k, target)
	return s.renderOutcome(c, outcomeView{Outcome: o})
}

func (s *Server) handleContainerAction(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ContainerID(id); err != nil {
		return err
	}
	k, ok := dashboard.ParseAction(c.Param("action"))
	if !ok || !lo.Contains([]dashboard.ActionKind{dashboard.Start, dashboard.Stop, dashboard.Restart}, k) {
		return errors.InvalidInput(c.Param("action"), "start, stop or restart")
	}
	return s.run(c, k, id)
}

func (s *Server) profileParam(c echo.Context) (string, error) {
	name := c.Param("name")
	if err := validation.ProfileName(name); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Server) handleDeleteProfile(c echo.Context) error {
	name, err := s.profileParam(c)
	if err != nil {
		return err
	}
	if dashboard.IsDefaultProfile(name) {
		return errors.InvalidInput(name, "a non-default profile")
	}
	return s.run(c, dashboard.Delete, name)
}

func (s *Server) handleDeleteProfileFiles(c echo.Context) error {
	name, err := s.profileParam(c)
	if err != nil {
		return err
	}
	return s.run(c, dashboard.RemoveFiles, name)
}

func (s *Server) handleStartProfile(c echo.Context) error {
	name, err := s.profileParam(c)
	if err != nil {
		return err
	}
	return s.run(c, dashboard.StartProfile, name)
}

func (s *Server) handleCreateProfile(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if err := validation.ProfileDisplayName(name); err != nil {
		return c.Render(http.StatusOK, "modal-create", createView{Name: name, Error: fieldMessage(err)})
	}

	o := s.exec.Run(c.Request().Context(), dashboard.CreateProfile, name)
	v := outcomeView{Outcome: o}
	if o.OK() && o.Result != nil && o.Result.ProfileName != "" {
		v.Modal = "modal-auth"
		v.ModalData = authView{ProfileName: o.Result.ProfileName, VNCURL: s.config.VNCURL}
	}
	return s.renderOutcome(c, v)
}

// handleSaveConfig writes the compose file. A new profile is started by a
// follow-up request once the backend settled; an existing one is recreated
// in the same request.
func (s *Server) handleSaveConfig(c echo.Context) error {
	name, err := s.profileParam(c)
	if err != nil {
		return err
	}
	form, err := c.FormParams()
	if err != nil {
		return errors.InvalidInput("form", "url-encoded configuration")
	}
	values := make(map[string]string, len(dashboard.ConfigFields))
	for _, f := range dashboard.ConfigFields {
		values[f.Key] = form.Get(f.Key)
		if f.Kind == dashboard.BoolField {
			values[f.Key] = strconv.FormatBool(form.Get(f.Key) != "")
		}
	}
	editMode := form.Get("edit") == "true"

	cfg, err := dashboard.ParseConfig(values)
	if err != nil {
		view := s.configView(name, editMode, values)
		view.Error = fieldMessage(err)
		return c.Render(http.StatusOK, "modal-config", view)
	}

	ctx := c.Request().Context()
	if editMode {
		final := dashboard.Final(s.exec.Save(ctx, name, cfg, true))
		return s.renderOutcome(c, outcomeView{Outcome: final, CloseModal: final.OK()})
	}

	res, err := s.api.CreateCompose(ctx, name, cfg)
	o := s.exec.Delays.Interpret(dashboard.SaveConfig, res, err)
	v := outcomeView{Outcome: o}
	if o.OK() {
		v.CloseModal = true
		v.FollowUp = "/ui/profiles/" + pathSeg(name) + "/start"
		v.FollowUpDelay = s.exec.Delays.ShortSettle
		v.Refetch = false
	}
	return s.renderOutcome(c, v)
}

func (s *Server) handleStartAuth(c echo.Context) error {
	name, err := s.profileParam(c)
	if err != nil {
		return err
	}
	reauth := c.QueryParam("reauth") == "true"
	o := s.exec.Run(c.Request().Context(), dashboard.AuthStartAction(reauth), name)
	return s.renderOutcome(c, outcomeView{
		Outcome:   o,
		Modal:     "modal-auth",
		ModalData: authView{ProfileName: name, ReAuth: reauth, Running: o.OK(), VNCURL: s.config.VNCURL},
	})
}

func (s *Server) handleStopAuth(c echo.Context) error {
	name, err := s.profileParam(c)
	if err != nil {
		return err
	}
	reauth := c.QueryParam("reauth") == "true"
	ctx := c.Request().Context()
	o := s.exec.Run(ctx, dashboard.StopAuth, name)
	v := outcomeView{Outcome: o}
	if !o.OK() {
		return s.renderOutcome(c, v)
	}

	switch dashboard.AuthConfirmFlow(reauth) {
	case dashboard.AfterAuthConfigure:
		v.Modal = "modal-config"
		v.ModalData = s.loadConfigView(c, name, false)
	default:
		v.CloseModal = true
	}
	return s.renderOutcome(c, v)
}

func fieldMessage(err error) string {
	if ae, ok := errors.As(err); ok {
		if ae.Details != "" {
			return ae.Details
		}
		return ae.Message
	}
	return err.Error()
}
