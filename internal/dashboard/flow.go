package dashboard

import (
	"context"
	"time"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/types"
)

// Backend is the set of mutating backend calls the dashboard issues
type Backend interface {
	StartContainer(ctx context.Context, containerID string) (*types.ActionResult, error)
	StopContainer(ctx context.Context, containerID string) (*types.ActionResult, error)
	RestartContainer(ctx context.Context, containerID string) (*types.ActionResult, error)

	CreateNewProfile(ctx context.Context, displayName string) (*types.ActionResult, error)
	CreateCompose(ctx context.Context, name string, cfg types.Configuration) (*types.ActionResult, error)
	StartProfile(ctx context.Context, name string) (*types.ActionResult, error)
	RecreateProfile(ctx context.Context, name string) (*types.ActionResult, error)
	DeleteProfile(ctx context.Context, name string) (*types.ActionResult, error)
	DeleteProfileFiles(ctx context.Context, name string) (*types.ActionResult, error)

	StartAuth(ctx context.Context, name string) (*types.ActionResult, error)
	ReauthProfile(ctx context.Context, name string) (*types.ActionResult, error)
	StopAuth(ctx context.Context) (*types.ActionResult, error)
}

// Step is one backend call of a multi-call flow
type Step struct {
	Action ActionKind
	// Wait is slept before the call
	Wait time.Duration
}

// SaveFlow returns the calls that follow a config save. A new profile is
// written then started once the backend settled; an existing one is written
// then recreated right away.
func SaveFlow(editMode bool, d Delays) []Step {
	if editMode {
		return []Step{{Action: SaveConfig}, {Action: Recreate}}
	}
	return []Step{{Action: SaveConfig}, {Action: StartProfile, Wait: d.ShortSettle}}
}

// AuthStartAction is the call that opens a capture session
func AuthStartAction(reauth bool) ActionKind {
	if reauth {
		return ReAuth
	}
	return StartAuth
}

// AfterAuth is what the dashboard shows once credentials are saved
type AfterAuth int

const (
	// AfterAuthClose closes the dialog and refreshes listings
	AfterAuthClose AfterAuth = iota
	// AfterAuthConfigure opens the config editor for the same profile
	AfterAuthConfigure
)

// AuthConfirmFlow decides the follow-up of a successful stop-auth
func AuthConfirmFlow(reauth bool) AfterAuth {
	if reauth {
		return AfterAuthClose
	}
	return AfterAuthConfigure
}

// Executor runs actions against the backend and interprets the answers
type Executor struct {
	API    Backend
	Delays Delays
	// Sleep waits between flow steps; nil uses a context-aware timer
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewExecutor creates an executor with the given settle delays
func NewExecutor(api Backend, delays Delays) *Executor {
	return &Executor{API: api, Delays: delays}
}

// Call issues the backend call behind a single-target action
func (e *Executor) Call(ctx context.Context, k ActionKind, target string) (*types.ActionResult, error) {
	switch k {
	case Start:
		return e.API.StartContainer(ctx, target)
	case Stop:
		return e.API.StopContainer(ctx, target)
	case Restart:
		return e.API.RestartContainer(ctx, target)
	case CreateProfile:
		return e.API.CreateNewProfile(ctx, target)
	case StartProfile:
		return e.API.StartProfile(ctx, target)
	case Recreate:
		return e.API.RecreateProfile(ctx, target)
	case Delete:
		return e.API.DeleteProfile(ctx, target)
	case RemoveFiles:
		return e.API.DeleteProfileFiles(ctx, target)
	case StartAuth, Authenticate:
		return e.API.StartAuth(ctx, target)
	case ReAuth:
		return e.API.ReauthProfile(ctx, target)
	case StopAuth:
		return e.API.StopAuth(ctx)
	}
	return nil, errors.InvalidInput(k.String(), "a backend action")
}

// Run performs one action and interprets the answer
func (e *Executor) Run(ctx context.Context, k ActionKind, target string) Outcome {
	res, err := e.Call(ctx, k, target)
	o := e.Delays.Interpret(k, res, err)
	e.log(o, target)
	return o
}

// Save writes a profile configuration and runs the rest of SaveFlow. It
// returns the outcome of every step that ran; a failing step ends the flow.
func (e *Executor) Save(ctx context.Context, profile string, cfg types.Configuration, editMode bool) []Outcome {
	var outcomes []Outcome
	for _, step := range SaveFlow(editMode, e.Delays) {
		if step.Wait > 0 {
			if err := e.sleep(ctx, step.Wait); err != nil {
				outcomes = append(outcomes, e.Delays.Interpret(step.Action, nil, err))
				return outcomes
			}
		}

		var o Outcome
		if step.Action == SaveConfig {
			res, err := e.API.CreateCompose(ctx, profile, cfg)
			o = e.Delays.Interpret(SaveConfig, res, err)
			e.log(o, profile)
		} else {
			o = e.Run(ctx, step.Action, profile)
		}
		outcomes = append(outcomes, o)
		if !o.OK() {
			return outcomes
		}
	}
	return outcomes
}

// Final returns the outcome that decides the toast and refetch of a flow
func Final(outcomes []Outcome) Outcome {
	if len(outcomes) == 0 {
		return Outcome{Level: Error, Title: "Nothing to do"}
	}
	return outcomes[len(outcomes)-1]
}

func (e *Executor) sleep(ctx context.Context, d time.Duration) error {
	if e.Sleep != nil {
		return e.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (e *Executor) log(o Outcome, target string) {
	entry := logger.WithFields(logger.Fields{
		"action": o.Action.String(),
		"target": target,
		"level":  o.Level.String(),
	})
	if o.Level == Error {
		entry.WithField("message", o.Message).Warn("Action failed")
		return
	}
	entry.Info("Action completed")
}
