package dashboard

import (
	"fmt"
	"strings"
	"time"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/types"
)

// Level grades how a completed action is presented
type Level int

const (
	Success Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Outcome is the interpreted result of an action
type Outcome struct {
	Action  ActionKind
	Level   Level
	Title   string
	Message string
	Details []string
	Result  *types.ActionResult

	// Refetch is set when listings changed and must be fetched again after Delay
	Refetch bool
	Delay   time.Duration
}

// OK reports whether the action went through, possibly with errors
func (o Outcome) OK() bool {
	return o.Level != Error
}

// Text renders the outcome on a single line
func (o Outcome) Text() string {
	if o.Message == "" {
		return o.Title
	}
	return o.Title + ": " + o.Message
}

// expectedStatus lists the discriminators each action answers with on success
var expectedStatus = map[ActionKind][]string{
	Start:         {types.StatusStarted},
	Stop:          {types.StatusStopped},
	Restart:       {types.StatusRestarted},
	Delete:        {types.StatusDeleted, types.StatusPartial},
	RemoveFiles:   {types.StatusDeleted, types.StatusPartial},
	CreateProfile: {types.StatusCreated},
	SaveConfig:    {types.StatusCreated},
	StartProfile:  {types.StatusStarted},
	Recreate:      {types.StatusRecreated},
	StartAuth:     {types.StatusStarted},
	ReAuth:        {types.StatusStarted},
	Authenticate:  {types.StatusStarted},
	StopAuth:      {types.StatusStopped},
}

// Delays decides how long the backend is given to settle after an action
type Delays struct {
	Settle      time.Duration
	ShortSettle time.Duration
}

// DefaultDelays returns the stock settle delays
func DefaultDelays() Delays {
	return Delays{
		Settle:      constants.DefaultSettleDelay,
		ShortSettle: constants.DefaultShortSettleDelay,
	}
}

// For returns the settle delay that follows action k
func (d Delays) For(k ActionKind) time.Duration {
	switch k {
	case CreateProfile, SaveConfig:
		return d.ShortSettle
	}
	return d.Settle
}

// Interpret turns a backend answer into an Outcome using the default delays
func Interpret(k ActionKind, res *types.ActionResult, err error) Outcome {
	return DefaultDelays().Interpret(k, res, err)
}

// Interpret turns a backend answer into an Outcome
func (d Delays) Interpret(k ActionKind, res *types.ActionResult, err error) Outcome {
	o := Outcome{Action: k, Result: res}

	if err != nil {
		o.Level = Error
		o.Title = failedTitle(k)
		o.Message = err.Error()
		return o
	}

	accepted := append([]string{types.StatusSuccess, types.StatusOK}, expectedStatus[k]...)
	if !res.StatusIs(accepted...) {
		o.Level = Error
		o.Title = failedTitle(k)
		o.Message = res.ErrorText()
		if o.Message == "" && res != nil && res.Status != "" {
			o.Message = fmt.Sprintf("unexpected status %q", res.Status)
		}
		return o
	}

	o.Refetch = true
	o.Delay = d.For(k)
	o.Details = append(append([]string{}, res.Success...), res.Errors...)

	if res.StatusIs(types.StatusPartial) || len(res.Errors) > 0 {
		o.Level = Warning
		o.Title = fmt.Sprintf("%s completed with errors", k.Label())
		o.Message = strings.Join(res.Errors, "; ")
		return o
	}

	o.Level = Success
	o.Title = successTitle(k, res)
	o.Message = res.Message
	return o
}

func failedTitle(k ActionKind) string {
	return fmt.Sprintf("%s failed", k.Label())
}

func successTitle(k ActionKind, res *types.ActionResult) string {
	switch k {
	case Start, StartProfile:
		return "Started"
	case Stop:
		return "Stopped"
	case Restart:
		return "Restarted"
	case Delete:
		return "Profile deleted"
	case RemoveFiles:
		return "Profile files removed"
	case CreateProfile:
		if res.ProfileName != "" {
			return fmt.Sprintf("Created %s (#%d)", res.ProfileName, int(res.ProfileNum))
		}
		return "Profile created"
	case SaveConfig:
		return "Configuration saved"
	case Recreate:
		return "Container recreated"
	case StartAuth, ReAuth, Authenticate:
		return "Authentication started"
	case StopAuth:
		return "Credentials saved"
	}
	return k.Label() + " succeeded"
}
