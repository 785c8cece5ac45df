package event

import (
	"errors"
	"fmt"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

// ErrNoHandler reports an event with no registered handler.
var ErrNoHandler = errors.New(messages.EventNoHandler)

// RunFinishedHandler handles the end of a host run.
type RunFinishedHandler func(RunFinished) error

// PackageHandler handles one package event.
type PackageHandler func(PackageEvent) error

// Dispatcher delivers events to registered handlers synchronously, in registration order.
type Dispatcher struct {
	runFinished []RunFinishedHandler
	pkg         map[Name][]PackageHandler
}

// NewDispatcher returns a dispatcher with no handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{pkg: map[Name][]PackageHandler{}}
}

// OnRunFinished registers h for post-update-cmd and post-install-cmd.
func (d *Dispatcher) OnRunFinished(h RunFinishedHandler) {
	d.runFinished = append(d.runFinished, h)
}

// OnPackage registers h for the package event name.
func (d *Dispatcher) OnPackage(name Name, h PackageHandler) {
	d.pkg[name] = append(d.pkg[name], h)
}

// Dispatch delivers one event and returns ErrNoHandler when nothing is registered
// for it. Every handler runs even when an earlier one fails; their errors are joined.
func (d *Dispatcher) Dispatch(env Envelope) error {
	if env.IsRunFinished() {
		if len(d.runFinished) == 0 {
			return ErrNoHandler
		}
		var errs []error
		for _, h := range d.runFinished {
			errs = append(errs, h(RunFinished{Name: env.Event}))
		}
		return errors.Join(errs...)
	}

	handlers := d.pkg[env.Event]
	if len(handlers) == 0 {
		return ErrNoHandler
	}
	payload, err := env.PackageEvent()
	if err != nil {
		return err
	}
	var errs []error
	for _, h := range handlers {
		errs = append(errs, h(payload))
	}
	return errors.Join(errs...)
}

// Failure is an event whose delivery failed.
type Failure struct {
	Event Name
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf(messages.EventHandlerFailedFmt, f.Event, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// DispatchAll delivers events in order. A failing event does not stop later ones;
// the returned slice holds one Failure per failed event.
func (d *Dispatcher) DispatchAll(envs []Envelope) []Failure {
	var failures []Failure
	for _, env := range envs {
		if err := d.Dispatch(env); err != nil {
			failures = append(failures, Failure{Event: env.Event, Err: err})
		}
	}
	return failures
}
