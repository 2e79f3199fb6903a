package command

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pixelflip/scanboard/internal/scanner"
)

// Dispatcher sends one-shot run commands. Outcomes are logged only; local
// state is never touched, the next status poll reports what happened.
type Dispatcher struct {
	ctl scanner.Controller
	log logrus.FieldLogger
}

// New returns a Dispatcher for ctl.
func New(ctl scanner.Controller, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{ctl: ctl, log: log.WithField("component", "command")}
}

// Start asks the backend to begin scanning.
func (d *Dispatcher) Start(ctx context.Context) error {
	return d.send(ctx, "start", d.ctl.Start)
}

// Stop asks the backend to halt scanning.
func (d *Dispatcher) Stop(ctx context.Context) error {
	return d.send(ctx, "stop", d.ctl.Stop)
}

func (d *Dispatcher) send(ctx context.Context, name string, call func(context.Context) (scanner.Ack, error)) error {
	entry := d.log.WithField("command", name)
	ack, err := call(ctx)
	if err != nil {
		entry.WithError(err).Warn("command failed")
		return err
	}
	entry.WithFields(logrus.Fields{
		"success": ack.Success,
		"status":  ack.Status,
	}).Info("command sent")
	return nil
}
