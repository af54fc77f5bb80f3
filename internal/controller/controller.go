// Package controller owns the lifecycle of one section form: load the
// current configuration, track edits against the server baseline, gate the
// save action on the diff, and replace the baseline after a successful
// apply. A controller is created when a section is entered and discarded
// when it is left; baselines never outlive it.
package controller

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/gatewave/gatecon/internal/logging"
	"github.com/gatewave/gatecon/internal/section"
)

// Client is the control-plane surface the controller needs.
type Client interface {
	SectionInfo(ctx context.Context, sec string) (string, error)
	Apply(ctx context.Context, sec string, form url.Values) error
}

// ValidationError marks a save rejected locally before any request was made.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Controller drives one section.
//
// Load and Save are not mutually excluded: a save completing after a
// concurrent reload replaces the reloaded baseline with the submitted
// payload. The console disables its own controls while an operation is in
// flight, which is the only serialization a single operator needs.
type Controller struct {
	id     section.ID
	client Client
	log    *zap.Logger

	remember func(section.ID, map[string]string)

	baseline    section.Model
	hasBaseline bool
	current     section.Model
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger overrides the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithRememberFunc registers a callback invoked after a successful save of a
// persistable section, with the submitted canonical field map.
func WithRememberFunc(fn func(section.ID, map[string]string)) Option {
	return func(c *Controller) { c.remember = fn }
}

// New creates a controller for a section. The model starts as the section's
// defaulted empty form; call Load to fetch the appliance's state.
func New(id section.ID, cl Client, opts ...Option) *Controller {
	c := &Controller{
		id:      id,
		client:  cl,
		log:     logging.GetLogger(),
		current: section.ApplyDefaults(section.Default(id)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the section this controller drives.
func (c *Controller) ID() section.ID { return c.id }

// Model returns the current (edited) field set.
func (c *Controller) Model() section.Model { return c.current }

// Baseline returns the server baseline, if one was established.
func (c *Controller) Baseline() (section.Model, bool) {
	return c.baseline, c.hasBaseline
}

// Load fetches the section's configuration and seeds the form.
//
// On success the extracted model (with render defaults applied) becomes the
// current field set, and also the baseline when at least one recognized
// field was present and non-empty. On failure, whether a transport error or
// a payload that yields no data, the form falls back to defaults with no
// baseline, so the operator can still fill it in and save: with no baseline
// the diff gate always passes.
func (c *Controller) Load(ctx context.Context) (section.Model, error) {
	body, err := c.client.SectionInfo(ctx, string(c.id))
	if err != nil {
		c.log.Debug("section load failed",
			zap.String("section", string(c.id)), zap.Error(err))
		c.baseline = nil
		c.hasBaseline = false
		c.current = section.ApplyDefaults(section.Default(c.id))
		return c.current, err
	}

	extracted := section.Parse(c.id, body)
	seeded := section.ApplyDefaults(extracted)

	c.current = seeded
	if extracted.HasData() {
		c.baseline = seeded
		c.hasBaseline = true
	} else {
		c.baseline = nil
		c.hasBaseline = false
	}

	c.log.Debug("section loaded",
		zap.String("section", string(c.id)),
		zap.Bool("baseline", c.hasBaseline))
	return c.current, nil
}

// SetModel replaces the current field set with an edited model.
func (c *Controller) SetModel(m section.Model) error {
	if m == nil || m.Section() != c.id {
		return errors.New("model belongs to a different section")
	}
	c.current = m
	return nil
}

// Dirty reports whether the current field set differs from the baseline
// under the section's diff rules. Without a baseline everything counts as
// a difference.
func (c *Controller) Dirty() bool {
	if !c.hasBaseline {
		return true
	}
	return c.current.DiffersFrom(c.baseline)
}

// CanSave reports whether the save action is available: something to save
// and not offline. Validation runs at save time, not here, so the operator
// sees the message for the field they actually got wrong.
func (c *Controller) CanSave(offline bool) bool {
	return !offline && c.Dirty()
}

// Validate applies the section's validators to the current field set.
func (c *Controller) Validate() error {
	return c.current.Validate()
}

// Save validates and applies the current field set.
//
// On success the baseline is replaced wholesale with the submitted payload:
// the appliance does not echo the applied config (and never echoes
// credentials), so the payload we sent is the best record of server state.
// On failure the baseline is untouched and the save stays available.
func (c *Controller) Save(ctx context.Context) error {
	if err := c.current.Validate(); err != nil {
		return &ValidationError{msg: err.Error()}
	}

	submitted := c.current
	if err := c.client.Apply(ctx, string(c.id), submitted.FormValues()); err != nil {
		c.log.Debug("section apply failed",
			zap.String("section", string(c.id)), zap.Error(err))
		return err
	}

	c.baseline = submitted
	c.hasBaseline = true

	if c.remember != nil && c.id.Persistable() {
		c.remember(c.id, submitted.FieldMap())
	}

	c.log.Info("section applied", zap.String("section", string(c.id)))
	return nil
}
