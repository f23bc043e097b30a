package galaxypdf

import (
	"time"

	"github.com/lvillar/galaxypdf/feedback"
)

// Option is a functional option for configuring a new Workspace via New.
type Option func(*workspaceConfig)

type workspaceConfig struct {
	processor        Processor
	saver            Saver
	notifier         *feedback.Notifier
	feedbackDuration time.Duration
	now              func() time.Time
}

// WithProcessor sets the backend that builds merge and split output.
// Defaults to SimulatedProcessor.
func WithProcessor(p Processor) Option {
	return func(c *workspaceConfig) {
		c.processor = p
	}
}

// WithSaver sets where finished output is delivered.
func WithSaver(s Saver) Option {
	return func(c *workspaceConfig) {
		c.saver = s
	}
}

// WithNotifier makes the workspace report feedback through an existing notifier,
// for example one shared with a live event stream.
func WithNotifier(n *feedback.Notifier) Option {
	return func(c *workspaceConfig) {
		c.notifier = n
	}
}

// WithFeedbackDuration sets how long a feedback message stays visible.
// It is ignored when WithNotifier is given.
func WithFeedbackDuration(d time.Duration) Option {
	return func(c *workspaceConfig) {
		c.feedbackDuration = d
	}
}

// WithClock sets the time source used to seed staged file IDs.
func WithClock(now func() time.Time) Option {
	return func(c *workspaceConfig) {
		c.now = now
	}
}

// New creates an empty workspace in merge mode.
//
// Example:
//
//	ws := galaxypdf.New(
//	    galaxypdf.WithProcessor(pageops.NewProcessor()),
//	    galaxypdf.WithSaver(session),
//	)
func New(opts ...Option) *Workspace {
	cfg := &workspaceConfig{
		processor:        SimulatedProcessor{},
		saver:            discardSaver{},
		feedbackDuration: feedback.DefaultDuration,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.notifier == nil {
		cfg.notifier = feedback.New(cfg.feedbackDuration)
	}
	return &Workspace{
		mode:      ModeMerge,
		dragFrom:  -1,
		dragTo:    -1,
		processor: cfg.processor,
		saver:     cfg.saver,
		feedback:  cfg.notifier,
		now:       cfg.now,
	}
}
