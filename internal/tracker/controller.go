// Package tracker mediates between the task store and whatever displays
// the task list: it owns the in-memory list, the active filter, and the
// live tracking session.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/store"
)

var (
	// ErrNoSelection is returned when a delete is requested without a task
	// from the current list.
	ErrNoSelection = errors.New("no task selected")

	// ErrNotTracking is returned when stopping while no session is open.
	ErrNotTracking = errors.New("no task is being tracked")
)

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithWeekStart sets the first day of the This Week filter.
func WithWeekStart(d time.Weekday) Option {
	return func(c *Controller) { c.weekStart = d }
}

// Controller loads tasks from the store into an ordered list, applies the
// active filter, and forwards add/delete/track intents to the store.
// Every mutation reloads the list so it never drifts from the store.
type Controller struct {
	store     store.Store
	log       *zap.Logger
	now       func() time.Time
	weekStart time.Weekday

	mu     sync.Mutex
	filter model.Filter
	tasks  []model.Task
	active *ActiveSession
}

// ActiveSession is the open tracking session with its task's name.
type ActiveSession struct {
	Session  model.Session
	TaskName string
}

// PendingDelete is a delete request awaiting the user's confirmation.
// Only PrepareDelete produces a usable value.
type PendingDelete struct {
	task model.Task
}

// Task returns the task that would be deleted.
func (p PendingDelete) Task() model.Task { return p.task }

// New creates a controller over s. A nil logger disables logging.
func New(s store.Store, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		store:     s,
		log:       logger,
		now:       time.Now,
		weekStart: time.Monday,
		filter:    model.AllTasks,
		tasks:     []model.Task{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh reloads the list from the store using f and makes f the active
// filter. It returns a copy of the new list.
func (c *Controller) Refresh(ctx context.Context, f model.Filter) ([]model.Task, error) {
	tasks, err := c.query(ctx, f)
	if err != nil {
		c.log.Error("refreshing task list", zap.String("filter", f.Label()), zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.filter = f
	c.tasks = tasks
	c.mu.Unlock()

	c.log.Debug("task list refreshed", zap.String("filter", f.Label()), zap.Int("count", len(tasks)))
	return cloneTasks(tasks), nil
}

// Reload refreshes the list with the current filter.
func (c *Controller) Reload(ctx context.Context) ([]model.Task, error) {
	return c.Refresh(ctx, c.Filter())
}

// Tasks returns a copy of the current list.
func (c *Controller) Tasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneTasks(c.tasks)
}

// Filter returns the active filter.
func (c *Controller) Filter() model.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Categories returns the known categories for the category prompt.
func (c *Controller) Categories(ctx context.Context) ([]string, error) {
	return c.store.GetCategories(ctx)
}

func (c *Controller) query(ctx context.Context, f model.Filter) ([]model.Task, error) {
	switch f.Kind {
	case model.FilterAll:
		return c.store.ListTasks(ctx)
	case model.FilterCategory:
		return c.store.ListTasksByCategory(ctx, f.Category)
	case model.FilterToday, model.FilterThisWeek:
		since, _ := f.Since(c.now(), c.weekStart)
		return c.store.GetTasks(ctx, store.TaskFilter{CreatedSince: &since})
	default:
		return nil, fmt.Errorf("unknown filter %s", f.Kind)
	}
}

// Add validates raw form input, stores the task, and reloads the full
// list. Invalid input returns a *model.ValidationError and stores nothing.
func (c *Controller) Add(ctx context.Context, fields model.TaskFields) (model.Task, error) {
	task, err := model.ParseTaskFields(fields)
	if err != nil {
		c.log.Warn("rejected task input", zap.Error(err))
		return model.Task{}, err
	}
	task.CreatedAt = c.now()

	id, err := c.store.CreateTask(ctx, task)
	if err != nil {
		c.log.Error("creating task", zap.String("name", task.Name), zap.Error(err))
		return model.Task{}, err
	}
	task.ID = id

	c.log.Info("task added",
		zap.Int64("task_id", id),
		zap.Int("time_spent", task.TimeSpent),
		zap.String("category", task.Category),
	)

	if _, err := c.Refresh(ctx, model.AllTasks); err != nil {
		return task, err
	}
	return task, nil
}

// PrepareDelete starts deleting a task from the current list. The caller
// must obtain the user's confirmation before passing the result to
// ConfirmDelete.
func (c *Controller) PrepareDelete(id int64) (PendingDelete, error) {
	if id == 0 {
		return PendingDelete{}, ErrNoSelection
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return PendingDelete{task: t}, nil
		}
	}
	return PendingDelete{}, ErrNoSelection
}

// ConfirmDelete removes a confirmed task and reloads the list with the
// current filter. An open session on the task is stopped first so its
// time still reaches the day totals.
func (c *Controller) ConfirmDelete(ctx context.Context, p PendingDelete) error {
	if p.task.ID == 0 {
		return ErrNoSelection
	}

	active, err := c.store.GetActiveSession(ctx)
	if err != nil {
		return err
	}
	if active != nil && active.TaskID == p.task.ID {
		if _, err := c.StopTracking(ctx); err != nil {
			return fmt.Errorf("stopping tracking before delete: %w", err)
		}
	}

	if err := c.store.DeleteTask(ctx, p.task.ID); err != nil {
		c.log.Error("deleting task", zap.Int64("task_id", p.task.ID), zap.Error(err))
		return err
	}
	c.log.Info("task deleted", zap.Int64("task_id", p.task.ID), zap.String("name", p.task.Name))

	_, err = c.Reload(ctx)
	return err
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}
