package tracker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/store"
)

// TrackingChange describes what ToggleTracking did.
type TrackingChange struct {
	Started bool
	Session model.Session
}

// Resume picks up a session left open by a previous run.
func (c *Controller) Resume(ctx context.Context) (*ActiveSession, error) {
	sess, err := c.store.GetActiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		c.setActive(nil)
		return nil, nil
	}

	active := &ActiveSession{Session: *sess, TaskName: c.taskName(ctx, sess.TaskID)}
	c.setActive(active)
	c.log.Info("resumed tracking", zap.String("session_id", sess.ID), zap.Int64("task_id", sess.TaskID))
	return active, nil
}

// Active returns the open session known to the controller, or nil.
func (c *Controller) Active() *ActiveSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	cp := *c.active
	return &cp
}

// StartTracking opens a session for a task. It fails with
// store.ErrSessionActive while another session is open.
func (c *Controller) StartTracking(ctx context.Context, taskID int64) (model.Session, error) {
	if taskID == 0 {
		return model.Session{}, ErrNoSelection
	}

	sess, err := c.store.StartSession(ctx, taskID, c.now())
	if err != nil {
		c.log.Warn("starting tracking", zap.Int64("task_id", taskID), zap.Error(err))
		return model.Session{}, err
	}

	c.setActive(&ActiveSession{Session: sess, TaskName: c.taskName(ctx, taskID)})
	c.log.Info("tracking started", zap.String("session_id", sess.ID), zap.Int64("task_id", taskID))
	return sess, nil
}

// StopTracking closes the open session and credits its time to the day
// totals.
func (c *Controller) StopTracking(ctx context.Context) (model.Session, error) {
	open, err := c.store.GetActiveSession(ctx)
	if err != nil {
		return model.Session{}, err
	}
	if open == nil {
		c.setActive(nil)
		return model.Session{}, ErrNotTracking
	}

	sess, err := c.store.StopSession(ctx, open.ID, c.now())
	if err != nil {
		c.log.Error("stopping tracking", zap.String("session_id", open.ID), zap.Error(err))
		return model.Session{}, err
	}

	c.setActive(nil)
	c.log.Info("tracking stopped",
		zap.String("session_id", sess.ID),
		zap.Int64("task_id", sess.TaskID),
		zap.Int64("duration_sec", sess.Duration),
	)
	return sess, nil
}

// ToggleTracking starts tracking taskID when nothing is tracked and stops
// it when taskID is the tracked task. Selecting a different task while one
// is tracked returns store.ErrSessionActive.
func (c *Controller) ToggleTracking(ctx context.Context, taskID int64) (TrackingChange, error) {
	open, err := c.store.GetActiveSession(ctx)
	if err != nil {
		return TrackingChange{}, err
	}

	if open == nil {
		sess, err := c.StartTracking(ctx, taskID)
		if err != nil {
			return TrackingChange{}, err
		}
		return TrackingChange{Started: true, Session: sess}, nil
	}

	if open.TaskID != taskID {
		return TrackingChange{}, fmt.Errorf("tracking %q: %w",
			c.taskName(ctx, open.TaskID), store.ErrSessionActive)
	}

	sess, err := c.StopTracking(ctx)
	if err != nil {
		return TrackingChange{}, err
	}
	return TrackingChange{Started: false, Session: sess}, nil
}

func (c *Controller) setActive(a *ActiveSession) {
	c.mu.Lock()
	c.active = a
	c.mu.Unlock()
}

// taskName looks in the current list first and falls back to the store.
func (c *Controller) taskName(ctx context.Context, id int64) string {
	c.mu.Lock()
	for _, t := range c.tasks {
		if t.ID == id {
			c.mu.Unlock()
			return t.Name
		}
	}
	c.mu.Unlock()

	task, err := c.store.GetTaskByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			c.log.Warn("looking up task name", zap.Int64("task_id", id), zap.Error(err))
		}
		return fmt.Sprintf("task %d", id)
	}
	return task.Name
}
