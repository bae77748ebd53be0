package composer

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"eventcreator/internal/domain"
)

// AddModule activates a new instance of t seeded with its default data.
func (c *Composer) AddModule(ctx context.Context, t domain.ModuleType) (domain.ModuleRef, error) {
	reg := c.modules.Registry(ctx)
	cfg, ok := reg.Config(t)
	if !ok {
		return domain.ModuleRef{}, fmt.Errorf("%w: %s", domain.ErrUnknownModule, t)
	}

	c.modMu.Lock()
	defer c.modMu.Unlock()
	if !reg.CanAdd(t, c.store.ActiveModules()) {
		return domain.ModuleRef{}, fmt.Errorf("%w: %s allows %d", domain.ErrModuleLimit, t, cfg.MaxInstances)
	}
	ref := domain.ModuleRef{Type: t, InstanceID: c.nextInstanceIDLocked()}
	c.store.AddModule(ref)
	c.store.SetModuleData(ref.Key(), cfg.DefaultData)
	return ref, nil
}

// nextInstanceIDLocked returns the current time in milliseconds, bumped
// past the previous id when two modules are added within the same
// millisecond.
func (c *Composer) nextInstanceIDLocked() string {
	ms := c.clock.Now().UnixMilli()
	if ms <= c.lastInstance {
		ms = c.lastInstance + 1
	}
	c.lastInstance = ms
	return strconv.FormatInt(ms, 10)
}

// RemoveModule deactivates ref. Its data is kept.
func (c *Composer) RemoveModule(ref domain.ModuleRef) {
	c.store.RemoveModule(ref)
}

// EnsureModuleData returns the data of ref, seeding it from the registry
// default when the module has none yet.
func (c *Composer) EnsureModuleData(ctx context.Context, ref domain.ModuleRef) (map[string]any, error) {
	c.modMu.Lock()
	defer c.modMu.Unlock()
	if d, ok := c.store.ModuleData(ref.Key()); ok {
		return d, nil
	}
	d, ok := c.modules.Registry(ctx).DefaultData(ref.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownModule, ref.Type)
	}
	c.store.SetModuleData(ref.Key(), d)
	return domain.CloneModuleData(d), nil
}

// ApplyModuleData writes data into the store at once and persists it in
// the background. If the persist fails and no newer update of the same
// module has been issued meanwhile, the previous value is restored and an
// error toast offers a retry. A persist cut short by Close keeps the local
// value. The returned channel yields the persist outcome after any
// rollback, then closes.
func (c *Composer) ApplyModuleData(ctx context.Context, ref domain.ModuleRef, data map[string]any) <-chan error {
	key := ref.Key()
	data = domain.CloneModuleData(data)

	c.modMu.Lock()
	prev, hadPrev := c.store.ModuleData(key)
	c.moduleSeq[key]++
	seq := c.moduleSeq[key]
	c.store.SetModuleData(key, data)
	c.modMu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.ctx, cancel)

	done := make(chan error, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)
		defer cancel()
		defer stop()

		_, err := c.api.SaveModuleData(ctx, key, data)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled) && c.ctx.Err() != nil:
			c.logger.InfoContext(ctx, "module save interrupted by shutdown, keeping local data", "module_id", key)
		default:
			c.rollback(ctx, ref, seq, data, prev, hadPrev, err)
		}
		done <- err
	}()
	return done
}

func (c *Composer) rollback(ctx context.Context, ref domain.ModuleRef, seq uint64, data, prev map[string]any, hadPrev bool, cause error) {
	key := ref.Key()
	c.modMu.Lock()
	if c.moduleSeq[key] != seq {
		c.modMu.Unlock()
		c.logger.WarnContext(ctx, "stale module save failed, keeping newer data", "module_id", key, "err", cause)
		return
	}
	if hadPrev {
		c.store.SetModuleData(key, prev)
	} else {
		c.store.ClearModuleData(key)
	}
	c.modMu.Unlock()

	c.logger.WarnContext(ctx, "module save failed, rolled back", "module_id", key, "err", cause)
	c.toast(domain.ToastError, userMessage(cause, "Failed to save module"), domain.Persistent(), c.retry(func(ctx context.Context) {
		c.ApplyModuleData(ctx, ref, data)
	}))
}
