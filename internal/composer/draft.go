package composer

import (
	"context"
	"errors"
	"fmt"

	"eventcreator/internal/domain"
	"eventcreator/internal/store"
)

// EditField sets one form field and clears its error.
func (c *Composer) EditField(field domain.Field, value string) error {
	patch, err := domain.PatchField(field, value)
	if err != nil {
		return err
	}
	c.store.MergeForm(patch)

	c.mu.Lock()
	delete(c.fieldErrors, field)
	c.mu.Unlock()
	return nil
}

func (c *Composer) onStoreChange(ch store.Change) {
	if ch.Has(store.ChangeForm | store.ChangeImages) {
		c.scheduleAutoSave()
	}
}

// scheduleAutoSave restarts the debounce window. Nothing is scheduled while
// the form is empty.
func (c *Composer) scheduleAutoSave() {
	hasContent := c.store.Form().HasAutoSaveContent()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopTimerLocked()
	if !hasContent {
		if c.saveState == SavePending {
			c.saveState = SaveIdle
		}
		return
	}
	gen := c.saveGen
	c.saveState = SavePending
	c.timer = c.clock.AfterFunc(c.delay, func() { c.autoSave(gen) })
}

// stopTimerLocked cancels the pending auto-save, if any.
func (c *Composer) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.saveGen++
}

func (c *Composer) autoSave(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.saveGen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.saveState = Saving
	c.wg.Add(1)
	c.mu.Unlock()
	defer c.wg.Done()

	c.saveInBackground(c.ctx, c.store.Payload())
}

// saveInBackground saves payload and, on failure, leaves a persistent toast
// whose Retry re-sends the same payload.
func (c *Composer) saveInBackground(ctx context.Context, payload domain.EventPayload) {
	resp, err := c.api.SaveDraft(ctx, payload)
	if err != nil {
		c.finishSave(SaveFailed)
		c.logger.ErrorContext(ctx, "auto-save failed", "draft_id", payload.DraftID, "err", err)
		c.toast(domain.ToastError, "Failed to save draft", domain.Persistent(), c.retry(func(ctx context.Context) {
			c.setSaving()
			c.saveInBackground(ctx, payload)
		}))
		return
	}
	c.recordSaved(resp)
}

// SaveNow saves the current form immediately, cancelling any pending
// auto-save.
func (c *Composer) SaveNow(ctx context.Context) error {
	c.mu.Lock()
	c.stopTimerLocked()
	c.saveState = SaveIdle
	c.mu.Unlock()

	if !c.store.Form().HasContent() {
		c.toast(domain.ToastWarning, "Please enter some information before saving", nil, nil)
		return domain.ErrNothingToSave
	}

	c.setSaving()
	resp, err := c.api.SaveDraft(ctx, c.store.Payload())
	if err != nil {
		c.finishSave(SaveFailed)
		c.logger.ErrorContext(ctx, "draft save failed", "err", err)
		c.toast(domain.ToastError, "Failed to save draft. Please try again.", nil, nil)
		return err
	}
	c.recordSaved(resp)
	c.toast(domain.ToastSuccess, "Draft saved successfully!", nil, nil)
	return nil
}

func (c *Composer) setSaving() {
	c.mu.Lock()
	c.saveState = Saving
	c.mu.Unlock()
}

// finishSave settles a save unless a newer edit has already moved the state
// machine on.
func (c *Composer) finishSave(s SaveState) {
	c.mu.Lock()
	if c.saveState == Saving {
		c.saveState = s
	}
	c.mu.Unlock()
}

func (c *Composer) recordSaved(resp *domain.DraftSaved) {
	if resp.DraftID != "" {
		c.store.SetDraftID(resp.DraftID)
	}
	c.mu.Lock()
	c.lastSaved = c.clock.Now()
	c.mu.Unlock()
	c.finishSave(SaveIdle)
	c.logger.Debug("draft saved", "draft_id", resp.DraftID)
}

// ResumeDraft reloads the stored draft from the backend into the form.
// A draft the backend no longer knows is forgotten. It returns nil, nil
// when no draft id is stored.
func (c *Composer) ResumeDraft(ctx context.Context) (*domain.Draft, error) {
	id := c.store.DraftID()
	if id == "" {
		return nil, nil
	}

	d, err := c.api.GetDraft(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		c.store.SetDraftID("")
		c.toast(domain.ToastInfo, "Your previous draft is no longer available", nil, nil)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("resume draft: %w", err)
	}

	c.store.MergeForm(fullPatch(d.EventForm))
	if d.FlyerImageURL != "" {
		c.store.SetFlyerImage(&domain.ImageRef{URL: d.FlyerImageURL})
	}
	if d.BackgroundImageURL != "" {
		c.store.SetBackgroundImage(&domain.ImageRef{URL: d.BackgroundImageURL})
	}

	// the form now matches the server copy
	c.mu.Lock()
	c.stopTimerLocked()
	c.saveState = SaveIdle
	c.mu.Unlock()
	return d, nil
}

// Discard drops the form, images, draft id and modules.
func (c *Composer) Discard() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.saveState = SaveIdle
	c.fieldErrors = map[domain.Field]string{}
	c.mu.Unlock()

	c.store.Reset()
}

func fullPatch(f domain.EventForm) domain.FormPatch {
	return domain.FormPatch{
		Title:         &f.Title,
		PhoneNumber:   &f.PhoneNumber,
		DateTime:      &f.DateTime,
		Location:      &f.Location,
		CostPerPerson: &f.CostPerPerson,
		Description:   &f.Description,
	}
}
