package composer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventcreator/internal/domain"
)

const publishedToastDuration = 5 * time.Second

// GoLive runs the publish workflow: local required-field checks, remote
// validation, user confirmation, then publish. Each failed step surfaces a
// toast and stops the workflow.
func (c *Composer) GoLive(ctx context.Context) (*domain.Published, error) {
	c.mu.Lock()
	switch c.publishState {
	case Validating, Confirming, Publishing:
		c.mu.Unlock()
		return nil, ErrPublishInProgress
	}
	c.publishState = Validating
	c.mu.Unlock()

	form := c.store.Form()
	if errs := requiredFieldErrors(form); len(errs) > 0 {
		c.setFieldErrors(errs)
		c.setPublishState(PublishIdle)
		c.toast(domain.ToastError, "Please fill in all required fields", nil, nil)
		return nil, joinValidation(errs)
	}

	res, err := c.api.ValidateEvent(ctx, form)
	if err != nil {
		c.setPublishState(PublishIdle)
		c.logger.ErrorContext(ctx, "validation request failed", "err", err)
		c.toast(domain.ToastError, userMessage(err, "Validation failed"), nil, nil)
		return nil, err
	}
	if !res.Valid {
		c.setFieldErrors(res.Errors)
		c.setPublishState(PublishIdle)
		c.toast(domain.ToastError, "Please fix validation errors before publishing", nil, nil)
		return nil, joinValidation(res.Errors)
	}
	if len(res.Warnings) > 0 {
		msgs := make([]string, len(res.Warnings))
		for i, w := range res.Warnings {
			msgs[i] = w.Message
		}
		c.toast(domain.ToastWarning, strings.Join(msgs, ", "), domain.For(publishedToastDuration), nil)
	}

	c.setPublishState(Confirming)
	if !c.confirmer.Confirm(ctx, PublishPrompt) {
		c.setPublishState(PublishIdle)
		return nil, domain.ErrPublishCancelled
	}

	return c.publish(ctx, c.store.Payload())
}

// publish sends payload. On failure it leaves a persistent toast whose
// Retry re-sends the same payload.
func (c *Composer) publish(ctx context.Context, payload domain.EventPayload) (*domain.Published, error) {
	c.setPublishState(Publishing)
	res, err := c.api.PublishEvent(ctx, payload)
	if err != nil {
		c.setPublishState(PublishFailed)
		c.logger.ErrorContext(ctx, "publish failed", "draft_id", payload.DraftID, "err", err)
		c.toast(domain.ToastError, userMessage(err, "Failed to publish event"), domain.Persistent(),
			c.retry(func(ctx context.Context) { _, _ = c.publish(ctx, payload) }))
		return nil, err
	}

	c.store.SetDraftID("")
	c.mu.Lock()
	c.publishState = Published
	p := *res
	c.lastPublished = &p
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "event published", "event_id", res.EventID, "event_url", res.EventURL)
	c.toast(domain.ToastSuccess, fmt.Sprintf("Event published successfully! URL: %s", res.EventURL), domain.For(publishedToastDuration), nil)
	return res, nil
}

func requiredFieldErrors(f domain.EventForm) []domain.ValidationError {
	var errs []domain.ValidationError
	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, domain.ValidationError{Field: string(domain.FieldTitle), Message: "Event title is required", Code: domain.CodeRequired})
	}
	if strings.TrimSpace(f.DateTime) == "" {
		errs = append(errs, domain.ValidationError{Field: string(domain.FieldDateTime), Message: "Date and time is required", Code: domain.CodeRequired})
	}
	return errs
}

func joinValidation(verrs []domain.ValidationError) error {
	if len(verrs) == 0 {
		return domain.ErrValidation
	}
	errs := make([]error, len(verrs))
	for i, v := range verrs {
		errs[i] = v
	}
	return errors.Join(errs...)
}

// setFieldErrors replaces the field errors with verrs.
func (c *Composer) setFieldErrors(verrs []domain.ValidationError) {
	m := make(map[domain.Field]string, len(verrs))
	for _, v := range verrs {
		m[domain.Field(v.Field)] = v.Message
	}
	c.mu.Lock()
	c.fieldErrors = m
	c.mu.Unlock()
}

func (c *Composer) setPublishState(s PublishState) {
	c.mu.Lock()
	c.publishState = s
	c.mu.Unlock()
}
