package composer

import (
	"context"
	"fmt"
	"time"

	"eventcreator/internal/domain"
)

const largeFileToastDuration = 4 * time.Second

// UploadImage uploads an image into the flyer or background slot. A flyer
// uploaded while no background is set also becomes the background.
func (c *Composer) UploadImage(ctx context.Context, kind domain.ImageKind, name string, data []byte) (*domain.ImageRef, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown image kind %q", domain.ErrInvalidUpload, kind)
	}
	if len(data) > domain.MaxUploadSize {
		c.toast(domain.ToastWarning, "File is larger than 5MB. Upload may take longer.", domain.For(largeFileToastDuration), nil)
	}

	res, err := c.api.UploadImage(ctx, kind, name, data)
	if err != nil {
		c.logger.ErrorContext(ctx, "image upload failed", "kind", kind, "name", name, "err", err)
		c.toast(domain.ToastError, userMessage(err, "Failed to upload "+string(kind)), domain.Persistent(),
			c.retry(func(ctx context.Context) { _, _ = c.UploadImage(ctx, kind, name, data) }))
		return nil, err
	}

	ref := res.ImageRef()
	c.imgMu.Lock()
	switch kind {
	case domain.ImageFlyer:
		c.store.SetFlyerImage(&ref)
		if c.store.BackgroundImage() == nil {
			c.store.SetBackgroundImage(&ref)
		}
		c.toast(domain.ToastSuccess, "Flyer uploaded successfully", nil, nil)
	case domain.ImageBackground:
		c.store.SetBackgroundImage(&ref)
		c.toast(domain.ToastSuccess, "Background uploaded successfully", nil, nil)
	}
	c.imgMu.Unlock()
	return &ref, nil
}
