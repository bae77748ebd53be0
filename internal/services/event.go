package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"eventcreator/internal/domain"

	"github.com/google/uuid"
)

// MinDescriptionLength is the description length below which validation warns.
const MinDescriptionLength = 20

// dateTimeLayouts are the accepted dateTime formats, most specific last.
var dateTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339}

// EventServiceConfig holds the publish settings of the event service.
type EventServiceConfig struct {
	// EventBaseURL prefixes the public URL of each published event.
	EventBaseURL string
	// NotifyEmail receives a receipt for every published event; empty disables it.
	NotifyEmail string
	Timeout     time.Duration
}

type eventService struct {
	events         domain.EventRepository
	drafts         domain.DraftRepository
	stream         domain.EventStream
	emailService   domain.EmailService
	cfg            EventServiceConfig
	logger         *slog.Logger
	now            func() time.Time
	location       *time.Location
	contextTimeout time.Duration
}

// NewEventService returns an EventService. stream and emailService may be nil.
func NewEventService(events domain.EventRepository,
	drafts domain.DraftRepository,
	stream domain.EventStream,
	emailService domain.EmailService,
	cfg EventServiceConfig,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		events:         events,
		drafts:         drafts,
		stream:         stream,
		emailService:   emailService,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
		location:       time.Local,
		contextTimeout: orDefaultTimeout(cfg.Timeout),
	}
}

// Validate checks a form. Errors block publishing; warnings are advisory.
func (s *eventService) Validate(_ context.Context, form domain.EventForm) domain.ValidationResult {
	res := domain.ValidationResult{
		Errors:   []domain.ValidationError{},
		Warnings: []domain.ValidationError{},
	}
	addErr := func(field domain.Field, code, msg string) {
		res.Errors = append(res.Errors, domain.ValidationError{Field: string(field), Message: msg, Code: code})
	}
	warn := func(field domain.Field, msg string) {
		res.Warnings = append(res.Warnings, domain.ValidationError{Field: string(field), Message: msg})
	}

	if strings.TrimSpace(form.Title) == "" {
		addErr(domain.FieldTitle, domain.CodeRequired, "Event title is required")
	}

	if dt := strings.TrimSpace(form.DateTime); dt == "" {
		addErr(domain.FieldDateTime, domain.CodeRequired, "Date and time is required")
	} else if at, ok := s.parseDateTime(dt); !ok {
		addErr(domain.FieldDateTime, domain.CodeInvalidDate, "Date and time is not a valid date")
	} else if !at.After(s.now()) {
		addErr(domain.FieldDateTime, domain.CodePastDate, "Date and time must be in the future")
	}

	if c := strings.TrimSpace(form.CostPerPerson); c != "" {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			addErr(domain.FieldCostPerPerson, domain.CodeInvalidValue, "Cost per person must be a non-negative number")
		}
	}

	if strings.TrimSpace(form.Location) == "" {
		warn(domain.FieldLocation, "Location not specified")
	}
	switch desc := strings.TrimSpace(form.Description); {
	case desc == "":
		warn(domain.FieldDescription, "Description not provided")
	case utf8.RuneCountInString(desc) < MinDescriptionLength:
		warn(domain.FieldDescription, fmt.Sprintf("Description is shorter than %d characters", MinDescriptionLength))
	}
	if strings.TrimSpace(form.PhoneNumber) == "" {
		warn(domain.FieldPhoneNumber, "Phone number not provided (optional)")
	}

	res.Valid = len(res.Errors) == 0
	return res
}

func (s *eventService) parseDateTime(v string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, s.location); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Publish stores the event, deletes the draft it came from and announces it.
// Only title and dateTime are required; the rest is advisory.
func (s *eventService) Publish(ctx context.Context, payload domain.EventPayload) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(payload.Title) == "" {
		return nil, domain.ValidationError{Field: string(domain.FieldTitle), Message: "Event title is required", Code: domain.CodeRequired}
	}
	if strings.TrimSpace(payload.DateTime) == "" {
		return nil, domain.ValidationError{Field: string(domain.FieldDateTime), Message: "Date and time is required", Code: domain.CodeRequired}
	}

	id := "event_" + uuid.NewString()
	event := &domain.Event{
		EventPayload: payload,
		EventID:      id,
		EventURL:     strings.TrimRight(s.cfg.EventBaseURL, "/") + "/" + id,
		PublishedAt:  s.now().UTC(),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	if payload.DraftID != "" {
		if err := s.drafts.Delete(ctx, payload.DraftID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "published draft not deleted", "draft_id", payload.DraftID, "err", err)
		}
	}
	if s.stream != nil {
		if err := s.stream.Announce(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "event announcement failed", "event_id", id, "err", err)
		}
	}
	if s.emailService != nil && s.cfg.NotifyEmail != "" {
		err := s.emailService.SendEventPublished(ctx, &domain.EventPublishedEmailData{
			To:          s.cfg.NotifyEmail,
			Title:       event.Title,
			DateTime:    event.DateTime,
			Location:    event.Location,
			EventURL:    event.EventURL,
			PublishedAt: event.PublishedAt,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "event published email failed", "event_id", id, "err", err)
		}
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.events.GetByID(ctx, eventID)
}
