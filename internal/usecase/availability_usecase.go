package usecase

import (
	"context"
	"fmt"
	"time"

	"clinic-appointment/internal/converter"
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/service"
	"clinic-appointment/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidDateRange = apperror.Validation("end date must not be before start date")
	ErrDateRequired     = apperror.Validation("date is required")
	ErrTimeRequired     = apperror.Validation("time is required")
)

type AvailabilityUsecase interface {
	GetSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotsResponse, error)
	CheckSlot(ctx context.Context, doctorID uuid.UUID, date, at string) (*dto.SlotCheckResponse, error)
	GetAvailabilityRange(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) (*dto.AvailabilityRangeResponse, error)
}

type availabilityUsecase struct {
	log                 *logrus.Logger
	availabilityService *service.AvailabilityService
	defaultRangeDays    int
	maxRangeDays        int
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	availabilityService *service.AvailabilityService,
	defaultRangeDays int,
	maxRangeDays int,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:                 log,
		availabilityService: availabilityService,
		defaultRangeDays:    defaultRangeDays,
		maxRangeDays:        maxRangeDays,
	}
}

func (u *availabilityUsecase) GetSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotsResponse, error) {
	if date == "" {
		return nil, ErrDateRequired
	}
	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	slots, err := u.availabilityService.AvailableSlots(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	return &dto.SlotsResponse{
		DoctorID: doctorID,
		Date:     day.Format(entity.DateLayout),
		Slots:    converter.ClockTimesToStrings(slots),
	}, nil
}

// CheckSlot always reads the booking ledger, never the slot cache.
func (u *availabilityUsecase) CheckSlot(ctx context.Context, doctorID uuid.UUID, date, at string) (*dto.SlotCheckResponse, error) {
	if date == "" {
		return nil, ErrDateRequired
	}
	if at == "" {
		return nil, ErrTimeRequired
	}
	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	clock, err := entity.ParseClock(at)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	available, err := u.availabilityService.IsSlotAvailable(ctx, doctorID, day, clock)
	if err != nil {
		return nil, err
	}

	return &dto.SlotCheckResponse{
		DoctorID:  doctorID,
		Date:      day.Format(entity.DateLayout),
		Time:      clock.String(),
		Available: available,
	}, nil
}

// GetAvailabilityRange defaults to today and a range of defaultRangeDays.
// The range bounds are inclusive.
func (u *availabilityUsecase) GetAvailabilityRange(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) (*dto.AvailabilityRangeResponse, error) {
	start := u.availabilityService.Today()
	if startDate != "" {
		parsed, err := entity.ParseDate(startDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		start = parsed
	}

	end := start.AddDate(0, 0, u.defaultRangeDays)
	if endDate != "" {
		parsed, err := entity.ParseDate(endDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		end = parsed
	}

	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	if days := int(end.Sub(start) / (24 * time.Hour)); days > u.maxRangeDays {
		return nil, apperror.Validation(fmt.Sprintf("date range cannot exceed %d days", u.maxRangeDays))
	}

	days, err := u.availabilityService.AvailabilityRange(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.AvailabilityRangeResponse{
		DoctorID:     doctorID,
		StartDate:    start.Format(entity.DateLayout),
		EndDate:      end.Format(entity.DateLayout),
		Availability: converter.SlotMapToStrings(days),
	}, nil
}
