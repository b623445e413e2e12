package turf

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyTurfName      = errors.New("turf name cannot be empty")
	ErrTurfNameTooLong    = errors.New("turf name is too long (max 255 characters)")
	ErrNegativeHourlyRate = errors.New("hourly price cannot be negative")
	ErrInvalidSport       = errors.New("invalid sport type")
)

const (
	MaxTurfNameLength = 255
)

type Sport string

const (
	SportFootball   Sport = "football"
	SportCricket    Sport = "cricket"
	SportBadminton  Sport = "badminton"
	SportTennis     Sport = "tennis"
	SportBasketball Sport = "basketball"
)

func NewSport(s string) (Sport, error) {
	sport := Sport(s)
	if !sport.IsValid() {
		return "", ErrInvalidSport
	}
	return sport, nil
}

func (s Sport) String() string {
	return string(s)
}

func (s Sport) IsValid() bool {
	switch s {
	case SportFootball, SportCricket, SportBadminton, SportTennis, SportBasketball:
		return true
	default:
		return false
	}
}

// Turf is a bookable unit inside a venue. An inactive turf (maintenance or
// pending approval) never surfaces bookable slots and rejects admission.
type Turf struct {
	id               uuid.UUID
	venueID          uuid.UUID
	name             string
	sport            Sport
	hourlyPriceCents int64
	isActive         bool
}

func NewTurf(id, venueID uuid.UUID, name string, sport string, hourlyPriceCents int64, isActive bool) (*Turf, error) {
	if err := validateTurfName(name); err != nil {
		return nil, err
	}

	sportEntity, err := NewSport(sport)
	if err != nil {
		return nil, err
	}

	if hourlyPriceCents < 0 {
		return nil, ErrNegativeHourlyRate
	}

	return &Turf{
		id:               id,
		venueID:          venueID,
		name:             strings.TrimSpace(name),
		sport:            sportEntity,
		hourlyPriceCents: hourlyPriceCents,
		isActive:         isActive,
	}, nil
}

func validateTurfName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyTurfName
	}
	if len(name) > MaxTurfNameLength {
		return ErrTurfNameTooLong
	}
	return nil
}

func (t *Turf) ID() uuid.UUID           { return t.id }
func (t *Turf) VenueID() uuid.UUID      { return t.venueID }
func (t *Turf) Name() string            { return t.name }
func (t *Turf) Sport() Sport            { return t.sport }
func (t *Turf) HourlyPriceCents() int64 { return t.hourlyPriceCents }
func (t *Turf) IsActive() bool          { return t.isActive }
