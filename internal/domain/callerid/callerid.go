package callerid

import (
	"fmt"
	"time"

	"centrex/internal/shared/biztime"
	"centrex/internal/shared/id"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (s Status) String() string {
	return string(s)
}

// CallerID is a tenant-scoped outbound identity: the number presented on
// outgoing calls and how many concurrent channels it may carry.
type CallerID struct {
	id             uint
	sid            string
	merchantNumber string
	phoneNumber    string
	displayName    string
	channels       int
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
}

func NewCallerID(merchantNumber, phoneNumber, displayName string, channels int) (*CallerID, error) {
	if merchantNumber == "" {
		return nil, fmt.Errorf("merchant number is required")
	}
	if phoneNumber == "" {
		return nil, fmt.Errorf("phone number is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}
	if channels <= 0 {
		return nil, fmt.Errorf("channel capacity must be positive")
	}

	sid, err := id.NewCallerIDID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &CallerID{
		sid:            sid,
		merchantNumber: merchantNumber,
		phoneNumber:    phoneNumber,
		displayName:    displayName,
		channels:       channels,
		status:         StatusActive,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructCallerID(
	id uint,
	sid string,
	merchantNumber string,
	phoneNumber string,
	displayName string,
	channels int,
	status Status,
	createdAt, updatedAt time.Time,
) (*CallerID, error) {
	if id == 0 {
		return nil, fmt.Errorf("caller ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	return &CallerID{
		id:             id,
		sid:            sid,
		merchantNumber: merchantNumber,
		phoneNumber:    phoneNumber,
		displayName:    displayName,
		channels:       channels,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (c *CallerID) ID() uint               { return c.id }
func (c *CallerID) SID() string            { return c.sid }
func (c *CallerID) MerchantNumber() string { return c.merchantNumber }
func (c *CallerID) PhoneNumber() string    { return c.phoneNumber }
func (c *CallerID) DisplayName() string    { return c.displayName }
func (c *CallerID) Channels() int          { return c.channels }
func (c *CallerID) Status() Status         { return c.status }
func (c *CallerID) CreatedAt() time.Time   { return c.createdAt }
func (c *CallerID) UpdatedAt() time.Time   { return c.updatedAt }

func (c *CallerID) IsActive() bool {
	return c.status == StatusActive
}

func (c *CallerID) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("caller ID already set")
	}
	if id == 0 {
		return fmt.Errorf("caller ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *CallerID) Update(displayName string, channels int) error {
	if displayName == "" {
		return fmt.Errorf("display name is required")
	}
	if channels <= 0 {
		return fmt.Errorf("channel capacity must be positive")
	}
	c.displayName = displayName
	c.channels = channels
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *CallerID) SetStatus(status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q", status)
	}
	c.status = status
	c.updatedAt = biztime.NowUTC()
	return nil
}
