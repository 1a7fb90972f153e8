package extension

import (
	"fmt"
	"time"

	"centrex/internal/shared/biztime"
	"centrex/internal/shared/id"
)

// Technology is the SIP stack an extension registers with.
type Technology string

const (
	TechnologyPJSIP Technology = "PJSIP"
	TechnologySIP   Technology = "SIP"
)

func (t Technology) IsValid() bool {
	return t == TechnologyPJSIP || t == TechnologySIP
}

func (t Technology) String() string {
	return string(t)
}

// Status of an extension record.
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

// Extension is a dialable endpoint within a tenant's PBX. The local record
// is the system of record: its fields never depend on remote
// synchronization having succeeded.
type Extension struct {
	id              uint
	sid             string
	merchantNumber  string
	extensionNumber string
	extensionCode   string
	displayName     string
	technology      Technology
	secret          string
	callerIDRef     *uint
	status          Status
	ownerID         uint
	createdAt       time.Time
	updatedAt       time.Time
}

// NewExtension builds an extension ready for provisioning. extensionCode
// is derived from the merchant number and extension number, never set
// directly.
func NewExtension(
	merchantNumber string,
	extensionNumber string,
	displayName string,
	technology Technology,
	secret string,
	ownerID uint,
) (*Extension, error) {
	if merchantNumber == "" {
		return nil, fmt.Errorf("merchant number is required")
	}
	if extensionNumber == "" {
		return nil, fmt.Errorf("extension number is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}
	if !technology.IsValid() {
		return nil, fmt.Errorf("invalid technology %q", technology)
	}
	if secret == "" {
		return nil, fmt.Errorf("secret is required")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}

	sid, err := id.NewExtensionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Extension{
		sid:             sid,
		merchantNumber:  merchantNumber,
		extensionNumber: extensionNumber,
		extensionCode:   DialCode(merchantNumber, extensionNumber),
		displayName:     displayName,
		technology:      technology,
		secret:          secret,
		status:          StatusActive,
		ownerID:         ownerID,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructExtension rebuilds an Extension from the persistence layer.
func ReconstructExtension(
	id uint,
	sid string,
	merchantNumber string,
	extensionNumber string,
	extensionCode string,
	displayName string,
	technology Technology,
	secret string,
	callerIDRef *uint,
	status Status,
	ownerID uint,
	createdAt, updatedAt time.Time,
) (*Extension, error) {
	if id == 0 {
		return nil, fmt.Errorf("extension ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("extension SID is required")
	}
	if !technology.IsValid() {
		return nil, fmt.Errorf("invalid technology %q", technology)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	return &Extension{
		id:              id,
		sid:             sid,
		merchantNumber:  merchantNumber,
		extensionNumber: extensionNumber,
		extensionCode:   extensionCode,
		displayName:     displayName,
		technology:      technology,
		secret:          secret,
		callerIDRef:     callerIDRef,
		status:          status,
		ownerID:         ownerID,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (e *Extension) ID() uint                { return e.id }
func (e *Extension) SID() string             { return e.sid }
func (e *Extension) MerchantNumber() string  { return e.merchantNumber }
func (e *Extension) ExtensionNumber() string { return e.extensionNumber }
func (e *Extension) ExtensionCode() string   { return e.extensionCode }
func (e *Extension) DisplayName() string     { return e.displayName }
func (e *Extension) Technology() Technology  { return e.technology }
func (e *Extension) Secret() string          { return e.secret }
func (e *Extension) CallerIDRef() *uint      { return e.callerIDRef }
func (e *Extension) Status() Status          { return e.status }
func (e *Extension) OwnerID() uint           { return e.ownerID }
func (e *Extension) CreatedAt() time.Time    { return e.createdAt }
func (e *Extension) UpdatedAt() time.Time    { return e.updatedAt }

// SetID is called by the repository after the initial insert.
func (e *Extension) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("extension ID already set")
	}
	if id == 0 {
		return fmt.Errorf("extension ID cannot be zero")
	}
	e.id = id
	return nil
}

func (e *Extension) UpdateDisplayName(name string) error {
	if name == "" {
		return fmt.Errorf("display name is required")
	}
	e.displayName = name
	e.updatedAt = biztime.NowUTC()
	return nil
}

func (e *Extension) UpdateTechnology(technology Technology) error {
	if !technology.IsValid() {
		return fmt.Errorf("invalid technology %q", technology)
	}
	e.technology = technology
	e.updatedAt = biztime.NowUTC()
	return nil
}

// UpdateSecret replaces the registration credential. Blank input keeps the
// existing secret so operators can edit other fields without re-keying
// devices.
func (e *Extension) UpdateSecret(secret string) {
	if secret == "" {
		return
	}
	e.secret = secret
	e.updatedAt = biztime.NowUTC()
}

func (e *Extension) AssignCallerID(calleridID *uint) {
	e.callerIDRef = calleridID
	e.updatedAt = biztime.NowUTC()
}

func (e *Extension) SetStatus(status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q", status)
	}
	e.status = status
	e.updatedAt = biztime.NowUTC()
	return nil
}
