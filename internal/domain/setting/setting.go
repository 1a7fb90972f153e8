package setting

import (
	"fmt"
	"strconv"
	"time"

	"centrex/internal/shared/biztime"
)

// ValueType defines the type of a setting value
type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeInt    ValueType = "int"
	ValueTypeBool   ValueType = "bool"
)

// CategoryPBX groups the remote control-plane sync settings.
const CategoryPBX = "pbx"

// Keys within the pbx category.
const (
	KeyTokenURL     = "token_url"
	KeyMutationURL  = "mutation_url"
	KeyClientID     = "client_id"
	KeyClientSecret = "client_secret"
	KeyEnabled      = "enabled"
)

// SystemSetting is one configuration value, stored as a string and parsed
// according to its value type.
type SystemSetting struct {
	category    string
	key         string
	value       string
	valueType   ValueType
	description string
	updatedBy   uint
	updatedAt   time.Time
}

func NewSystemSetting(category, key, value string, valueType ValueType, updatedBy uint) (*SystemSetting, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if !isValidValueType(valueType) {
		return nil, fmt.Errorf("invalid value type: %s", valueType)
	}
	return &SystemSetting{
		category:  category,
		key:       key,
		value:     value,
		valueType: valueType,
		updatedBy: updatedBy,
		updatedAt: biztime.NowUTC(),
	}, nil
}

func ReconstructSystemSetting(category, key, value string, valueType ValueType, description string, updatedBy uint, updatedAt time.Time) *SystemSetting {
	return &SystemSetting{
		category:    category,
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		updatedBy:   updatedBy,
		updatedAt:   updatedAt,
	}
}

func (s *SystemSetting) Category() string     { return s.category }
func (s *SystemSetting) Key() string          { return s.key }
func (s *SystemSetting) Value() string        { return s.value }
func (s *SystemSetting) Type() ValueType      { return s.valueType }
func (s *SystemSetting) Description() string  { return s.description }
func (s *SystemSetting) UpdatedBy() uint      { return s.updatedBy }
func (s *SystemSetting) UpdatedAt() time.Time { return s.updatedAt }

func (s *SystemSetting) SetValue(value string, updatedBy uint) {
	s.value = value
	s.updatedBy = updatedBy
	s.updatedAt = biztime.NowUTC()
}

// BoolValue parses the value as a boolean; false when unparsable.
func (s *SystemSetting) BoolValue() bool {
	b, err := strconv.ParseBool(s.value)
	if err != nil {
		return false
	}
	return b
}

func isValidValueType(t ValueType) bool {
	switch t {
	case ValueTypeString, ValueTypeInt, ValueTypeBool:
		return true
	}
	return false
}
