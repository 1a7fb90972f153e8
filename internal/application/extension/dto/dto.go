package dto

import (
	"time"

	"centrex/internal/domain/extension"
)

// ExtensionDTO is the transport representation of an extension. The
// secret is only populated on create responses so the operator can
// configure the device once; it is omitted everywhere else.
type ExtensionDTO struct {
	SID             string    `json:"sid"`
	MerchantNumber  string    `json:"merchant_number"`
	ExtensionNumber string    `json:"extension_number"`
	ExtensionCode   string    `json:"extension_code"`
	DisplayName     string    `json:"display_name"`
	Technology      string    `json:"technology"`
	Secret          string    `json:"secret,omitempty"`
	CallerIDRef     *uint     `json:"caller_id_ref,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromExtension(ext *extension.Extension) *ExtensionDTO {
	return &ExtensionDTO{
		SID:             ext.SID(),
		MerchantNumber:  ext.MerchantNumber(),
		ExtensionNumber: ext.ExtensionNumber(),
		ExtensionCode:   ext.ExtensionCode(),
		DisplayName:     ext.DisplayName(),
		Technology:      ext.Technology().String(),
		CallerIDRef:     ext.CallerIDRef(),
		Status:          ext.Status().String(),
		CreatedAt:       ext.CreatedAt(),
		UpdatedAt:       ext.UpdatedAt(),
	}
}

func FromExtensionWithSecret(ext *extension.Extension) *ExtensionDTO {
	d := FromExtension(ext)
	d.Secret = ext.Secret()
	return d
}

func FromExtensionList(exts []*extension.Extension) []*ExtensionDTO {
	dtos := make([]*ExtensionDTO, len(exts))
	for i, ext := range exts {
		dtos[i] = FromExtension(ext)
	}
	return dtos
}
