package service

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	apperrors "schoolapi/internal/errors"
)

// DefaultPhoneRegion is used for numbers written without a country code.
const DefaultPhoneRegion = "US"

// PhoneNormalizer converts user supplied phone numbers to E.164.
type PhoneNormalizer struct {
	region string
}

// NewPhoneNormalizer creates a normalizer resolving national numbers in region.
func NewPhoneNormalizer(region string) *PhoneNormalizer {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultPhoneRegion
	}
	return &PhoneNormalizer{region: region}
}

// Normalize returns raw in E.164 form. nil and blank input mean "no phone"
// and yield nil.
func (p *PhoneNormalizer) Normalize(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	num, err := phonenumbers.Parse(*raw, p.region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return nil, apperrors.ErrInvalidPhone
	}

	formatted := phonenumbers.Format(num, phonenumbers.E164)
	return &formatted, nil
}
