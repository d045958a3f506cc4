// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Field length limits, mirrored by the column sizes in the schema.
const (
	MaxCategoryNameLen  = 200
	MaxCategorySlugLen  = 200
	MaxProductNameLen   = 300
	MaxProductSlugLen   = 300
	MaxBrandLen         = 100
	MaxImageURLLen      = 500
	MaxEmailLen         = 254
	MaxPhoneLen         = 20
	MaxFullNameLen      = 200
	MaxPaymentDescLen   = 300
	MaxEntryDescLen     = 500
	MaxDisplayNameLen   = 200
	MaxOrderItemNameLen = MaxProductNameLen
)

// moneyLimit is the first amount that no longer fits NUMERIC(12,2).
var moneyLimit = decimal.New(1, 10)

// ValidationError describes a single field that failed validation before a
// write reached the database.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func checkRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func checkLen(field, value string, max int) error {
	if n := utf8.RuneCountInString(value); n > max {
		return invalid(field, "is too long (%d characters, max %d)", n, max)
	}
	return nil
}

// checkMoney rejects negative amounts and amounts that do not fit NUMERIC(12,2).
func checkMoney(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid(field, "must not be negative")
	}
	if d.GreaterThanOrEqual(moneyLimit) {
		return invalid(field, "is too large")
	}
	if !d.Equal(d.Truncate(2)) {
		return invalid(field, "must have at most 2 decimal places")
	}
	return nil
}

func checkNonNegative(field string, n int) error {
	if n < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func checkSlug(field, value string, max int) error {
	if err := checkRequired(field, value); err != nil {
		return err
	}
	if err := checkLen(field, value, max); err != nil {
		return err
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return invalid(field, "may only contain letters, digits, hyphens and underscores")
		}
	}
	return nil
}

func checkURL(field, value string, max int) error {
	if value == "" {
		return nil
	}
	if err := checkLen(field, value, max); err != nil {
		return err
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid(field, "must be an http(s) URL")
	}
	return nil
}

func checkEmail(field, value string) error {
	if value == "" {
		return nil
	}
	if err := checkLen(field, value, MaxEmailLen); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return invalid(field, "must be a valid email address")
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
