// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toolshop/internal/price"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodOther PaymentMethod = "other"
)

var paymentMethods = []PaymentMethod{PaymentMethodCard, PaymentMethodCash, PaymentMethodOther}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCard:  "Карта",
	PaymentMethodCash:  "Наличные",
	PaymentMethodOther: "Другое",
}

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

// Label returns the human-readable method name.
func (m PaymentMethod) Label() string {
	return paymentMethodLabels[m]
}

// ParsePaymentMethod converts a raw value into a PaymentMethod.
func ParsePaymentMethod(v string) (PaymentMethod, error) {
	m := PaymentMethod(v)
	if !m.Valid() {
		return "", &UnknownValueError{Kind: "payment method", Value: v}
	}
	return m, nil
}

// PaymentMethodChoices lists every payment method in display order.
func PaymentMethodChoices() []Choice {
	out := make([]Choice, len(paymentMethods))
	for i, m := range paymentMethods {
		out[i] = Choice{Value: string(m), Label: m.Label()}
	}
	return out
}

// PaymentStatus tracks the progress of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

var paymentStatuses = []PaymentStatus{
	PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded,
}

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusPending:   "Ожидает",
	PaymentStatusCompleted: "Проведён",
	PaymentStatusFailed:    "Ошибка",
	PaymentStatusRefunded:  "Возврат",
}

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	_, ok := paymentStatusLabels[s]
	return ok
}

// Label returns the human-readable status name.
func (s PaymentStatus) Label() string {
	return paymentStatusLabels[s]
}

// ParsePaymentStatus converts a raw value into a PaymentStatus.
func ParsePaymentStatus(v string) (PaymentStatus, error) {
	s := PaymentStatus(v)
	if !s.Valid() {
		return "", &UnknownValueError{Kind: "payment status", Value: v}
	}
	return s, nil
}

// PaymentStatusChoices lists every payment status in display order.
func PaymentStatusChoices() []Choice {
	out := make([]Choice, len(paymentStatuses))
	for i, s := range paymentStatuses {
		out[i] = Choice{Value: string(s), Label: s.Label()}
	}
	return out
}

// Payment records a payment attempt, optionally tied to an order.
type Payment struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     *uuid.UUID      `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (p *Payment) String() string {
	return p.Amount.StringFixed(2) + " " + price.Currency + " — " + p.Status.Label()
}

// Validate checks the payment fields against the column constraints.
func (p *Payment) Validate() error {
	var method, status error
	if !p.Method.Valid() {
		method = invalid("method", "unknown value %q", p.Method)
	}
	if !p.Status.Valid() {
		status = invalid("status", "unknown value %q", p.Status)
	}
	return firstError(
		checkMoney("amount", p.Amount),
		method,
		status,
		checkLen("description", p.Description, MaxPaymentDescLen),
	)
}
