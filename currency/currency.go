// Package currency converts amounts between a fixed set of currencies using
// static demonstration rates. The rates are not live exchange rates.
package currency

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Code is a currency code.
type Code string

// The supported currencies.
const (
	USD Code = "USD"
	INR Code = "INR"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	AED Code = "AED"
)

// codes lists the supported currencies in display order.
var codes = [...]Code{USD, INR, EUR, GBP, JPY, AED}

// rates gives the value of one USD in each currency. It is never modified.
var rates = map[Code]float64{
	USD: 1.0,
	INR: 83.0,
	EUR: 0.93,
	GBP: 0.79,
	JPY: 156.0,
	AED: 3.67,
}

// Codes returns the supported currencies in display order.
func Codes() []Code {
	r := make([]Code, len(codes))
	copy(r, codes[:])
	return r
}

// Rate returns the number of units of c equal to one USD.
func Rate(c Code) (float64, error) {
	r, ok := rates[c]
	if !ok {
		return 0, &UnknownCodeError{Code: string(c)}
	}
	return r, nil
}

// ParseCode parses a currency code, ignoring case and surrounding space.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := rates[c]; !ok {
		return "", &UnknownCodeError{Code: s}
	}
	return c, nil
}

// ErrNegative is returned when converting a negative amount.
var ErrNegative = errors.New("currency: negative amount")

// Convert converts amount from one currency to another. Converting to the
// same currency returns amount unchanged.
func Convert(amount float64, from, to Code) (float64, error) {
	if amount < 0 {
		return 0, ErrNegative
	}
	rf, err := Rate(from)
	if err != nil {
		return 0, err
	}
	rt, err := Rate(to)
	if err != nil {
		return 0, err
	}
	if from == to {
		return amount, nil
	}
	return amount / rf * rt, nil
}

// Format renders a conversion as "100.00 INR ≈ 1.20 USD".
func Format(amount float64, from Code, result float64, to Code) string {
	return fmt.Sprintf("%.2f %s ≈ %.2f %s", amount, from, result, to)
}

// UnknownCodeError is returned for a currency code outside the rate table.
type UnknownCodeError struct {
	Code string
}

func (err *UnknownCodeError) Error() string {
	return "currency: unknown code " + strconv.Quote(err.Code)
}
