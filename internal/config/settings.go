package config

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSettings wraps every settings validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsError carries a user-facing validation message and matches
// ErrInvalidSettings under errors.Is.
type SettingsError struct {
	Msg string
}

func (e *SettingsError) Error() string { return e.Msg }

func (e *SettingsError) Unwrap() error { return ErrInvalidSettings }

// User-facing validation messages.
const (
	MsgInvalidNumber     = "Please enter a valid number"
	MsgNegativeBaseline  = "Baseline cannot be negative"
	MsgNegativeFixedCost = "Fixed cost cannot be negative"
)

var validate = validator.New()

// Settings are the business figures the cashflow engine runs against.
type Settings struct {
	BaselineAmount float64 `toml:"baseline_amount" validate:"gte=0"`
	FixedCost      float64 `toml:"fixed_cost" validate:"gte=0"` // per month
	InitialBalance float64 `toml:"initial_balance"`
}

// DefaultSettings returns a 5000 baseline with no fixed cost.
func DefaultSettings() Settings {
	return Settings{BaselineAmount: 5000}
}

// Validate checks that amounts are finite and non-negative.
func (s Settings) Validate() error {
	for _, v := range []float64{s.BaselineAmount, s.FixedCost, s.InitialBalance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &SettingsError{Msg: MsgInvalidNumber}
		}
	}

	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &SettingsError{Msg: fieldMessage(verrs[0])}
	}
	return &SettingsError{Msg: err.Error()}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "BaselineAmount":
		return MsgNegativeBaseline
	case "FixedCost":
		return MsgNegativeFixedCost
	}
	return fe.Error()
}

// ValidateBaselineAmount checks a single baseline value.
func ValidateBaselineAmount(v float64) error {
	return validateAmount(v, MsgNegativeBaseline)
}

// ValidateFixedCost checks a single monthly fixed cost value.
func ValidateFixedCost(v float64) error {
	return validateAmount(v, MsgNegativeFixedCost)
}

func validateAmount(v float64, negativeMsg string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &SettingsError{Msg: MsgInvalidNumber}
	}
	if err := validate.Var(v, "gte=0"); err != nil {
		return &SettingsError{Msg: negativeMsg}
	}
	return nil
}

// ParseAmount parses user input such as "5000" or "1,250.50".
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &SettingsError{Msg: MsgInvalidNumber}
	}
	return v, nil
}
