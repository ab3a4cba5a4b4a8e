package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is a value object representing a unit of measurement.
// It is immutable - all operations return new Unit instances.
// A Unit has a code (identifier), name (display), and coefficient to
// the base unit: 1 of this unit = coefficient base units.
type Unit struct {
	code        string
	name        string
	coefficient decimal.Decimal
}

// Common unit codes for convenience
const (
	UnitCodePCS  = "PCS"  // Pieces (commonly used base unit)
	UnitCodeKG   = "KG"   // Kilograms
	UnitCodeG    = "G"    // Grams
	UnitCodeL    = "L"    // Liters
	UnitCodeML   = "ML"   // Milliliters
	UnitCodeM    = "M"    // Meters
	UnitCodeBOX  = "BOX"  // Box
	UnitCodePACK = "PACK" // Pack
)

// NewUnit creates a new Unit with the specified code, name, and
// coefficient to base. The code is normalized to uppercase.
// Returns error if the code or name is empty/too long, or the
// coefficient is zero or negative.
func NewUnit(code, name string, coefficient decimal.Decimal) (Unit, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	name = strings.TrimSpace(name)

	if code == "" {
		return Unit{}, errors.New("unit code cannot be empty")
	}
	if len(code) > 20 {
		return Unit{}, fmt.Errorf("unit code cannot exceed 20 characters: %s", code)
	}
	if name == "" {
		return Unit{}, errors.New("unit name cannot be empty")
	}
	if len(name) > 50 {
		return Unit{}, fmt.Errorf("unit name cannot exceed 50 characters: %s", name)
	}
	if coefficient.LessThanOrEqual(decimal.Zero) {
		return Unit{}, errors.New("unit coefficient must be positive")
	}

	return Unit{
		code:        code,
		name:        name,
		coefficient: coefficient,
	}, nil
}

// NewBaseUnit creates a new Unit with coefficient of 1 (base unit).
func NewBaseUnit(code, name string) (Unit, error) {
	return NewUnit(code, name, decimal.NewFromInt(1))
}

// MustNewUnit creates a Unit and panics on error.
// Use only when you're certain the inputs are valid.
func MustNewUnit(code, name string, coefficient decimal.Decimal) Unit {
	u, err := NewUnit(code, name, coefficient)
	if err != nil {
		panic(err)
	}
	return u
}

// Code returns the unit code (normalized to uppercase).
func (u Unit) Code() string {
	return u.code
}

// Name returns the unit name.
func (u Unit) Name() string {
	return u.name
}

// Coefficient returns the coefficient to the base unit.
func (u Unit) Coefficient() decimal.Decimal {
	return u.coefficient
}

// IsBaseUnit returns true if this is a base unit (coefficient = 1).
func (u Unit) IsBaseUnit() bool {
	return u.coefficient.Equal(decimal.NewFromInt(1))
}

// IsZero returns true if this is a zero-value Unit.
func (u Unit) IsZero() bool {
	return u.code == "" && u.name == "" && u.coefficient.IsZero()
}

// ConvertToBase converts a quantity from this unit to base units.
// The result is unrounded; quantity rounding happens at persistence.
func (u Unit) ConvertToBase(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(u.coefficient)
}

// ConvertFromBase converts a quantity from base units to this unit.
func (u Unit) ConvertFromBase(baseQuantity decimal.Decimal) decimal.Decimal {
	if u.coefficient.IsZero() {
		return decimal.Zero
	}
	return baseQuantity.Div(u.coefficient)
}

// Equals returns true if both units have the same code and coefficient.
func (u Unit) Equals(other Unit) bool {
	return u.code == other.code && u.coefficient.Equal(other.coefficient)
}

// String returns a string representation of the Unit.
func (u Unit) String() string {
	return fmt.Sprintf("%s (%s x%s)", u.code, u.name, u.coefficient.String())
}
