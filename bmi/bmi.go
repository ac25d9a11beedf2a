// Package bmi computes body mass index and its weight category.
package bmi

import (
	"strconv"
)

// Category is a BMI weight category.
type Category int

const (
	Underweight Category = iota
	Normal
	Overweight
	Obese
)

func (c Category) String() string {
	switch c {
	case Underweight:
		return "Underweight"
	case Normal:
		return "Normal"
	case Overweight:
		return "Overweight"
	case Obese:
		return "Obese"
	default:
		return "Category(" + strconv.Itoa(int(c)) + ")"
	}
}

// Categorize returns the category of a BMI value.
func Categorize(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// Result is a computed BMI.
type Result struct {
	// BMI is in kg/m².
	BMI      float64
	Category Category
}

// String renders the BMI to one decimal place with its category, e.g.
// "20.8 (Normal)".
func (r Result) String() string {
	return strconv.FormatFloat(r.BMI, 'f', 1, 64) + " (" + r.Category.String() + ")"
}

// Classify computes the BMI for a weight in kilograms and a height in
// centimetres. Both must be positive.
func Classify(weight, height float64) (Result, error) {
	if !(weight > 0) {
		return Result{}, &ValidationError{Quantity: "weight", Value: weight}
	}
	if !(height > 0) {
		return Result{}, &ValidationError{Quantity: "height", Value: height}
	}
	m := height / 100
	b := weight / (m * m)
	return Result{BMI: b, Category: Categorize(b)}, nil
}

// ValidationError is returned for a quantity that is not positive.
type ValidationError struct {
	// Quantity is "weight" or "height".
	Quantity string
	Value    float64
}

func (err *ValidationError) Error() string {
	return "bmi: " + err.Quantity + " must be positive, not " + strconv.FormatFloat(err.Value, 'g', -1, 64)
}
