// Package calc holds the arithmetic helpers: sum, division and average.
package calc

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrNotSequence    = errors.New("type error: expected a sequence of numbers")
	ErrNotFinite      = errors.New("result is not a finite number")
)

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func Sum[T Number](a, b T) T {
	return a + b
}

func Divide(numerator, denominator float64) (float64, error) {
	if denominator == 0 {
		return 0, ErrDivisionByZero
	}
	return numerator / denominator, nil
}

// Average returns the arithmetic mean, or 0 for an empty slice.
func Average(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	var total float64
	for _, n := range numbers {
		total += n
	}
	return total / float64(len(numbers))
}

// AverageOf accepts any slice or array of numeric values, including the
// []interface{} produced by decoding a JSON array.
func AverageOf(v interface{}) (float64, error) {
	numbers, err := toFloats(v)
	if err != nil {
		return 0, err
	}
	return Average(numbers), nil
}

func toFloats(v interface{}) ([]float64, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: got nil", ErrNotSequence)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: got %T", ErrNotSequence, v)
	}

	out := make([]float64, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		f, ok := toFloat(rv.Index(i))
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %s", ErrNotSequence, i, rv.Index(i).Kind())
		}
		out = append(out, f)
	}
	return out, nil
}

func toFloat(v reflect.Value) (float64, bool) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

// Finite returns ErrNotFinite when v overflowed to an infinity or is NaN.
func Finite(v float64) (float64, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}
