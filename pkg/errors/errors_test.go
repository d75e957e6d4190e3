package errors

import (
	"strings"
	"testing"
)

func TestWarningHandler(t *testing.T) {
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(nil)

	warning := NewConfigurationWarning("OutliersDetector", "method", "squash")
	Warn(warning)

	if len(captured) != 1 {
		t.Fatalf("expected 1 captured warning, got %d", len(captured))
	}
	if !strings.Contains(captured[0].Error(), "squash") {
		t.Errorf("warning message missing value: %v", captured[0])
	}
}

func TestWarnWithNilHandlerDoesNotPanic(t *testing.T) {
	SetWarningHandler(nil)
	defer SetWarningHandler(func(error) {})

	Warn(NewConfigurationWarning("FillMissingValuesStrategy", "method", "bogus"))
}

func TestErrorsRoundTripThroughAs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want interface{}
	}{
		{
			name: "InsufficientDataError",
			err:  NewInsufficientDataError("Fill", "LotFrontage", "all values missing"),
			want: &InsufficientDataError{},
		},
		{
			name: "DomainError",
			err:  NewDomainError("LogTransformation", "SalePrice", -2, "log1p undefined"),
			want: &DomainError{},
		},
		{
			name: "InvalidTargetError",
			err:  NewInvalidTargetError("SalePrice", []string{"LotArea"}),
			want: &InvalidTargetError{},
		},
		{
			name: "InvalidFeatureError",
			err:  NewInvalidFeatureError("StandardScaling", "Ghost", "column not present"),
			want: &InvalidFeatureError{},
		},
		{
			name: "NotFittedError",
			err:  NewNotFittedError("LinearRegression", "Predict"),
			want: &NotFittedError{},
		},
		{
			name: "DimensionError",
			err:  NewDimensionError("Predict", 3, 2, 1),
			want: &DimensionError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			switch target := tt.want.(type) {
			case *InsufficientDataError:
				if !As(tt.err, &target) {
					t.Errorf("As() failed for %T", tt.want)
				}
			case *DomainError:
				if !As(tt.err, &target) {
					t.Errorf("As() failed for %T", tt.want)
				}
			case *InvalidTargetError:
				if !As(tt.err, &target) {
					t.Errorf("As() failed for %T", tt.want)
				}
			case *InvalidFeatureError:
				if !As(tt.err, &target) {
					t.Errorf("As() failed for %T", tt.want)
				}
			case *NotFittedError:
				if !As(tt.err, &target) {
					t.Errorf("As() failed for %T", tt.want)
				}
			case *DimensionError:
				if !As(tt.err, &target) {
					t.Errorf("As() failed for %T", tt.want)
				}
			}
		})
	}
}

func TestDimensionErrorMessageNamesAxis(t *testing.T) {
	rowErr := &DimensionError{Op: "SplitData", Expected: 10, Got: 8, Axis: 0}
	if !strings.Contains(rowErr.Error(), "rows") {
		t.Errorf("axis 0 message should mention rows: %s", rowErr.Error())
	}

	colErr := &DimensionError{Op: "Predict", Expected: 5, Got: 4, Axis: 1}
	if !strings.Contains(colErr.Error(), "features") {
		t.Errorf("axis 1 message should mention features: %s", colErr.Error())
	}
}
