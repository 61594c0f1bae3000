package uncertain

import "fmt"

// InvalidParameterError reports distribution parameters that cannot describe
// a distribution, such as a negative standard deviation or an empty sample.
type InvalidParameterError struct {
	Op     string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid parameter: %s", e.Op, e.Reason)
}

// DivisionByZeroRisk is an advisory returned alongside a quotient whose
// denominator places more than ZeroMassThreshold of its mass at zero or on
// the opposite side of zero from its mean. The quotient is still usable.
type DivisionByZeroRisk struct {
	Fraction float64 // fraction of denominator draws at or across zero
}

func (e *DivisionByZeroRisk) Error() string {
	return fmt.Sprintf("denominator has %.4g of its mass at or across zero", e.Fraction)
}
