package valueobject

import "errors"

var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// Quantity is a strictly positive unit count. It only exists at the
// aggregate boundary as an input to the point calculation; collections
// persist the raw integer.
type Quantity struct {
	value int
}

func NewQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: value}, nil
}

func (q Quantity) Value() int { return q.value }

// Multiply returns the quantity scaled by a per-unit factor.
func (q Quantity) Multiply(factor int) int { return q.value * factor }

func (q Quantity) Equals(other Quantity) bool { return q.value == other.value }
