package valueobject

import "errors"

var (
	ErrNegativePoints    = errors.New("points cannot be negative")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Points is a non-negative integer amount of reward points.
// All operations return new values; a Points is never mutated.
type Points struct {
	value int
}

func NewPoints(value int) (Points, error) {
	if value < 0 {
		return Points{}, ErrNegativePoints
	}
	return Points{value: value}, nil
}

func ZeroPoints() Points {
	return Points{}
}

func (p Points) Add(other Points) Points {
	return Points{value: p.value + other.value}
}

// Subtract returns p minus other, or ErrInsufficientPoints when the
// result would be negative.
func (p Points) Subtract(other Points) (Points, error) {
	if other.value > p.value {
		return Points{}, ErrInsufficientPoints
	}
	return Points{value: p.value - other.value}, nil
}

func (p Points) Value() int { return p.value }

func (p Points) GreaterThan(other Points) bool { return p.value > other.value }

func (p Points) LessThan(other Points) bool { return p.value < other.value }

func (p Points) Equals(other Points) bool { return p.value == other.value }
