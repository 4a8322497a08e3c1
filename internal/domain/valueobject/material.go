package valueobject

import (
	"errors"
	"strings"
)

var ErrInvalidMaterialType = errors.New("invalid material type")

// MaterialType enumerates the recyclable material categories. Each
// category carries a fixed points-per-unit multiplier used when a
// collection is declared.
type MaterialType string

const (
	MaterialPlastico MaterialType = "PLASTICO"
	MaterialPapel    MaterialType = "PAPEL"
	MaterialVidro    MaterialType = "VIDRO"
	MaterialMetal    MaterialType = "METAL"
)

var pointsPerUnit = map[MaterialType]int{
	MaterialPlastico: 10,
	MaterialPapel:    5,
	MaterialVidro:    8,
	MaterialMetal:    12,
}

// ParseMaterialType builds a MaterialType from a free-form string,
// case-insensitively. Unknown values fail with ErrInvalidMaterialType.
func ParseMaterialType(value string) (MaterialType, error) {
	mt := MaterialType(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := pointsPerUnit[mt]; !ok {
		return "", ErrInvalidMaterialType
	}
	return mt, nil
}

// MaterialTypes returns the enumerated categories, for validation and docs.
func MaterialTypes() []MaterialType {
	return []MaterialType{MaterialPlastico, MaterialPapel, MaterialVidro, MaterialMetal}
}

func (m MaterialType) PointsPerUnit() int { return pointsPerUnit[m] }

func (m MaterialType) String() string { return string(m) }
