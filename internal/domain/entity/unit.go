package entity

// Unit unidad de stock de un ingrediente. Las unidades a granel (kg, l) se
// compran en miles de su unidad base (g, ml); "piece" se cuenta por pieza.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitPiece      Unit = "piece"
)

// IsBulk indica si la unidad es a granel (1 unidad de stock = 1000 unidades base).
func (u Unit) IsBulk() bool {
	return u == UnitKilogram || u == UnitLiter
}

// BaseFactor cantidad de unidades base contenidas en una unidad de stock.
func (u Unit) BaseFactor() float64 {
	if u.IsBulk() {
		return 1000
	}
	return 1
}

// IsValid indica si la unidad es una de las soportadas.
func (u Unit) IsValid() bool {
	switch u {
	case UnitGram, UnitKilogram, UnitMilliliter, UnitLiter, UnitPiece:
		return true
	}
	return false
}
