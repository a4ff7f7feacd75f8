package qr

// MaskPredicate reports whether mask id (0..7) flips the module at (x, y),
// per the eight standard ISO/IEC 18004 formulas — the same eight formulas
// qrcodegen.go's applyMask switches over on the encode side.
func MaskPredicate(maskID uint8, x, y int) bool {
	switch maskID {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (y/2+x/3)%2 == 0
	case 5:
		return (x*y)%2+(x*y)%3 == 0
	case 6:
		return ((x*y)%2+(x*y)%3)%2 == 0
	case 7:
		return ((x+y)%2+(x*y)%3)%2 == 0
	default:
		return false
	}
}

// Unmask XORs maskID onto every data module (never function modules) of
// grid in place.
func Unmask(grid *Grid21, maskID uint8) {
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			if IsFunctionModuleV1(x, y) {
				continue
			}
			if MaskPredicate(maskID, x, y) {
				grid.set(x, y, !grid.at(x, y))
			}
		}
	}
}
