// Package patch resolves item name and command patches against the shared
// item table.
package patch

// MaxLevel is the highest name patch level and command patch mode.
const MaxLevel = 3

// NormalizeLevel maps unrecognised level or mode values to 0. Patches only
// touch cosmetic text, so a bad setting means "no patching" rather than an
// error.
func NormalizeLevel(v int) int {
	if v < 0 || v > MaxLevel {
		return 0
	}
	return v
}
