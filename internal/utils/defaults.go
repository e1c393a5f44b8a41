package utils

// OrDefault returns v when it is non-zero, otherwise def.
func OrDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
