package patch

// Coalesce returns the patched value when present, the current one otherwise.
func Coalesce[T any](ptr *T, current T) T {
	if ptr != nil {
		return *ptr
	}
	return current
}

// Empty reports whether none of the given patch fields is present.
func Empty(fields ...bool) bool {
	for _, present := range fields {
		if present {
			return false
		}
	}
	return true
}
