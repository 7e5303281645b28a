package crex

import "fmt"

// Wrap chains cause onto sentinel, producing an error that satisfies
// errors.Is for both. A nil cause returns sentinel unchanged.
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// Wrapf chains a formatted message onto sentinel, producing an error that
// satisfies errors.Is for sentinel while carrying additional context.
func Wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
