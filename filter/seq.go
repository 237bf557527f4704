package filter

import (
	"iter"
)

// Matching yields the items of seq that match filter. Errors from seq are
// passed through. When onError is not nil it receives every evaluation
// failure; such items are skipped.
func Matching[T any](seq iter.Seq2[T, error], filter CompiledFilter, onError func(T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for item, err := range seq {
			if err != nil {
				if !yield(item, err) {
					return
				}
				continue
			}

			ok, evalErr := filter.Match(item)
			if evalErr != nil {
				if onError != nil {
					onError(item, evalErr)
				}
				continue
			}
			if !ok {
				continue
			}

			if !yield(item, nil) {
				return
			}
		}
	}
}
