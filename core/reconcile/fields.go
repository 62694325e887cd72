package reconcile

import (
	"fmt"
	"reflect"
)

// Diff accumulates field-level differences for CompareFields implementations.
type Diff []string

// Value records name when fetched and stored differ.
func Value[V comparable](d *Diff, name string, fetched, stored V) {
	if fetched != stored {
		*d = append(*d, fmt.Sprintf("%s: fetched=%v stored=%v", name, fetched, stored))
	}
}

// Nullable records name when the two pointers differ in presence or value.
// A nil and a non-nil pointer always differ, even when the value is the zero value.
func Nullable[V comparable](d *Diff, name string, fetched, stored *V) {
	switch {
	case fetched == nil && stored == nil:
		return
	case fetched == nil || stored == nil:
		*d = append(*d, fmt.Sprintf("%s: fetched=%s stored=%s", name, show(fetched), show(stored)))
	case *fetched != *stored:
		*d = append(*d, fmt.Sprintf("%s: fetched=%v stored=%v", name, *fetched, *stored))
	}
}

// Deep records name when fetched and stored are not deeply equal.
func Deep(d *Diff, name string, fetched, stored any) {
	if !reflect.DeepEqual(fetched, stored) {
		*d = append(*d, fmt.Sprintf("%s: changed", name))
	}
}

func show[V any](v *V) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(*v)
}
