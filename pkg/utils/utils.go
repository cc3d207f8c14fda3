package utils

import (
	"fmt"
	"log"
	"runtime/debug"
)

// GoSafe runs fn in a goroutine and recovers from panics.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// ToPointer returns a pointer to v.
func ToPointer[T any](v T) *T {
	return &v
}

// FormatRupiah formats an integer amount as "Rp 1.234.567".
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	return sign + "Rp " + string(out)
}
