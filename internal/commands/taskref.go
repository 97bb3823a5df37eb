package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskRefRequired indicates no task number was provided.
var ErrTaskRefRequired = errors.New("task number required")

// ParseTaskRef parses the leading task number from args and returns it with
// the remaining arguments.
//
// Task numbers are the 1-based positions printed by `taskman list`. The
// first argument must be all digits; anything else is an invalid reference.
func ParseTaskRef(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskRefRequired
	}

	first := args[0]
	if !isAllDigits(first) {
		return 0, nil, fmt.Errorf("invalid task number: %s", first)
	}
	num, err := strconv.Atoi(first)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid task number: %s", first)
	}
	return num, args[1:], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
