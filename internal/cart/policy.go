package cart

import (
	"fmt"
	"strings"
)

// PersistPolicy decides what a mutation does when the storage write fails.
type PersistPolicy int

const (
	// PersistWarn keeps the in-memory cart authoritative and logs the failure.
	PersistWarn PersistPolicy = iota
	// PersistFail rolls the mutation back and returns the error.
	PersistFail
)

func (p PersistPolicy) String() string {
	switch p {
	case PersistWarn:
		return "warn"
	case PersistFail:
		return "fail"
	default:
		return fmt.Sprintf("PersistPolicy(%d)", int(p))
	}
}

func ParsePersistPolicy(s string) (PersistPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn":
		return PersistWarn, nil
	case "fail":
		return PersistFail, nil
	default:
		return 0, fmt.Errorf("persist policy[%s] is not valid", s)
	}
}
