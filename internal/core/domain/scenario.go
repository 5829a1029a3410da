package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Operation names a benchmarked mutation or construction.
type Operation string

const (
	// OpFrom builds a value from text.
	OpFrom Operation = "from"
	// OpClone clones an existing value.
	OpClone Operation = "clone"
	// OpPush appends single characters.
	OpPush Operation = "push"
	// OpPushStr appends a string.
	OpPushStr Operation = "push_str"
	// OpRemove removes single characters.
	OpRemove Operation = "remove"
	// OpSharedRead clones one value across goroutines and reads it concurrently.
	OpSharedRead Operation = "shared_read"
)

// Operations lists every operation in reporting order.
var Operations = []Operation{OpFrom, OpClone, OpPush, OpPushStr, OpRemove, OpSharedRead}

// ParseOperation resolves an operation name.
func ParseOperation(s string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == strings.ToLower(s) {
			return op, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrUnknownOperation, "cannot parse operation"), "operation", s)
}

// SizeClass groups input texts by length.
type SizeClass string

const (
	// SizeSmall covers texts that fit inline.
	SizeSmall SizeClass = "small"
	// SizeMedium covers texts of one to two kilobytes.
	SizeMedium SizeClass = "medium"
	// SizeLarge covers texts of about a megabyte.
	SizeLarge SizeClass = "large"
)

// SizeClasses lists every size class in reporting order.
var SizeClasses = []SizeClass{SizeSmall, SizeMedium, SizeLarge}

// ParseSizeClass resolves a size class name.
func ParseSizeClass(s string) (SizeClass, error) {
	for _, sc := range SizeClasses {
		if string(sc) == strings.ToLower(s) {
			return sc, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrUnknownSizeClass, "cannot parse size class"), "size", s)
}

// smallMax mirrors faststring.InlineCapacity; domain does not import the library.
const smallMax = 15

// TextRange returns the inclusive byte-length range of texts in the class.
func (s SizeClass) TextRange() (minLen, maxLen int) {
	switch s {
	case SizeSmall:
		return 1, smallMax
	case SizeMedium:
		return 1024, 2047
	case SizeLarge:
		return 1 << 20, 1<<20 + 1023
	default:
		return 0, 0
	}
}

// DefaultIterations returns how many times a scenario of the class repeats its operation.
func (s SizeClass) DefaultIterations() int {
	switch s {
	case SizeSmall:
		return 100_000
	case SizeMedium:
		return 10_000
	case SizeLarge:
		return 1_000
	default:
		return 0
	}
}

// Scenario is one operation measured on one size class.
type Scenario struct {
	Op         Operation
	Size       SizeClass
	Iterations int
}

// Name returns the scenario key, e.g. "push_str/medium".
func (s Scenario) Name() string {
	return string(s.Op) + "/" + string(s.Size)
}

// Scenarios returns the cross product of ops and sizes in the given order.
// A non-positive entry in iterations falls back to the class default.
func Scenarios(ops []Operation, sizes []SizeClass, iterations map[SizeClass]int) []Scenario {
	out := make([]Scenario, 0, len(ops)*len(sizes))
	for _, op := range ops {
		for _, size := range sizes {
			n := iterations[size]
			if n <= 0 {
				n = size.DefaultIterations()
			}
			out = append(out, Scenario{Op: op, Size: size, Iterations: n})
		}
	}
	return out
}

// ParseOperations resolves operation names, dropping duplicates and
// returning them in canonical order.
func ParseOperations(names []string) ([]Operation, error) {
	seen := make(map[Operation]bool, len(names))
	for _, name := range names {
		op, err := ParseOperation(name)
		if err != nil {
			return nil, err
		}
		seen[op] = true
	}
	return slices.DeleteFunc(slices.Clone(Operations), func(op Operation) bool {
		return !seen[op]
	}), nil
}

// ParseSizes resolves size class names, dropping duplicates and returning
// them in canonical order.
func ParseSizes(names []string) ([]SizeClass, error) {
	seen := make(map[SizeClass]bool, len(names))
	for _, name := range names {
		size, err := ParseSizeClass(name)
		if err != nil {
			return nil, err
		}
		seen[size] = true
	}
	return slices.DeleteFunc(slices.Clone(SizeClasses), func(size SizeClass) bool {
		return !seen[size]
	}), nil
}
