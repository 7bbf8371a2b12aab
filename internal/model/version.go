package model

import (
	"strconv"
	"strings"
)

// VersionCheck reports whether the dotted version current is at least target.
// Missing or non-numeric parts count as zero; an empty current version never
// satisfies the check.
func VersionCheck(current, target string) bool {
	if current == "" {
		return false
	}

	this := strings.Split(current, ".")
	that := strings.Split(target, ".")

	for i := range that {
		var a, b int
		if i < len(this) {
			a, _ = strconv.Atoi(this[i])
		}
		b, _ = strconv.Atoi(that[i])

		if a == b {
			continue
		}
		return a > b
	}

	return true
}
