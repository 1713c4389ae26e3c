package sfc

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// ScopeIDPrefix is prepended to every scope id.
const ScopeIDPrefix = "data-v-"

// ScopeID derives the scope id of a component from its filename only.
// The same filename always yields the same id.
func ScopeID(filename string) string {
	return ScopeIDPrefix + HashSum(filename)
}

// HashSum returns the 8-digit hexadecimal hash-sum of a string value, the
// same fold the JavaScript toolchain uses for scope ids.
func HashSum(s string) string {
	var h int64
	h = fold(h, "")
	h = fold(h, "[object String]")
	h = fold(h, "string")
	h = fold(h, s)

	hex := strconv.FormatInt(h, 16)
	if len(hex) < 8 {
		hex = strings.Repeat("0", 8-len(hex)) + hex
	}
	return hex
}

// fold mixes text into hash using 32-bit wrapping arithmetic over UTF-16
// code units. A negative result is doubled and negated, so the returned
// value may exceed the int32 range.
func fold(hash int64, text string) int64 {
	if text == "" {
		return hash
	}
	for _, chr := range utf16.Encode([]rune(text)) {
		shifted := int64(int32(uint32(toInt32(hash)) << 5))
		hash = toInt32(shifted - hash + int64(chr))
	}
	if hash < 0 {
		return hash * -2
	}
	return hash
}

func toInt32(v int64) int64 {
	return int64(int32(uint32(v)))
}
