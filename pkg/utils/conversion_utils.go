package utils

import "strconv"

// StrToInt64 parses a decimal string, as used for path and query IDs.
func StrToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
