package domain

import (
	"strconv"
	"strings"
)

// CoalesceStr returns the first non-blank string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// intPtrString formats an optional int, returning "" for nil.
func intPtrString(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
