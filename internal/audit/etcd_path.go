package audit

import (
	"fmt"
	"strings"
	"time"
)

func hostPrefix(prefix, host string) string {
	prefix = strings.TrimRight(prefix, "/")
	return fmt.Sprintf("%s/%s/", prefix, host)
}

// entryKey zero-pads the timestamp so lexical key order is chronological.
func entryKey(prefix, host string, at time.Time) string {
	return fmt.Sprintf("%s%020d", hostPrefix(prefix, host), at.UnixNano())
}
