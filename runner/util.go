package runner

import "time"

// NowNano returns the current UTC Unix time in nanoseconds.
func NowNano() int64 {
	return time.Now().UTC().UnixNano()
}

// parkTime returns the duration in nanoseconds until ts, or zero if ts
// has already passed.
func parkTime(ts int64) int64 {
	now := NowNano()
	if ts > now {
		return ts - now
	}
	return 0
}
