package model

import (
	"strconv"
	"time"
)

// FormatElapsed 以秒为单位输出耗时，精度为毫秒，例如 "0.342s"、"1s"
func FormatElapsed(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Milliseconds())/1000, 'f', -1, 64) + "s"
}
