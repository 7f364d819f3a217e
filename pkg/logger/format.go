package logger

import "fmt"

// Output(2, ...) keeps Lshortfile pointing at the caller rather than this package.
func sprintf(format string, v ...interface{}) string {
	return fmt.Sprintf(format, v...)
}

func sprintln(v ...interface{}) string {
	return fmt.Sprintln(v...)
}
