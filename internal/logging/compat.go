package logging

import (
	"fmt"
	"os"
)

// Fatalf logs at Error level and exits. Meant for command line tools only;
// library code returns errors instead.
func (log *Logger) Fatalf(format string, v ...interface{}) {
	log.Log(Error, 1, format, v...)
	os.Exit(1)
}

func (log *Logger) Printf(format string, v ...interface{}) {
	log.Log(Info, 1, format, v...)
}

func (log *Logger) Println(v ...interface{}) {
	log.Log(Info, 1, fmt.Sprintln(v...))
}
