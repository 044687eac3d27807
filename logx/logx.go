package logx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		if i := strings.LastIndexByte(file, '/'); i >= 0 {
			file = file[i+1:]
		}
		return fmt.Sprintf("%-20s", fmt.Sprintf("%s:%d", file, line))
	}
}

// New returns a console logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Caller().Logger()
}

// ParseLevel accepts zerolog level names and "off".
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.EqualFold(s, "off") {
		return zerolog.Disabled, nil
	}
	return zerolog.ParseLevel(strings.ToLower(s))
}
