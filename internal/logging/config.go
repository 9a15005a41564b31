package logging

import (
	"fmt"
	"os"
	"strings"
)

// Comma-separated "tag=level" directives. A bare level sets the default,
// e.g. LOGLEVEL=warn,localsink=debug.
const envVar = "LOGLEVEL"

type tagLevel struct {
	tag   string
	level Level
}

var tagLevels []tagLevel

func init() {
	def, tags, errs := parseDirectives(os.Getenv(envVar), defaultLevel)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Invalid %s directive: %s\n", envVar, err)
	}
	defaultLevel = def
	tagLevels = tags
	DefaultLogger.Level = defaultLevel
}

func parseDirectives(s string, def Level) (Level, []tagLevel, []error) {
	var tags []tagLevel
	var errs []error
	for _, d := range strings.Split(s, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		v := strings.SplitN(d, "=", 2)
		level, err := ParseLevel(v[len(v)-1])
		if err != nil {
			errs = append(errs, fmt.Errorf("'%s': %v", d, err))
			continue
		}
		if len(v) == 1 {
			def = level
		} else {
			tags = append(tags, tagLevel{v[0], level})
		}
	}
	return def, tags, errs
}

func determineLevel(tag string, fallback Level) Level {
	for _, e := range tagLevels {
		if e.tag == tag {
			return e.level
		}
	}
	return fallback
}
