package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Move  bool
	Emit  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("YT_DEBUG_PARSE")
	d.Move = boolEnv("YT_DEBUG_MOVE")
	d.Emit = boolEnv("YT_DEBUG_EMIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Move() bool {
	return d.Move
}
func Emit() bool {
	return d.Emit
}

// Set overrides the flags read from the environment.
func Set(parse, move, emit bool) {
	d.Parse = parse
	d.Move = move
	d.Emit = emit
}
