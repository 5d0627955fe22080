package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/ytree/diag"
)

var (
	ErrComplexKey = fmt.Errorf("%w: non-scalar key", diag.ErrMalformedInput)
	ErrJSON       = fmt.Errorf("%w: invalid json", diag.ErrMalformedInput)
)

var yamlLine = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// malformed converts an error from the yaml decoder.
func malformed(name string, err error) *diag.Error {
	msg := err.Error()
	loc := diag.Location{Name: name}
	if m := yamlLine.FindStringSubmatch(msg); m != nil {
		loc.Line, _ = strconv.Atoi(m[1])
		msg = m[2]
	} else {
		msg = strings.TrimPrefix(msg, "yaml: ")
	}
	return diag.At(loc, diag.ErrMalformedInput, "%s", msg)
}

// jsonError converts an error from encoding/json over src.
func jsonError(name string, src []byte, err error) *diag.Error {
	loc := diag.Location{Name: name}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		loc.Line, loc.Col = lineCol(src, int(se.Offset))
	}
	return diag.At(loc, ErrJSON, "%s", err.Error())
}

func lineCol(src []byte, off int) (int, int) {
	off = min(off, len(src))
	line, col := 1, 1
	for _, c := range src[:off] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
