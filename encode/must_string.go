package encode

import (
	"strings"

	"github.com/signadot/ytree/tree"
)

// MustString encodes t and returns the result without surrounding space. It
// panics on error.
func MustString(t *tree.Tree, opts ...EncodeOption) string {
	d, err := EncodeBytes(t, opts...)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(string(d))
}
