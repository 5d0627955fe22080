package encode

import (
	"strings"

	"github.com/fatih/color"
)

// Class is what a colored token belongs to.
type Class int

const (
	NullClass Class = iota
	BoolClass
	NumberClass
	StringClass
	MapClass
	SeqClass
	AliasClass
)

func Classes() []Class {
	return []Class{NullClass, BoolClass, NumberClass, StringClass, MapClass, SeqClass, AliasClass}
}

type Colorable struct {
	Class Class
	Attr  ColorAttr
}

type ColorAttr int

const (
	KeyColor ColorAttr = iota
	ValueColor
	TagColor
	AnchorColor
	SepColor
	LiteralColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, c := range Classes() {
		able := Colorable{Class: c, Attr: TagColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = AnchorColor
		colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = KeyColor
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Class = NumberClass
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Class = NullClass
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Class = BoolClass
	colors.Map[able] = color.CyanString

	able.Class = AliasClass
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()

	able.Class = MapClass
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	able.Class = StringClass
	able.Attr = ValueColor
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Attr = LiteralColor
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(cl Class, a ColorAttr, s string) string {
	return c.Get(cl, a)(s)
}

func (c *Colors) Get(cl Class, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Class: cl, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
