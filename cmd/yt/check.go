package main

import (
	"fmt"
	"strings"

	"github.com/signadot/ytree/encode"
	"github.com/signadot/ytree/parse"
	"github.com/signadot/ytree/tree"

	"github.com/scott-cotton/cli"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	failed := 0
	err = cfg.eachFile(cc, args, func(file string, t *tree.Tree) error {
		diff, err := checkTree(t, encode.EncodeFormat(cfg.outFormat()))
		if err != nil {
			theLog.Error("check failed", "file", file, "error", err)
			failed++
			return nil
		}
		if diff != "" {
			theLog.Error("output does not read back the same", "file", file)
			fmt.Fprint(cc.Out, diff)
			failed++
			return nil
		}
		fmt.Fprintf(cc.Out, "%s: ok\n", file)
		return nil
	})
	if err != nil {
		return err
	}
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkTree verifies the links of t and that its output, parsed again,
// gives the same output. It returns a line diff of the two outputs if not.
func checkTree(t *tree.Tree, opts ...encode.EncodeOption) (string, error) {
	if err := t.Check(); err != nil {
		return "", err
	}
	first, err := encode.EncodeBytes(t, opts...)
	if err != nil {
		return "", err
	}
	again, err := parse.Parse(first, parse.ParseFormat(encode.FormatFromOpts(opts...)))
	if err != nil {
		return "", fmt.Errorf("output does not parse: %w", err)
	}
	second, err := encode.EncodeBytes(again, opts...)
	if err != nil {
		return "", err
	}
	if string(first) == string(second) {
		return "", nil
	}
	return lineDiff(string(first), string(second)), nil
}

func lineDiff(from, to string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	sb := &strings.Builder{}
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffDelete:
			prefix = "-"
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			sb.WriteString(prefix + ln)
			if !strings.HasSuffix(ln, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
