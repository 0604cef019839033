package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Typeset renders a TeX expression to SVG markup using tex2svg from the
// MathJax CLI tools. The output is a standalone <svg> fragment suitable
// for inlining into a larger document.
//
// This is a passthrough: no fallback rendering is attempted and the
// tool's own error is surfaced verbatim.
// Requires mathjax-node-cli: npm install -g mathjax-node-cli.
func Typeset(expr string) ([]byte, error) {
	if _, err := exec.LookPath("tex2svg"); err != nil {
		return nil, fmt.Errorf("TeX rendering requires mathjax-node-cli. Install with:\n  npm install -g mathjax-node-cli")
	}

	cmd := exec.Command("tex2svg", expr)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("tex2svg: %v: %s", err, errBuf.String())
	}
	return bytes.TrimSpace(out.Bytes()), nil
}

// Underline wraps expr in a TeX underline command unless it already
// carries one.
func Underline(expr string) string {
	if strings.HasPrefix(expr, `\underline{`) {
		return expr
	}
	return `\underline{` + expr + `}`
}
