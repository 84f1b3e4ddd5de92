package eval

import (
	"strings"
	"unicode"

	"github.com/robert-mccausland/nash/internal/ast"
)

// renderCommand interpolates a backtick command literal's parts and
// word-splits the result into argv, per spec.md §3/§6: splitting uses
// whitespace outside quoted substrings (single and double quotes treated
// identically, SPEC_FULL.md's resolution of that Open Question), and
// each ${expr} chunk's fmt() rendering is inserted as part of the
// current word without being re-split itself.
func (i *Interpreter) renderCommand(env *Environment, cl *ast.CommandLiteral) ([]string, error) {
	var argv []string
	var cur strings.Builder
	haveWord := false
	var quote rune // 0, '\'', or '"'

	flush := func() {
		if haveWord {
			argv = append(argv, cur.String())
			cur.Reset()
			haveWord = false
		}
	}

	for _, part := range cl.Parts {
		if part.Expr != nil {
			v, err := i.evalExpr(env, part.Expr)
			if err != nil {
				return nil, err
			}
			cur.WriteString(v.Fmt())
			haveWord = true
			continue
		}
		for _, r := range part.Text {
			switch {
			case quote != 0:
				if r == quote {
					quote = 0
				} else {
					cur.WriteRune(r)
				}
				haveWord = true
			case r == '\'' || r == '"':
				quote = r
				haveWord = true
			case unicode.IsSpace(r):
				flush()
			default:
				cur.WriteRune(r)
				haveWord = true
			}
		}
	}
	flush()
	return argv, nil
}
