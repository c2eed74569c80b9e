package statements

import (
	"fmt"
	"path/filepath"
	"strings"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagRFILE shelldeck.Tag = "RFILE"

// RFILE names an FE result file to read.
type RFILE struct {
	PRE string `yaml:"pre"` // folder
	FNM string `yaml:"fnm"` // basename
	SUF string `yaml:"suf"`
	TFI string `yaml:"tfi"`
	LFI string `yaml:"lfi"`
	LUN *int   `yaml:"lun"` // length unit in mm
	FUN *int   `yaml:"fun"` // force unit in N
	TYP string `yaml:"typ"` // element type selection
}

var rfileLayout = render.NewLayout("RFILE",
	render.Field{Key: "PRE", Kind: render.KindString},
	render.Field{Key: "FNM", Kind: render.KindString},
	render.Field{Key: "SUF", Kind: render.KindString},
	render.Field{Key: "TFI", Kind: render.KindString},
	render.Field{Key: "LFI", Kind: render.KindString},
	render.Field{Key: "LUN", Kind: render.KindInt, Default: 1},
	render.Field{Key: "FUN", Kind: render.KindInt, Default: 1},
	render.Field{Key: "TYP", Kind: render.KindString},
)

func (*RFILE) Tag() shelldeck.Tag { return TagRFILE }
func (r *RFILE) Identity() any    { return r.FNM }

func (r *RFILE) Record() render.Record {
	pre := r.PRE
	if strings.ContainsAny(pre, " \t") {
		pre = fmt.Sprintf("%q", pre)
	}
	return rfileLayout.Of(pre, r.FNM, r.SUF, r.TFI, r.LFI, r.LUN, r.FUN, r.TYP)
}

// Path is the result file location, PRE/FNM.SUF.
func (r *RFILE) Path() string {
	name := r.FNM
	if r.SUF != "" {
		name += "." + r.SUF
	}
	if r.PRE == "" {
		return name
	}
	return filepath.Join(r.PRE, name)
}

func rfileRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "RFILE-FNM-001", Tag: TagRFILE, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.And(
				rules.MaxLen("fnm", 32, func(r *RFILE) string { return r.FNM }),
				rules.OneOf("typ", []string{"SHE", "SOL", "ALL"}, func(r *RFILE) string { return r.TYP }),
			)),
		},
		{
			ID: "RFILE-FILE-001", Tag: TagRFILE, Scope: shelldeck.ScopeModel,
			Description: "the referenced result file exists",
			Check: rules.Typed(func(ctx *shelldeck.Context, r *RFILE) shelldeck.Issues {
				path := r.Path()
				if _, err := ctx.Stat(path); err == nil {
					return nil
				}
				it := ctx.Issue(shelldeck.CodeFileMissing, rules.Message(shelldeck.CodeFileMissing, "path", path), "path", path)
				it.Hint = "check PRE, FNM and SUF"
				return shelldeck.Issues{it}
			}),
		},
	}
}
