package statements

import (
	"regexp"
	"strconv"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/render"
	"github.com/reoring/shelldeck/rules"
)

const TagCMPEC shelldeck.Tag = "CMPEC"

// CMPEC is a concrete material property set per EN 1992.
type CMPEC struct {
	ID  int      `yaml:"id"`
	GR  string   `yaml:"gr"` // grade, e.g. B35
	RH  *float64 `yaml:"rh"`
	FCK *float64 `yaml:"fck"`
	ECM *float64 `yaml:"ecm"`
	FCN *float64 `yaml:"fcn"`
	FTM *float64 `yaml:"ftm"`
	ACC *float64 `yaml:"acc"`
	EXP *float64 `yaml:"exp"`
	EC2 *float64 `yaml:"ec2"`
	ECU *float64 `yaml:"ecu"`
	MFU *float64 `yaml:"mfu"`
	MFA *float64 `yaml:"mfa"`
	MFS *float64 `yaml:"mfs"`
	K1C *float64 `yaml:"k1c"`
	K1T *float64 `yaml:"k1t"`
	K2  *float64 `yaml:"k2"`
	COT *float64 `yaml:"cot"`
	TSP *float64 `yaml:"tsp"`
	TSD *float64 `yaml:"tsd"`
	LA  *int     `yaml:"la"`
	PA  string   `yaml:"pa"`
	FS  *[2]int  `yaml:"fs"`
	HS  *[2]int  `yaml:"hs"`
}

var cmpecLayout = render.NewLayout("CMPEC",
	render.Field{Key: "ID", Kind: render.KindInt},
	render.Field{Key: "GR", Kind: render.KindString},
	render.Field{Key: "RH", Kind: render.KindFloat},
	render.Field{Key: "FCK", Kind: render.KindFloat},
	render.Field{Key: "ECM", Kind: render.KindFloat},
	render.Field{Key: "FCN", Kind: render.KindFloat},
	render.Field{Key: "FTM", Kind: render.KindFloat},
	render.Field{Key: "ACC", Kind: render.KindFloat},
	render.Field{Key: "EXP", Kind: render.KindFloat},
	render.Field{Key: "EC2", Kind: render.KindFloat},
	render.Field{Key: "ECU", Kind: render.KindFloat},
	render.Field{Key: "MFU", Kind: render.KindFloat},
	render.Field{Key: "MFA", Kind: render.KindFloat},
	render.Field{Key: "MFS", Kind: render.KindFloat},
	render.Field{Key: "K1C", Kind: render.KindFloat},
	render.Field{Key: "K1T", Kind: render.KindFloat},
	render.Field{Key: "K2", Kind: render.KindFloat},
	render.Field{Key: "COT", Kind: render.KindFloat},
	render.Field{Key: "TSP", Kind: render.KindFloat},
	render.Field{Key: "TSD", Kind: render.KindFloat},
	render.Field{Key: "LA", Kind: render.KindInt},
	render.Field{Key: "PA", Kind: render.KindString},
	render.Field{Key: "FS", Kind: render.KindPair},
	render.Field{Key: "HS", Kind: render.KindPair},
)

func (*CMPEC) Tag() shelldeck.Tag { return TagCMPEC }
func (c *CMPEC) Identity() any    { return c.ID }

func (c *CMPEC) Record() render.Record {
	return cmpecLayout.Of(c.ID, c.GR, c.RH, c.FCK, c.ECM, c.FCN, c.FTM, c.ACC, c.EXP, c.EC2, c.ECU,
		c.MFU, c.MFA, c.MFS, c.K1C, c.K1T, c.K2, c.COT, c.TSP, c.TSD, c.LA, c.PA, c.FS, c.HS)
}

var gradePattern = regexp.MustCompile(`^B(\d{2})$`)

func cmpecRules() []shelldeck.Rule {
	return []shelldeck.Rule{
		{
			ID: "CMPEC-ID-001", Tag: TagCMPEC, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.IntRange("id", 1, 99999999, func(c *CMPEC) *int { return &c.ID })),
		},
		{
			ID: "CMPEC-LOC-001", Tag: TagCMPEC, Scope: shelldeck.ScopeInstance,
			Description: "LA excludes PA/FS/HS",
			Check: rules.Typed(func(ctx *shelldeck.Context, c *CMPEC) shelldeck.Issues {
				if c.LA != nil && (c.PA != "" || c.FS != nil || c.HS != nil) {
					return shelldeck.Issues{ctx.Loc().Field("la").Issue(shelldeck.CodeExclusive, "LA cannot be combined with PA, FS or HS")}
				}
				return nil
			}),
		},
		{
			ID: "CMPEC-RH-001", Tag: TagCMPEC, Scope: shelldeck.ScopeInstance,
			Check: rules.Typed(rules.FloatRange("rh", 1150, 2150, func(c *CMPEC) *float64 { return c.RH })),
		},
		{
			ID: "CMPEC-PA-REF-001", Tag: TagCMPEC, Scope: shelldeck.ScopeModel,
			Check: rules.Typed(rules.PartExists("pa", TagSHSEC, func(c *CMPEC) string { return c.PA })),
		},
		{
			ID: "CMPEC-GR-001", Tag: TagCMPEC, Scope: shelldeck.ScopeInstance, StrictOnly: true,
			Description: "grade is B12 to B90",
			Check: rules.Typed(func(ctx *shelldeck.Context, c *CMPEC) shelldeck.Issues {
				if c.GR == "" {
					return nil
				}
				m := gradePattern.FindStringSubmatch(c.GR)
				if m != nil {
					if n, _ := strconv.Atoi(m[1]); n >= 12 && n <= 90 {
						return nil
					}
				}
				it := ctx.Loc().Field("gr").Issue(shelldeck.CodeInvalidValue,
					rules.Message(shelldeck.CodeInvalidValue, "field", "GR", "allowed", "B12..B90", "got", c.GR), "got", c.GR)
				it.Hint = "use a grade such as B35"
				return shelldeck.Issues{it}
			}),
		},
	}
}
