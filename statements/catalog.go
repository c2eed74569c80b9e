package statements

import (
	"strings"

	shelldeck "github.com/reoring/shelldeck"
)

// specs is the routing table. Its order is the output order of the deck.
var specs = []shelldeck.TypeSpec{
	{Tag: TagHEADL, ID: shelldeck.IDSequence},
	{Tag: TagRFILE, ID: shelldeck.IDAlnum(32)},
	{Tag: TagSHSEC, ID: shelldeck.IDComposite, Secondary: shsecPart},
	{Tag: TagSHAXE, ID: shelldeck.IDComposite},
	{Tag: TagCMPEC, ID: shelldeck.IDInteger},
	{Tag: TagRMPEC, ID: shelldeck.IDInteger},
	{Tag: TagRMPNS, ID: shelldeck.IDInteger},
	{Tag: TagRETYP, ID: shelldeck.IDInteger},
	{Tag: TagRELOC, ID: shelldeck.IDAlnum(4)},
	{Tag: TagDESEC, ID: shelldeck.IDComposite, Secondary: desecPart},
	{Tag: TagXTFIL, ID: shelldeck.IDComposite},
	{Tag: TagLOADC, ID: shelldeck.IDComposite},
	{Tag: TagBASCO, ID: shelldeck.IDInteger},
	{Tag: TagGRECO, ID: shelldeck.IDAlnum(1)},
	{Tag: TagEXECD, ID: shelldeck.IDSequence},
}

var catalog = shelldeck.MustCatalog(specs...)

// Catalog returns the routing table for every statement type of this
// package.
func Catalog() *shelldeck.Catalog { return catalog }

// Rules lists every statement rule in registration order.
func Rules() []shelldeck.Rule {
	var all []shelldeck.Rule
	for _, fn := range []func() []shelldeck.Rule{
		headlRules, rfileRules, shsecRules, shaxeRules, cmpecRules, rmpecRules,
		retypRules, relocRules, desecRules, xtfilRules, loadcRules, bascoRules,
		grecoRules, execdRules,
	} {
		all = append(all, fn()...)
	}
	return all
}

// Register adds every statement rule to reg. Call it once per registry.
func Register(reg *shelldeck.Registry) error {
	for _, r := range Rules() {
		if err := reg.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// New returns an empty statement for tag (case-insensitive), or false when
// the tag is not known.
func New(tag string) (shelldeck.Statement, bool) {
	switch shelldeck.Tag(strings.ToUpper(strings.TrimSpace(tag))) {
	case TagHEADL:
		return &HEADL{}, true
	case TagRFILE:
		return &RFILE{}, true
	case TagSHSEC:
		return &SHSEC{}, true
	case TagSHAXE:
		return &SHAXE{}, true
	case TagCMPEC:
		return &CMPEC{}, true
	case TagRMPEC:
		return &RMPEC{}, true
	case TagRMPNS:
		return &RMPNS{}, true
	case TagRETYP:
		return &RETYP{}, true
	case TagRELOC:
		return &RELOC{}, true
	case TagDESEC:
		return &DESEC{}, true
	case TagXTFIL:
		return &XTFIL{}, true
	case TagLOADC:
		return &LOADC{}, true
	case TagBASCO:
		return &BASCO{}, true
	case TagGRECO:
		return &GRECO{}, true
	case TagEXECD:
		return &EXECD{}, true
	}
	return nil, false
}
