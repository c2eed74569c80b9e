package shelldeck

import (
	"fmt"
	"strconv"
	"strings"
)

// Location builds issue locations in a chain-safe way, e.g.
// BASCO[101].load_cases[3].lc. The zero value is the model root.
type Location struct {
	parts []string
}

// At returns the location of one stored statement.
func At(tag Tag, key Key) Location {
	if key == "" {
		return Location{parts: []string{string(tag)}}
	}
	return Location{parts: []string{string(tag) + "[" + string(key) + "]"}}
}

func (l Location) Field(name string) Location {
	if name == "" {
		return l
	}
	return Location{parts: append(append([]string{}, l.parts...), "."+name)}
}

func (l Location) Index(i int) Location {
	return Location{parts: append(append([]string{}, l.parts...), "["+strconv.Itoa(i)+"]")}
}

func (l Location) String() string {
	if len(l.parts) == 0 {
		return "model"
	}
	return strings.TrimPrefix(strings.Join(l.parts, ""), ".")
}

// Issue creates an issue at l. kv are alternating param keys and values.
func (l Location) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Location: l.String(), Code: code, Message: msg, Params: m}
}

// Warn is Issue with warn severity.
func (l Location) Warn(code, msg string, kv ...any) Issue {
	it := l.Issue(code, msg, kv...)
	it.Severity = SeverityWarn
	return it
}
