// Package deckfile loads deck descriptions written in YAML:
//
//	config:            # optional, see shelldeck.Config
//	  level: strict
//	statements:
//	  - headl: {text: PLATE VERIFICATION}
//	  - shsec: {pa: PLATE, hs: [1, 4], fs: [1, 2]}
//	  - basco: {id: 1, loads: [{lf: 1.0, type: ELC, case: 1}]}
//
// Every list entry is a single-key mapping from statement tag to fields.
package deckfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/statements"
	"gopkg.in/yaml.v3"
)

// Deck is a decoded deck description.
type Deck struct {
	// Config is nil when the document has no config section.
	Config     *shelldeck.Config
	Statements []shelldeck.Statement
}

type document struct {
	Config     *yaml.Node  `yaml:"config"`
	Statements []yaml.Node `yaml:"statements"`
}

// Load decodes one YAML document. Unknown tags fail with
// *shelldeck.UnroutableError; unknown fields are rejected.
func Load(r io.Reader) (*Deck, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Deck{}, nil
		}
		return nil, fmt.Errorf("deckfile: %w", err)
	}
	deck := &Deck{}
	if doc.Config != nil {
		var buf bytes.Buffer
		if err := encodeNode(&buf, doc.Config); err != nil {
			return nil, fmt.Errorf("deckfile: config: %w", err)
		}
		cfg, err := shelldeck.LoadConfig(&buf)
		if err != nil {
			return nil, fmt.Errorf("deckfile: line %d: %w", doc.Config.Line, err)
		}
		deck.Config = &cfg
	}
	for i := range doc.Statements {
		st, err := decodeStatement(&doc.Statements[i])
		if err != nil {
			return nil, fmt.Errorf("deckfile: statement %d: %w", i, err)
		}
		deck.Statements = append(deck.Statements, st)
	}
	return deck, nil
}

func decodeStatement(n *yaml.Node) (shelldeck.Statement, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, fmt.Errorf("line %d: expected a single-key mapping {TAG: {...}}", n.Line)
	}
	key, body := n.Content[0], n.Content[1]
	st, ok := statements.New(key.Value)
	if !ok {
		return nil, &shelldeck.UnroutableError{Tag: shelldeck.Tag(key.Value)}
	}
	if body.Kind == yaml.ScalarNode && body.Tag == "!!null" {
		return st, nil
	}
	if err := decodeStrict(body, st); err != nil {
		return nil, fmt.Errorf("line %d: %s: %w", body.Line, st.Tag(), err)
	}
	return st, nil
}

// decodeStrict re-encodes the node so that KnownFields applies to it;
// Node.Decode does not reject unknown keys.
func decodeStrict(n *yaml.Node, out any) error {
	var buf bytes.Buffer
	if err := encodeNode(&buf, n); err != nil {
		return err
	}
	dec := yaml.NewDecoder(&buf)
	dec.KnownFields(true)
	return dec.Decode(out)
}

func encodeNode(w io.Writer, n *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(n); err != nil {
		return err
	}
	return enc.Close()
}

// Build loads r and adds every statement to a new model over the statement
// catalog, in document order. A config section in the document is applied
// first; opts given by the caller apply after it.
func Build(r io.Reader, opts ...shelldeck.Option) (*shelldeck.Model, error) {
	deck, err := Load(r)
	if err != nil {
		return nil, err
	}
	if deck.Config != nil {
		opts = append([]shelldeck.Option{shelldeck.WithConfig(*deck.Config)}, opts...)
	}
	m := shelldeck.New(statements.Catalog(), opts...)
	if err := m.AddAll(deck.Statements...); err != nil {
		return m, err
	}
	return m, nil
}
