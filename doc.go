package shelldeck

// Package shelldeck assembles analysis decks for a shell-structure design tool:
//
// - Statements are flat typed records identified by a type tag and an identity key
// - A Model routes every statement into the container registered for its tag
// - Rules are registered per tag and scope (instance, container, model) and run on add/finalize
// - The finalized model is serialized as line-oriented text, one statement per line
//
// Design policy:
// - Keep only public APIs in the root package; statement types live under statements/.
// - Field rendering is declarative and lives under render/.
// - Rule helpers live under rules/, the YAML deck loader under deckfile/, the CLI under cmd/sddeck.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	reg := shelldeck.NewRegistry()
//	statements.Register(reg)
//	m := shelldeck.New(statements.Catalog(), shelldeck.WithRegistry(reg))
//	if err := m.Add(&statements.SHSEC{PA: "PLATE", HS: &[2]int{1, 4}}); err != nil { ... }
//	_, err := m.WriteTo(os.Stdout)
//
