// Package lint finds grammar and world definitions that load cleanly but
// cannot behave the way their author intended: rules that can never match,
// objects the player can never name apart, rooms nobody can walk into.
//
// # Rule Registration
//
// Rules register themselves from init functions when their package is imported:
//
//	import _ "github.com/leapstack-labs/leapverb/pkg/lint/rules"
//
// # Rule Groups
//
//   - GR (grammar): verbs, synonyms and rule patterns
//   - WD (world): rooms, exits and objects
//
// # Running
//
//	a := lint.NewAnalyzer(lint.NewConfig().Disable("WD03"))
//	diags := a.Analyze(&lint.Project{Grammar: g, Start: "hall", Rooms: rooms})
package lint
