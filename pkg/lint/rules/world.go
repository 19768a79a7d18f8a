package rules

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapverb/pkg/lint"
	"github.com/leapstack-labs/leapverb/pkg/lint/internal/graph"
	"github.com/leapstack-labs/leapverb/pkg/world"
)

// UnreachableRoom flags rooms no chain of exits leads to from the start.
var UnreachableRoom = lint.Define(lint.RuleDef{
	ID:          "WD01",
	Name:        "world.unreachable-room",
	Group:       "world",
	Description: "A room cannot be reached from the start room by following exits.",
	Severity:    lint.SeverityWarning,
	Check:       checkUnreachableRoom,
})

func checkUnreachableRoom(p *lint.Project) []lint.Diagnostic {
	if !p.HasWorld() {
		return nil
	}
	g := roomGraph(p.Rooms)

	held := make(map[string]int)
	for _, o := range p.Objects {
		held[o.Location]++
	}

	var diags []lint.Diagnostic
	for _, id := range g.Unreachable(p.Start) {
		msg := fmt.Sprintf("room %s cannot be reached from %s", id, p.Start)
		if n := held[id]; n > 0 {
			msg += fmt.Sprintf("; %d object(s) there are lost", n)
		}
		diags = append(diags, lint.Diagnostic{Subject: id, Message: msg})
	}
	return diags
}

// DeadEnd flags rooms the player cannot leave.
var DeadEnd = lint.Define(lint.RuleDef{
	ID:          "WD02",
	Name:        "world.dead-end",
	Group:       "world",
	Description: "A room has no exit leading to another room.",
	Severity:    lint.SeverityInfo,
	Check:       checkDeadEnd,
})

func checkDeadEnd(p *lint.Project) []lint.Diagnostic {
	if len(p.Rooms) < 2 {
		return nil
	}
	var diags []lint.Diagnostic
	for _, id := range roomGraph(p.Rooms).GetLeaves() {
		diags = append(diags, lint.Diagnostic{
			Subject: id,
			Message: fmt.Sprintf("room %s has no way out", id),
		})
	}
	return diags
}

// OneWayExit flags exits with no exit back.
var OneWayExit = lint.Define(lint.RuleDef{
	ID:          "WD03",
	Name:        "world.one-way-exit",
	Group:       "world",
	Description: "An exit leads to a room that has no exit back.",
	Severity:    lint.SeverityHint,
	Check:       checkOneWayExit,
})

func checkOneWayExit(p *lint.Project) []lint.Diagnostic {
	if !p.HasWorld() {
		return nil
	}
	g := roomGraph(p.Rooms)
	var diags []lint.Diagnostic
	for _, r := range p.Rooms {
		for _, dir := range sortedDirections(r) {
			dest := r.Exits[dir]
			if dest == r.ID || g.HasEdge(dest, r.ID) {
				continue
			}
			if _, ok := g.GetNode(dest); !ok {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				Subject: r.ID,
				Message: fmt.Sprintf("exit %s from %s to %s has no way back", dir, r.ID, dest),
			})
		}
	}
	return diags
}

// IndistinguishableObjects flags objects described by exactly the same
// words that can be in scope together. No input can pick one over the other.
var IndistinguishableObjects = lint.Define(lint.RuleDef{
	ID:          "WD04",
	Name:        "world.indistinguishable-objects",
	Group:       "world",
	Description: "Two objects share every descriptive word and can meet in scope, so the player can never name one of them.",
	Severity:    lint.SeverityWarning,
	Check:       checkIndistinguishable,
})

func checkIndistinguishable(p *lint.Project) []lint.Diagnostic {
	groups := make(map[string][]*world.Object)
	var order []string
	for _, o := range p.Objects {
		key := wordsKey(o)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], o)
	}

	var diags []lint.Diagnostic
	for _, key := range order {
		objs := groups[key]
		for i := 0; i < len(objs); i++ {
			for j := i + 1; j < len(objs); j++ {
				if !canMeet(objs[i], objs[j]) {
					continue
				}
				diags = append(diags, lint.Diagnostic{
					Subject: objs[i].ID,
					Message: fmt.Sprintf("objects %s and %s are both described only by %q",
						objs[i].ID, objs[j].ID, key),
				})
			}
		}
	}
	return diags
}

// canMeet reports whether two objects can ever be in scope at once: a
// portable object goes wherever the player does.
func canMeet(a, b *world.Object) bool {
	if !a.Fixed || !b.Fixed {
		return true
	}
	return a.Location == b.Location
}

func wordsKey(o *world.Object) string {
	words := slices.Clone(o.Words())
	slices.Sort(words)
	return strings.Join(slices.Compact(words), " ")
}

// roomGraph builds the exit graph. Exits to undefined rooms are skipped;
// the world loader reports those.
func roomGraph(rooms []*world.Room) *graph.Graph {
	g := graph.New()
	for _, r := range rooms {
		g.AddNode(r.ID, r)
	}
	for _, r := range rooms {
		for _, dir := range sortedDirections(r) {
			_ = g.AddEdge(r.ID, r.Exits[dir])
		}
	}
	return g
}

func sortedDirections(r *world.Room) []string {
	dirs := make([]string, 0, len(r.Exits))
	for d := range r.Exits {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}
