package commands

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapverb/internal/cli/output"
	"github.com/leapstack-labs/leapverb/internal/engine"
	"github.com/leapstack-labs/leapverb/internal/state"
	"github.com/leapstack-labs/leapverb/pkg/world"
	"github.com/spf13/cobra"
)

// WorldOutput is the JSON form of world list.
type WorldOutput struct {
	Current string       `json:"current_room"`
	Rooms   []RoomInfo   `json:"rooms"`
	Objects []ObjectInfo `json:"objects"`
}

// RoomInfo describes a room.
type RoomInfo struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits"`
}

// ObjectInfo describes an object.
type ObjectInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Words    []string `json:"words"`
	Location string   `json:"location"`
	Fixed    bool     `json:"fixed"`
}

// NewWorldCommand creates the world command group.
func NewWorldCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "world",
		Short: "Manage the world store",
	}
	cmd.AddCommand(newWorldSeedCommand(), newWorldListCommand())
	return cmd
}

func newWorldSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Load a world YAML into the world store",
		Long: `Replace the content of the world store with the rooms and objects of a
world YAML file. Without an argument the configured world_seed is used.

Any progress saved in the store is lost.`,
		Example: `  leapverb world seed
  leapverb world seed worlds/castle.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			path := cc.Cfg.WorldSeed
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no world file given and world_seed is not configured")
			}

			store, err := openStore(cc)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			wf, err := engine.SeedStore(cmd.Context(), store, path)
			if err != nil {
				return err
			}

			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(map[string]any{
					"file":    path,
					"start":   wf.Start,
					"rooms":   len(wf.Rooms),
					"objects": len(wf.Objects),
				})
			}
			cc.Renderer.Success(fmt.Sprintf("Seeded %d rooms and %d objects from %s", len(wf.Rooms), len(wf.Objects), path))
			return nil
		},
	}
}

func newWorldListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rooms and objects in the world store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			store, err := openStore(cc)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out, err := collectWorld(cmd.Context(), store)
			if err != nil {
				return err
			}
			renderWorld(cc.Renderer, out)
			return nil
		},
	}
}

func openStore(cc *CommandContext) (*state.Store, error) {
	if err := ensureParentDir(cc.Cfg); err != nil {
		return nil, err
	}
	return engine.OpenStore(cc.Cfg.WorldDriver, cc.Cfg.World, cc.Logger)
}

func collectWorld(ctx context.Context, store *state.Store) (*WorldOutput, error) {
	out := &WorldOutput{Rooms: []RoomInfo{}, Objects: []ObjectInfo{}}

	if room, err := store.CurrentRoom(ctx); err == nil {
		out.Current = room.ID
	}

	rooms, err := store.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rooms {
		out.Rooms = append(out.Rooms, RoomInfo{ID: r.ID, Description: r.Description, Exits: r.Exits})
	}

	objects, err := store.Objects(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range objects {
		out.Objects = append(out.Objects, ObjectInfo{
			ID:       o.ID,
			Name:     o.Name,
			Words:    o.Words(),
			Location: o.Location,
			Fixed:    o.Fixed,
		})
	}
	return out, nil
}

func renderWorld(r *output.Renderer, out *WorldOutput) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(out)
		return
	}
	if len(out.Rooms) == 0 {
		r.Warning("world store is empty; run 'leapverb world seed'")
		return
	}

	r.Header(1, fmt.Sprintf("Rooms (%d)", len(out.Rooms)))
	rows := make([][]string, 0, len(out.Rooms))
	for _, room := range out.Rooms {
		id := room.ID
		if id == out.Current {
			id += " *"
		}
		exits := make([]string, 0, len(room.Exits))
		for _, dir := range slices.Sorted(maps.Keys(room.Exits)) {
			exits = append(exits, dir+"→"+room.Exits[dir])
		}
		rows = append(rows, []string{id, strings.Join(exits, " ")})
	}
	r.Table([]string{"Room", "Exits"}, rows)
	r.Println()

	r.Header(1, fmt.Sprintf("Objects (%d)", len(out.Objects)))
	rows = make([][]string, 0, len(out.Objects))
	for _, o := range out.Objects {
		loc := o.Location
		if loc == world.Inventory {
			loc = "(carried)"
		}
		fixed := ""
		if o.Fixed {
			fixed = "yes"
		}
		rows = append(rows, []string{o.ID, o.Name, strings.Join(o.Words, " "), loc, fixed})
	}
	r.Table([]string{"ID", "Name", "Words", "Location", "Fixed"}, rows)
}
