package mcp

import (
	"context"
	"fmt"
	"slices"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"itempatch/internal/item"
	"itempatch/internal/patch"
	"itempatch/internal/store"
)

type GetItemInput struct {
	ID int `json:"id" jsonschema:"item type id"`
}

type ListTierInput struct {
	Tier int `json:"tier" jsonschema:"patch tier, 1 to 3"`
}

type PreviewNamesInput struct {
	Level int `json:"level" jsonschema:"name patch level, 0 to 3"`
}

type CommandPatchInput struct {
	Mode     int  `json:"mode" jsonschema:"command patch mode, 0 to 3"`
	Speedrun bool `json:"speedrun,omitempty" jsonschema:"speedrun override"`
}

type SwitchProfileInput struct {
	Profile string `json:"profile" jsonschema:"profile to make current"`
}

type SetSpeedrunOverrideInput struct {
	Enabled bool `json:"enabled" jsonschema:"whether the speedrun override is on"`
}

type GroundItemInput struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	TypeID int `json:"type_id"`
}

type CountGroundItemsInput struct {
	Items   []GroundItemInput `json:"items" jsonschema:"ground items in view"`
	Removed []GroundItemInput `json:"removed,omitempty" jsonschema:"items that have since despawned or been picked up"`
}

type ItemOutput struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Command     string `json:"command"`
	SwapCommand bool   `json:"swap_command"`
}

type PatchOutput struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ListTierOutput struct {
	Tier    int           `json:"tier"`
	Patches []PatchOutput `json:"patches"`
}

type NameWriteOutput struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Tier int    `json:"tier"`
}

type PreviewNamesOutput struct {
	Level  int               `json:"level"`
	Writes []NameWriteOutput `json:"writes"`
}

type CommandPatchOutput struct {
	Mode       int   `json:"mode"`
	Suppressed []int `json:"suppressed"`
	Swapped    []int `json:"swapped"`
}

type SwitchProfileOutput struct {
	Profile          string `json:"profile"`
	NamePatchLevel   int    `json:"name_patch_level"`
	NamesApplied     int    `json:"names_applied"`
	SourceAvailable  bool   `json:"source_available"`
	FailedTiers      []int  `json:"failed_tiers"`
	CommandPatchMode int    `json:"command_patch_mode"`
	CommandsCleared  int    `json:"commands_cleared"`
}

type SpeedrunOverrideOutput struct {
	Enabled bool  `json:"enabled"`
	Swapped []int `json:"swapped"`
}

type GroundStackOutput struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	TypeID int    `json:"type_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

type CountGroundItemsOutput struct {
	Total  int                 `json:"total"`
	Stacks []GroundStackOutput `json:"stacks"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_item",
		Description: "Look up the current name and command of an item type",
	}, s.handleGetItem)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_tier",
		Description: "List the name patches stored in one tier",
	}, s.handleListTier)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "preview_names",
		Description: "Show the ordered name writes a patch level would make",
	}, s.handlePreviewNames)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "command_patch",
		Description: "Show which eat/drink commands a command patch mode removes or swaps",
	}, s.handleCommandPatch)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "switch_profile",
		Description: "Make another profile current and re-apply its patches",
	}, s.handleSwitchProfile)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "set_speedrun_override",
		Description: "Toggle the speedrun override of the current profile",
	}, s.handleSetSpeedrunOverride)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "count_ground_items",
		Description: "Group ground items that look the same and name them",
	}, s.handleCountGroundItems)
}

func (s *Server) handleGetItem(ctx context.Context, req *sdk.CallToolRequest, input GetItemInput) (*sdk.CallToolResult, ItemOutput, error) {
	table := s.items.Table()
	name, ok := table.Name(input.ID)
	if !ok {
		return nil, ItemOutput{}, fmt.Errorf("item %d not found", input.ID)
	}
	command, _ := table.Command(input.ID)
	return nil, ItemOutput{
		ID:          input.ID,
		Name:        name,
		Command:     command,
		SwapCommand: s.items.ShouldSwapCommand(input.ID),
	}, nil
}

func (s *Server) handleListTier(ctx context.Context, req *sdk.CallToolRequest, input ListTierInput) (*sdk.CallToolResult, ListTierOutput, error) {
	tier := store.Tier(input.Tier)
	if err := tier.Validate(); err != nil {
		return nil, ListTierOutput{}, err
	}
	patches, err := s.db.QueryTier(ctx, tier)
	if err != nil {
		return nil, ListTierOutput{}, err
	}

	output := make([]PatchOutput, 0, len(patches))
	for _, p := range patches {
		output = append(output, PatchOutput{ID: p.ItemID, Name: p.Name})
	}
	return nil, ListTierOutput{Tier: input.Tier, Patches: output}, nil
}

func (s *Server) handlePreviewNames(ctx context.Context, req *sdk.CallToolRequest, input PreviewNamesInput) (*sdk.CallToolResult, PreviewNamesOutput, error) {
	level := patch.NormalizeLevel(input.Level)
	data := make(patch.TierData)
	for _, tier := range patch.TiersFor(level) {
		patches, err := s.db.QueryTier(ctx, tier)
		if err != nil {
			return nil, PreviewNamesOutput{}, fmt.Errorf("query %s: %w", tier, err)
		}
		data[tier] = patch.IndexPatches(patches)
	}

	writes := patch.PlanNames(level, data)
	output := make([]NameWriteOutput, 0, len(writes))
	for _, w := range writes {
		output = append(output, NameWriteOutput{ID: w.ItemID, Name: w.Name, Tier: w.Tier})
	}
	return nil, PreviewNamesOutput{Level: level, Writes: output}, nil
}

func (s *Server) handleCommandPatch(ctx context.Context, req *sdk.CallToolRequest, input CommandPatchInput) (*sdk.CallToolResult, CommandPatchOutput, error) {
	swapped := make([]int, 0, len(patch.QuestEdibles))
	for _, id := range sortedIDs(patch.QuestEdibles) {
		if patch.ShouldSwapQuestEdible(id, input.Mode, input.Speedrun) {
			swapped = append(swapped, id)
		}
	}
	return nil, CommandPatchOutput{
		Mode:       patch.NormalizeLevel(input.Mode),
		Suppressed: patch.SuppressedRareEdibles(input.Mode),
		Swapped:    swapped,
	}, nil
}

func (s *Server) handleSwitchProfile(ctx context.Context, req *sdk.CallToolRequest, input SwitchProfileInput) (*sdk.CallToolResult, SwitchProfileOutput, error) {
	if input.Profile == "" {
		return nil, SwitchProfileOutput{}, fmt.Errorf("profile is required")
	}
	res, err := s.items.SwitchProfile(ctx, input.Profile)
	if err != nil {
		return nil, SwitchProfileOutput{}, err
	}

	failed := make([]int, 0, len(res.Names.FailedTiers))
	for _, tier := range res.Names.FailedTiers {
		failed = append(failed, int(tier))
	}
	return nil, SwitchProfileOutput{
		Profile:          res.Profile,
		NamePatchLevel:   res.Names.Level,
		NamesApplied:     res.Names.Applied,
		SourceAvailable:  !res.Names.Unavailable,
		FailedTiers:      failed,
		CommandPatchMode: patch.NormalizeLevel(res.CommandPatchMode),
		CommandsCleared:  res.CommandsCleared,
	}, nil
}

func (s *Server) handleSetSpeedrunOverride(ctx context.Context, req *sdk.CallToolRequest, input SetSpeedrunOverrideInput) (*sdk.CallToolResult, SpeedrunOverrideOutput, error) {
	if err := s.items.SetSpeedrunOverride(input.Enabled); err != nil {
		return nil, SpeedrunOverrideOutput{}, err
	}
	swapped := make([]int, 0, len(patch.QuestEdibles))
	for _, id := range sortedIDs(patch.QuestEdibles) {
		if s.items.ShouldSwapCommand(id) {
			swapped = append(swapped, id)
		}
	}
	return nil, SpeedrunOverrideOutput{Enabled: input.Enabled, Swapped: swapped}, nil
}

func (s *Server) handleCountGroundItems(ctx context.Context, req *sdk.CallToolRequest, input CountGroundItemsInput) (*sdk.CallToolResult, CountGroundItemsOutput, error) {
	var ground item.Ground
	var order []item.Record
	for _, in := range input.Items {
		r := groundRecord(in)
		if ground.Count(r) == 0 {
			order = append(order, r)
		}
		ground.Add(r)
	}
	for _, in := range input.Removed {
		ground.Remove(groundRecord(in))
	}

	table := s.items.Table()
	stacks := make([]GroundStackOutput, 0, len(order))
	for _, r := range order {
		n := ground.Count(r)
		if n == 0 {
			continue
		}
		stacks = append(stacks, GroundStackOutput{X: r.X, Y: r.Y, TypeID: r.TypeID, Name: r.Name(table), Count: n})
	}
	return nil, CountGroundItemsOutput{Total: ground.Len(), Stacks: stacks}, nil
}

func groundRecord(in GroundItemInput) item.Record {
	return item.Record{X: in.X, Y: in.Y, Width: in.Width, Height: in.Height, TypeID: in.TypeID}
}

func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
