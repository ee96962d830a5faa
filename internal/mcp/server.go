package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"itempatch/internal/item"
	"itempatch/internal/session"
	"itempatch/internal/store"
)

// TierReader is the read side of a patch store.
type TierReader interface {
	QueryTier(ctx context.Context, tier store.Tier) ([]store.NamePatch, error)
}

// ItemSession is the live, patched item table of a running client together
// with the profile controls that re-patch it.
type ItemSession interface {
	Table() *item.Table
	ShouldSwapCommand(itemID int) bool
	SwitchProfile(ctx context.Context, name string) (session.ApplyResult, error)
	SetSpeedrunOverride(on bool) error
}

type Server struct {
	items ItemSession
	db    TierReader
	mcp   *sdk.Server
}

func NewServer(items ItemSession, db TierReader, version string) *Server {
	s := &Server{
		items: items,
		db:    db,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "itempatch",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
