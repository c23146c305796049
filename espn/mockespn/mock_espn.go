package mockespn

import (
	"context"
	"encoding/json"

	"github.com/msto2/bid-tool/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) Teams(ctx context.Context) ([]model.Team, error) {
	args := c.Called(ctx)

	var res []model.Team
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Team)
	}

	return res, args.Error(1)
}

func (c *Client) FreeAgents(ctx context.Context, pos model.Position) ([]model.Player, error) {
	args := c.Called(ctx, pos)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}

	return res, args.Error(1)
}

func (c *Client) FreeAgentIDs(ctx context.Context) (map[int]struct{}, error) {
	args := c.Called(ctx)

	var res map[int]struct{}
	if args.Get(0) != nil {
		res = args.Get(0).(map[int]struct{})
	}

	return res, args.Error(1)
}

func (c *Client) PlayerStats(ctx context.Context, playerID string) (json.RawMessage, error) {
	args := c.Called(ctx, playerID)

	var res json.RawMessage
	if args.Get(0) != nil {
		res = args.Get(0).(json.RawMessage)
	}

	return res, args.Error(1)
}

func (c *Client) FreeAgentStatus(ctx context.Context, playerID string) (*model.FreeAgentStatus, error) {
	args := c.Called(ctx, playerID)

	var res *model.FreeAgentStatus
	if args.Get(0) != nil {
		res = args.Get(0).(*model.FreeAgentStatus)
	}

	return res, args.Error(1)
}
