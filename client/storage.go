package client

import (
	"context"

	"github.com/CristiGvl/cascade-hwmon/model"
)

// Disks returns every mounted filesystem in server order.
func (c *Client) Disks(ctx context.Context) ([]*model.Disk, error) {
	return getList[model.Disk](ctx, c, "/disks")
}

func (c *Client) SMART(ctx context.Context) (*model.SMARTData, error) {
	return getOne[model.SMARTData](ctx, c, "/smart")
}

// FailingDisks returns the disks with failing SMART attributes.
func (c *Client) FailingDisks(ctx context.Context) ([]*model.SMARTDisk, error) {
	return getList[model.SMARTDisk](ctx, c, "/smart/failing")
}
