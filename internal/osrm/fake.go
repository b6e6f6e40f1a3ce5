package osrm

import "context"

// FakeClient is a test implementation of Client
type FakeClient struct {
	Response []byte
	Err      error

	// Last recorded call
	Start Point
	End   Point
}

func (c *FakeClient) Route(ctx context.Context, start, end Point) ([]byte, error) {
	c.Start = start
	c.End = end
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Response, nil
}
