package ads

import (
	"context"
	"sync"
	"time"

	"github.com/patrickwarner/fbads-mcp/internal/graph"
)

type call struct {
	Method string
	ID     string
	Edge   string
	Fields []string
	Params graph.Params
}

// fakeAPI records calls and serves canned responses keyed by "id" or "id/edge".
type fakeAPI struct {
	mu      sync.Mutex
	calls   []call
	objects map[string]graph.Node
	edges   map[string][]graph.Node
	posted  graph.Node
	delay   map[string]time.Duration
	err     error
	errFor  map[string]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		objects: map[string]graph.Node{},
		edges:   map[string][]graph.Node{},
		delay:   map[string]time.Duration{},
		errFor:  map[string]error{},
	}
}

func (f *fakeAPI) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeAPI) wait(ctx context.Context, key string) error {
	if d, ok := f.delay[key]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err, ok := f.errFor[key]; ok {
		return err
	}
	return f.err
}

func (f *fakeAPI) Get(ctx context.Context, id string, fields []string) (graph.Node, error) {
	f.record(call{Method: "GET", ID: id, Fields: fields})
	if err := f.wait(ctx, id); err != nil {
		return nil, err
	}
	if n, ok := f.objects[id]; ok {
		return n, nil
	}
	return graph.Node{"id": id}, nil
}

func (f *fakeAPI) Edge(ctx context.Context, id, edge string, fields []string, params graph.Params) ([]graph.Node, error) {
	f.record(call{Method: "EDGE", ID: id, Edge: edge, Fields: fields, Params: params})
	key := id + "/" + edge
	if err := f.wait(ctx, key); err != nil {
		return nil, err
	}
	return f.edges[key], nil
}

func (f *fakeAPI) Post(ctx context.Context, id, edge string, params graph.Params) (graph.Node, error) {
	f.record(call{Method: "POST", ID: id, Edge: edge, Params: params})
	if err := f.wait(ctx, id+"/"+edge); err != nil {
		return nil, err
	}
	if f.posted != nil {
		return f.posted, nil
	}
	return graph.Node{"success": true}, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.record(call{Method: "DELETE", ID: id})
	return f.wait(ctx, id)
}
