package cli

import (
	"context"
	"fmt"

	"github.com/opsboard/taskboard/pkg/tasks/client"
)

// LookupResolver is a session-scoped read-through cache over the lookup
// endpoint, keyed by table name. It replaces hard-coding the id↔name maps on
// the client side, so the client cannot drift from the database.
type LookupResolver struct {
	client client.TaskServiceClient
	tables map[string]map[string]uint
}

func NewLookupResolver(c client.TaskServiceClient) *LookupResolver {
	return &LookupResolver{
		client: c,
		tables: map[string]map[string]uint{},
	}
}

func (r *LookupResolver) entries(ctx context.Context, table string) (map[string]uint, error) {
	if entries, ok := r.tables[table]; ok {
		return entries, nil
	}

	list, err := r.client.ListLookup(ctx, table)
	if err != nil {
		return nil, err
	}

	entries := map[string]uint{}
	for _, e := range list {
		entries[e.Name] = e.ID
	}
	r.tables[table] = entries
	return entries, nil
}

// Resolve maps a display name to its surrogate key, refreshing the cached
// table once when the name is not found.
func (r *LookupResolver) Resolve(ctx context.Context, table, name string) (uint, error) {
	entries, err := r.entries(ctx, table)
	if err != nil {
		return 0, err
	}
	if id, ok := entries[name]; ok {
		return id, nil
	}

	delete(r.tables, table)
	entries, err = r.entries(ctx, table)
	if err != nil {
		return 0, err
	}
	if id, ok := entries[name]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown %s name %q", table, name)
}
