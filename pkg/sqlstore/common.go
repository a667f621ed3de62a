package sqlstore

import "context"

type Table interface {
	Name() string
}

// SqlProviderAchieve is what a concrete store needs from its provider.
type SqlProviderAchieve interface {
	GetMaster(ctx context.Context) Executor
	GetReplica(ctx context.Context) Executor
}

// CommonFields carries the provider, table name and column list every store
// embeds.
type CommonFields struct {
	provider   SqlProviderAchieve
	table      string
	allColumns []string
}

func (c *CommonFields) SetProvider(p SqlProviderAchieve) {
	c.provider = p
}

func (c *CommonFields) SetTable(t Table) {
	c.table = t.Name()
}

func (c *CommonFields) GetTable() string {
	return c.table
}

func (c *CommonFields) SetAllColumns(columns ...string) {
	c.allColumns = columns
}

func (c *CommonFields) GetAllColumns() []string {
	return c.allColumns
}

func (c *CommonFields) GetMaster(ctx context.Context) Executor {
	return c.provider.GetMaster(ctx)
}

func (c *CommonFields) GetReplica(ctx context.Context) Executor {
	return c.provider.GetReplica(ctx)
}
