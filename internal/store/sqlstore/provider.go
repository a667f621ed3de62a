package sqlstore

import (
	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/ripplelabs/ripple-api/internal/store"
	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/i18n"
	"github.com/ripplelabs/ripple-api/pkg/register"
	"github.com/ripplelabs/ripple-api/pkg/sqlstore"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

var provider = &Provider{
	Stores: &Stores{},
}

func GetProvider() *Provider {
	return provider
}

type Provider struct {
	*sqlstore.SqlProvider
	Stores *Stores
}

type Stores struct {
	store.UserStore
	store.JournalStore
	store.NoteStore
	store.SpaceStore
	store.UserSpaceStore
	store.NotificationStore
}

type RegisterKey struct{}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) func() *Provider {
	provider.SqlProvider = sqlstore.MustSetupProvider(m, s...)

	for _, f := range register.ResolveFuncHandlers[*Provider](RegisterKey{}) {
		f(provider)
	}

	return func() *Provider {
		return provider
	}
}

func errorSqlBuild(err error) error {
	return errors.New("sqlstore.builder", i18n.ERROR_INTERNAL, err)
}

func (p *Provider) UserStore() store.UserStore {
	return p.Stores.UserStore
}

func (p *Provider) JournalStore() store.JournalStore {
	return p.Stores.JournalStore
}

func (p *Provider) NoteStore() store.NoteStore {
	return p.Stores.NoteStore
}

func (p *Provider) SpaceStore() store.SpaceStore {
	return p.Stores.SpaceStore
}

func (p *Provider) UserSpaceStore() store.UserSpaceStore {
	return p.Stores.UserSpaceStore
}

func (p *Provider) NotificationStore() store.NotificationStore {
	return p.Stores.NotificationStore
}
