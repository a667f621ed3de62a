package v1

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/i18n"
	"github.com/ripplelabs/ripple-api/pkg/types"
)

type UserLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewUserLogic(ctx context.Context, core *core.Core) *UserLogic {
	return &UserLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: setupUserInfo(ctx, core),
	}
}

func (l *UserLogic) GetUser(appid, id string) (*types.User, error) {
	user, err := l.core.Store().UserStore().GetUser(l.ctx, appid, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("UserLogic.GetUser.UserStore.GetUser", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("UserLogic.GetUser.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}
	return user, nil
}

func (l *UserLogic) UpdateUserProfile(name, email string) error {
	user := l.GetUserInfo()
	if err := l.core.Store().UserStore().UpdateProfile(l.ctx, user.Appid, user.User, name, email); err != nil {
		return errors.New("UserLogic.UpdateUserProfile.UserStore.UpdateProfile", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
