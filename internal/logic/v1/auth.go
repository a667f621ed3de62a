package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/i18n"
	"github.com/ripplelabs/ripple-api/pkg/security"
	"github.com/ripplelabs/ripple-api/pkg/types"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

const defaultTokenTTLHours = 24 * 7

type AuthLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewAuthLogic(ctx context.Context, core *core.Core) *AuthLogic {
	return &AuthLogic{
		ctx:  ctx,
		core: core,
	}
}

type SignUpResult struct {
	UserID string `json:"user_id"`
}

func (l *AuthLogic) Register(email, password, name string) (*SignUpResult, error) {
	appid := l.core.DefaultAppid()

	exist, err := l.core.Store().UserStore().GetByEmail(l.ctx, appid, email)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("AuthLogic.Register.UserStore.GetByEmail", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return nil, errors.New("AuthLogic.Register.exist", i18n.ERROR_EMAIL_ALREADY_REGISTED, nil).Code(http.StatusForbidden)
	}

	if name == "" {
		name = utils.DisplayNameFromEmail(email)
	}

	salt := utils.RandomStr(10)
	user := types.User{
		ID:        utils.GenSpecIDStr(),
		Appid:     appid,
		Name:      name,
		Handle:    utils.NormalizeHandle(name),
		Email:     email,
		Salt:      salt,
		Password:  utils.GenUserPassword(salt, password),
		UpdatedAt: time.Now().Unix(),
		CreatedAt: time.Now().Unix(),
	}

	if err = l.core.Store().UserStore().Create(l.ctx, user); err != nil {
		return nil, errors.New("AuthLogic.Register.UserStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return &SignUpResult{UserID: user.ID}, nil
}

type LoginResult struct {
	Token    string     `json:"token"`
	ExpireAt int64      `json:"expire_at"`
	User     types.User `json:"user"`
}

func (l *AuthLogic) Login(email, password string) (*LoginResult, error) {
	appid := l.core.DefaultAppid()

	user, err := l.core.Store().UserStore().GetByEmail(l.ctx, appid, email)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("AuthLogic.Login.UserStore.GetByEmail", i18n.ERROR_INTERNAL, err)
	}

	if user == nil || user.Password != utils.GenUserPassword(user.Salt, password) {
		return nil, errors.New("AuthLogic.Login.password.mismatch", i18n.ERROR_INVALID_ACCOUNT, nil).Code(http.StatusForbidden)
	}

	ttlHours := l.core.Cfg().Security.TokenTTLHours
	if ttlHours <= 0 {
		ttlHours = defaultTokenTTLHours
	}
	expireAt := time.Now().Add(time.Hour * time.Duration(ttlHours)).Unix()

	claims := security.NewTokenClaims(appid, l.core.Name(), user.ID, user.Email, expireAt)
	token, err := claims.GenJWT(l.core.Cfg().Security.TokenSecret)
	if err != nil {
		return nil, errors.New("AuthLogic.Login.GenJWT", i18n.ERROR_INTERNAL, err)
	}

	return &LoginResult{
		Token:    token,
		ExpireAt: expireAt,
		User:     *user,
	}, nil
}
