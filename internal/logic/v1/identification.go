package v1

import (
	"context"
	"log/slog"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/pkg/security"
)

const (
	TOKEN_CONTEXT_KEY   = "__token_claims"
	SPACEID_CONTEXT_KEY = "__space_id"
)

func InjectTokenClaim(ctx context.Context) (security.TokenClaims, bool) {
	claims, ok := ctx.Value(TOKEN_CONTEXT_KEY).(security.TokenClaims)
	return claims, ok
}

type _userInfo struct {
	ctx  context.Context
	core *core.Core
	u    *security.TokenClaims
}

func (u *_userInfo) GetUserInfo() security.TokenClaims {
	return *u.u
}

func setupUserInfo(ctx context.Context, core *core.Core) UserInfo {
	userInfo, ok := InjectTokenClaim(ctx)
	if !ok {
		slog.Error("Not found user in context", slog.String("component", "logic.v1.setupUserInfo"))
		userInfo = security.TokenClaims{}
	}
	return &_userInfo{
		ctx:  ctx,
		u:    &userInfo,
		core: core,
	}
}

type UserInfo interface {
	GetUserInfo() security.TokenClaims
}
