package v1

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/internal/core/srv"
	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/i18n"
	"github.com/ripplelabs/ripple-api/pkg/sqlstore"
	"github.com/ripplelabs/ripple-api/pkg/types"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

// rp_space.invite_code carries a unique index, so a generated code that
// collides with an existing space fails the insert and gets regenerated.
const inviteCodeAttempts = 3

type SpaceLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewSpaceLogic(ctx context.Context, core *core.Core) *SpaceLogic {
	return &SpaceLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: setupUserInfo(ctx, core),
	}
}

// CreateSpace opens a new invite-only space. Only users past the star
// milestone may create one, everyone else gets the locked error. A custom
// invite code may be supplied, otherwise one is generated.
func (l *SpaceLogic) CreateSpace(name, description, inviteCode string) (*types.Space, error) {
	user := l.GetUserInfo()

	creator, err := l.core.Store().UserStore().GetUser(l.ctx, user.Appid, user.User)
	if err != nil {
		return nil, errors.New("SpaceLogic.CreateSpace.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}
	if !creator.CanCreateSpace {
		return nil, errors.New("SpaceLogic.CreateSpace.locked", i18n.ERROR_SPACE_LOCKED, nil).Code(http.StatusForbidden)
	}

	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	supplied := inviteCode != ""

	var space types.Space
	for attempt := 1; ; attempt++ {
		if !supplied {
			inviteCode = utils.GenInviteCode(types.INVITE_CODE_LENGTH)
		}

		space = types.Space{
			SpaceID:     utils.GenRandomID(),
			Name:        name,
			Description: description,
			InviteCode:  inviteCode,
			CreatedBy:   creator.ID,
			CreatedAt:   time.Now().Unix(),
		}

		err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
			if err := l.core.Store().SpaceStore().Create(ctx, space); err != nil {
				return errors.New("SpaceLogic.CreateSpace.SpaceStore.Create", i18n.ERROR_INTERNAL, err)
			}
			if err := l.core.Store().UserSpaceStore().Create(ctx, types.UserSpace{
				UserID:    creator.ID,
				SpaceID:   space.SpaceID,
				Role:      srv.RoleCreator,
				CreatedAt: time.Now().Unix(),
			}); err != nil {
				return errors.New("SpaceLogic.CreateSpace.UserSpaceStore.Create", i18n.ERROR_INTERNAL, err)
			}
			return nil
		})
		if err == nil {
			return &space, nil
		}
		if !sqlstore.IsUniqueViolation(err) {
			return nil, err
		}
		if supplied {
			// A caller-picked code that is already taken is the caller's problem.
			return nil, errors.New("SpaceLogic.CreateSpace.invitecode", i18n.ERROR_EXIST, err).Code(http.StatusConflict)
		}
		if attempt >= inviteCodeAttempts {
			return nil, err
		}
	}
}

// JoinSpaceByCode redeems an invite code. Codes compare case-insensitively,
// joining a space twice is a no-op.
func (l *SpaceLogic) JoinSpaceByCode(code string) (*types.Space, error) {
	user := l.GetUserInfo()

	space, err := l.core.Store().SpaceStore().GetByInviteCode(l.ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("SpaceLogic.JoinSpaceByCode.SpaceStore.GetByInviteCode", i18n.ERROR_INVALID_INVITE_CODE, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("SpaceLogic.JoinSpaceByCode.SpaceStore.GetByInviteCode", i18n.ERROR_INTERNAL, err)
	}

	if err = l.core.Store().UserSpaceStore().Create(l.ctx, types.UserSpace{
		UserID:    user.User,
		SpaceID:   space.SpaceID,
		Role:      srv.RoleMember,
		CreatedAt: time.Now().Unix(),
	}); err != nil {
		return nil, errors.New("SpaceLogic.JoinSpaceByCode.UserSpaceStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return space, nil
}

func (l *SpaceLogic) IsUserInSpace(userID, spaceID string) (bool, error) {
	_, err := l.core.Store().UserSpaceStore().Get(l.ctx, userID, spaceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, errors.New("SpaceLogic.IsUserInSpace.UserSpaceStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return true, nil
}

func (l *SpaceLogic) LeaveSpace(spaceID string) error {
	user := l.GetUserInfo()

	membership, err := l.core.Store().UserSpaceStore().Get(l.ctx, user.User, spaceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.New("SpaceLogic.LeaveSpace.membership", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
		}
		return errors.New("SpaceLogic.LeaveSpace.UserSpaceStore.Get", i18n.ERROR_INTERNAL, err)
	}

	if membership.Role == srv.RoleCreator {
		// Creators tear the space down instead of leaving it behind.
		return l.DeleteSpace(spaceID)
	}

	if err = l.core.Store().UserSpaceStore().Delete(l.ctx, spaceID, user.User); err != nil {
		return errors.New("SpaceLogic.LeaveSpace.UserSpaceStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// DeleteSpace cascades: shared journals fall back to private first, then
// memberships go, then the space row. Creator only.
func (l *SpaceLogic) DeleteSpace(spaceID string) error {
	user := l.GetUserInfo()

	space, err := l.core.Store().SpaceStore().Get(l.ctx, spaceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.New("SpaceLogic.DeleteSpace.SpaceStore.Get", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return errors.New("SpaceLogic.DeleteSpace.SpaceStore.Get", i18n.ERROR_INTERNAL, err)
	}

	if space.CreatedBy != user.User {
		return errors.New("SpaceLogic.DeleteSpace.creator", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().JournalStore().DetachSpace(ctx, spaceID); err != nil {
			return errors.New("SpaceLogic.DeleteSpace.JournalStore.DetachSpace", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().UserSpaceStore().DeleteAll(ctx, spaceID); err != nil {
			return errors.New("SpaceLogic.DeleteSpace.UserSpaceStore.DeleteAll", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().SpaceStore().Delete(ctx, spaceID); err != nil {
			return errors.New("SpaceLogic.DeleteSpace.SpaceStore.Delete", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
}

func (l *SpaceLogic) ListUserSpaces() ([]types.UserSpaceDetail, error) {
	user := l.GetUserInfo()
	list, err := l.core.Store().UserSpaceStore().List(l.ctx, types.ListUserSpaceOptions{
		UserID: user.User,
	}, 0, 0)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("SpaceLogic.ListUserSpaces.UserSpaceStore.List", i18n.ERROR_INTERNAL, err)
	}

	var (
		spaceIDs     []string
		spaceRoleMap = make(map[string]string)
	)
	for _, v := range list {
		spaceIDs = append(spaceIDs, v.SpaceID)
		spaceRoleMap[v.SpaceID] = v.Role
	}

	if len(spaceIDs) == 0 {
		return nil, nil
	}

	spaceInfo, err := l.core.Store().SpaceStore().List(l.ctx, spaceIDs, 0, 0)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("SpaceLogic.ListUserSpaces.SpaceStore.List", i18n.ERROR_INTERNAL, err)
	}

	var result []types.UserSpaceDetail
	for _, v := range spaceInfo {
		members, err := l.core.Store().UserSpaceStore().TotalMembers(l.ctx, v.SpaceID)
		if err != nil {
			return nil, errors.New("SpaceLogic.ListUserSpaces.UserSpaceStore.TotalMembers", i18n.ERROR_INTERNAL, err)
		}
		detail := types.UserSpaceDetail{
			SpaceID:     v.SpaceID,
			UserID:      user.User,
			Name:        v.Name,
			Description: v.Description,
			Role:        spaceRoleMap[v.SpaceID],
			Members:     members,
			CreatedAt:   v.CreatedAt,
		}
		// Only whoever can manage the space sees its invite code.
		if l.core.Srv().RBAC().CheckPermission(detail.Role, srv.PermissionManage) {
			detail.InviteCode = v.InviteCode
		}
		result = append(result, detail)
	}

	return result, nil
}
