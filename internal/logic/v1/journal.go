package v1

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/pkg/ai"
	"github.com/ripplelabs/ripple-api/pkg/errors"
	"github.com/ripplelabs/ripple-api/pkg/i18n"
	"github.com/ripplelabs/ripple-api/pkg/safe"
	"github.com/ripplelabs/ripple-api/pkg/types"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

type JournalLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewJournalLogic(ctx context.Context, core *core.Core) *JournalLogic {
	return &JournalLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: setupUserInfo(ctx, core),
	}
}

type CreateJournalArgs struct {
	Title       string
	Content     string
	ContentType types.JournalContentType
	Mood        string
	Visibility  types.Visibility
	SpaceID     string
	Tags        []string
}

// CreateJournal publishes a new entry. Tags are normalized and the excerpt is
// derived server side, client supplied values for both are ignored.
func (l *JournalLogic) CreateJournal(args CreateJournalArgs) (*types.Journal, error) {
	user := l.GetUserInfo()

	if args.Visibility == types.VISIBILITY_SPACE && args.SpaceID == "" {
		return nil, errors.New("JournalLogic.CreateJournal.visibility", i18n.ERROR_VISIBILITY_SPACE_BOUND, nil).Code(http.StatusBadRequest)
	}
	if args.Visibility != types.VISIBILITY_SPACE {
		args.SpaceID = ""
	}

	if args.SpaceID != "" {
		if err := l.mustBeMember(args.SpaceID); err != nil {
			return nil, err
		}
	}

	if args.ContentType == "" {
		args.ContentType = types.JOURNAL_CONTENT_TYPE_TEXT
	}
	if args.Mood == "" {
		args.Mood = types.DEFAULT_MOOD
	}

	journal := types.Journal{
		ID:          utils.GenSpecIDStr(),
		UserID:      user.User,
		SpaceID:     args.SpaceID,
		Title:       args.Title,
		Content:     args.Content,
		ContentType: args.ContentType,
		Excerpt:     utils.Excerpt(journalPlainText(args.Content, args.ContentType), types.EXCERPT_LENGTH),
		Mood:        args.Mood,
		Visibility:  types.VisibilityFromString(string(args.Visibility)),
		Tags:        utils.NormalizeTags(args.Tags),
		UpdatedAt:   time.Now().Unix(),
		CreatedAt:   time.Now().Unix(),
	}

	if err := l.core.Store().JournalStore().Create(l.ctx, journal); err != nil {
		return nil, errors.New("JournalLogic.CreateJournal.JournalStore.Create", i18n.ERROR_INTERNAL, err)
	}

	l.publishJournal(&journal, types.WS_EVENT_JOURNAL_PUBLISH)

	// Cover generation runs detached, the entry is readable immediately and
	// the cover lands whenever the image model answers.
	go safe.Run(func() {
		l.generateCover(journal)
	})

	return &journal, nil
}

func (l *JournalLogic) generateCover(journal types.Journal) {
	if l.core.FileStorage() == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute*2)
	defer cancel()

	snippet := utils.Excerpt(journalPlainText(journal.Content, journal.ContentType), ai.COVER_SNIPPET_LEN)
	raw, err := l.core.Srv().AI().GenerateCover(ctx, journal.Title, snippet)
	if err != nil {
		if err != ai.ErrCoverUnsupported {
			slog.Error("failed to generate journal cover", slog.String("journal_id", journal.ID), slog.String("error", err.Error()))
		}
		return
	}

	url, err := l.core.FileStorage().UploadCover(ctx, fmt.Sprintf("%s.png", journal.ID), raw)
	if err != nil {
		slog.Error("failed to upload journal cover", slog.String("journal_id", journal.ID), slog.String("error", err.Error()))
		return
	}

	if err = l.core.Store().JournalStore().UpdateCover(ctx, journal.ID, url); err != nil {
		slog.Error("failed to save journal cover", slog.String("journal_id", journal.ID), slog.String("error", err.Error()))
		return
	}

	journal.CoverURL = url
	l.publishJournal(&journal, types.WS_EVENT_JOURNAL_UPDATE)
}

func (l *JournalLogic) publishJournal(journal *types.Journal, event types.WsEventType) {
	tower := l.core.Srv().Tower()
	if tower == nil {
		return
	}
	switch journal.Visibility {
	case types.VISIBILITY_PUBLIC:
		tower.PublishJournal(types.PublicFeedTopic(), event, journal)
	case types.VISIBILITY_SPACE:
		tower.PublishJournal(types.SpaceTopic(journal.SpaceID), event, journal)
	}
}

// GetJournal returns the entry if the caller may read it: owners always,
// anyone for public entries, members for space shared entries.
func (l *JournalLogic) GetJournal(id string) (*types.Journal, error) {
	user := l.GetUserInfo()

	journal, err := l.core.Store().JournalStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("JournalLogic.GetJournal.JournalStore.Get", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("JournalLogic.GetJournal.JournalStore.Get", i18n.ERROR_INTERNAL, err)
	}

	if journal.UserID == user.User {
		return journal, nil
	}

	switch journal.Visibility {
	case types.VISIBILITY_PUBLIC:
		return journal, nil
	case types.VISIBILITY_SPACE:
		ok, err := NewSpaceLogic(l.ctx, l.core).IsUserInSpace(user.User, journal.SpaceID)
		if err != nil {
			return nil, errors.Trace("JournalLogic.GetJournal", err)
		}
		if ok {
			return journal, nil
		}
	}

	return nil, errors.New("JournalLogic.GetJournal.visibility", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
}

type UpdateJournalArgs struct {
	Title       string
	Content     string
	ContentType types.JournalContentType
	Mood        string
	Visibility  types.Visibility
	SpaceID     string
	Tags        []string
}

func (l *JournalLogic) UpdateJournal(id string, args UpdateJournalArgs) (*types.Journal, error) {
	user := l.GetUserInfo()

	journal, err := l.core.Store().JournalStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("JournalLogic.UpdateJournal.JournalStore.Get", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("JournalLogic.UpdateJournal.JournalStore.Get", i18n.ERROR_INTERNAL, err)
	}

	if journal.UserID != user.User {
		return nil, errors.New("JournalLogic.UpdateJournal.owner", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	if args.Visibility == types.VISIBILITY_SPACE && args.SpaceID == "" {
		return nil, errors.New("JournalLogic.UpdateJournal.visibility", i18n.ERROR_VISIBILITY_SPACE_BOUND, nil).Code(http.StatusBadRequest)
	}
	if args.Visibility != types.VISIBILITY_SPACE {
		args.SpaceID = ""
	}
	if args.SpaceID != "" && args.SpaceID != journal.SpaceID {
		if err := l.mustBeMember(args.SpaceID); err != nil {
			return nil, err
		}
	}

	if args.ContentType == "" {
		args.ContentType = journal.ContentType
	}
	if args.Mood == "" {
		args.Mood = journal.Mood
	}

	update := types.UpdateJournalArgs{
		Title:       args.Title,
		Content:     args.Content,
		ContentType: args.ContentType,
		Excerpt:     utils.Excerpt(journalPlainText(args.Content, args.ContentType), types.EXCERPT_LENGTH),
		Mood:        args.Mood,
		Visibility:  types.VisibilityFromString(string(args.Visibility)),
		SpaceID:     args.SpaceID,
		Tags:        utils.NormalizeTags(args.Tags),
	}

	if err = l.core.Store().JournalStore().Update(l.ctx, id, update); err != nil {
		return nil, errors.New("JournalLogic.UpdateJournal.JournalStore.Update", i18n.ERROR_INTERNAL, err)
	}

	res, err := l.core.Store().JournalStore().Get(l.ctx, id)
	if err != nil {
		return nil, errors.New("JournalLogic.UpdateJournal.JournalStore.reload", i18n.ERROR_INTERNAL, err)
	}

	l.publishJournal(res, types.WS_EVENT_JOURNAL_UPDATE)
	return res, nil
}

// DeleteJournal removes the entry with its notes. Owner only.
func (l *JournalLogic) DeleteJournal(id string) error {
	user := l.GetUserInfo()

	journal, err := l.core.Store().JournalStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.New("JournalLogic.DeleteJournal.JournalStore.Get", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return errors.New("JournalLogic.DeleteJournal.JournalStore.Get", i18n.ERROR_INTERNAL, err)
	}

	if journal.UserID != user.User {
		return errors.New("JournalLogic.DeleteJournal.owner", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().NoteStore().DeleteAll(ctx, id); err != nil {
			return errors.New("JournalLogic.DeleteJournal.NoteStore.DeleteAll", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().JournalStore().Delete(ctx, id); err != nil {
			return errors.New("JournalLogic.DeleteJournal.JournalStore.Delete", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
}

func (l *JournalLogic) mustBeMember(spaceID string) error {
	user := l.GetUserInfo()
	ok, err := NewSpaceLogic(l.ctx, l.core).IsUserInSpace(user.User, spaceID)
	if err != nil {
		return errors.Trace("JournalLogic.mustBeMember", err)
	}
	if !ok {
		return errors.New("JournalLogic.mustBeMember", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}
	return nil
}

type JournalFeed struct {
	List  []types.Journal `json:"list"`
	Total int64           `json:"total"`
	Tags  []TagFacet      `json:"tags"`
}

// ListDiscover is the public feed, newest first, optionally narrowed to a tag.
func (l *JournalLogic) ListDiscover(tag string, page, pageSize uint64) (*JournalFeed, error) {
	opts := types.ListJournalOptions{
		Visibility: types.VISIBILITY_PUBLIC,
		Tag:        tag,
	}

	list, err := l.core.Store().JournalStore().List(l.ctx, opts, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("JournalLogic.ListDiscover.JournalStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().JournalStore().Total(l.ctx, opts)
	if err != nil {
		return nil, errors.New("JournalLogic.ListDiscover.JournalStore.Total", i18n.ERROR_INTERNAL, err)
	}

	return &JournalFeed{
		List:  sortJournalsByRecency(list),
		Total: total,
		Tags:  tagFacets(list),
	}, nil
}

// ListMine is the caller's private timeline, every visibility included.
func (l *JournalLogic) ListMine(page, pageSize uint64) (*JournalFeed, error) {
	user := l.GetUserInfo()
	opts := types.ListJournalOptions{
		UserID: user.User,
	}

	list, err := l.core.Store().JournalStore().List(l.ctx, opts, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("JournalLogic.ListMine.JournalStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().JournalStore().Total(l.ctx, opts)
	if err != nil {
		return nil, errors.New("JournalLogic.ListMine.JournalStore.Total", i18n.ERROR_INTERNAL, err)
	}

	return &JournalFeed{
		List:  sortJournalsByRecency(list),
		Total: total,
	}, nil
}

// ListSpaceFeed returns the entries shared to a space, members only.
func (l *JournalLogic) ListSpaceFeed(spaceID string, page, pageSize uint64) (*JournalFeed, error) {
	if err := l.mustBeMember(spaceID); err != nil {
		return nil, err
	}

	opts := types.ListJournalOptions{
		SpaceID:    spaceID,
		Visibility: types.VISIBILITY_SPACE,
	}

	list, err := l.core.Store().JournalStore().List(l.ctx, opts, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("JournalLogic.ListSpaceFeed.JournalStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().JournalStore().Total(l.ctx, opts)
	if err != nil {
		return nil, errors.New("JournalLogic.ListSpaceFeed.JournalStore.Total", i18n.ERROR_INTERNAL, err)
	}

	return &JournalFeed{
		List:  sortJournalsByRecency(list),
		Total: total,
		Tags:  tagFacets(list),
	}, nil
}

// journalPlainText flattens block content to markdown before excerpting. Plain
// text bodies pass through unchanged, and an unparsable block body falls back
// to the raw string rather than failing the write.
func journalPlainText(content string, contentType types.JournalContentType) string {
	if contentType != types.JOURNAL_CONTENT_TYPE_BLOCKS {
		return content
	}
	md, err := utils.ConvertEditorJSBlocksToMarkdown(content)
	if err != nil {
		return content
	}
	return md
}

// sortJournalsByRecency orders newest first. Entries without a creation time
// are treated as just created so they surface at the top.
func sortJournalsByRecency(list []types.Journal) []types.Journal {
	now := time.Now().Unix()
	at := func(j types.Journal) int64 {
		if j.CreatedAt == 0 {
			return now
		}
		return j.CreatedAt
	}
	sort.SliceStable(list, func(i, j int) bool {
		return at(list[i]) > at(list[j])
	})
	return list
}

type TagFacet struct {
	Tag   string `json:"tag"`
	Total int    `json:"total"`
}

// tagFacets counts tag usage across a feed page, most used first, ties broken
// alphabetically so the order is stable.
func tagFacets(list []types.Journal) []TagFacet {
	counts := make(map[string]int)
	for _, j := range list {
		for _, tag := range j.Tags {
			counts[tag]++
		}
	}

	facets := lo.MapToSlice(counts, func(tag string, total int) TagFacet {
		return TagFacet{Tag: tag, Total: total}
	})
	sort.Slice(facets, func(i, j int) bool {
		if facets[i].Total != facets[j].Total {
			return facets[i].Total > facets[j].Total
		}
		return facets[i].Tag < facets[j].Tag
	})
	return facets
}
