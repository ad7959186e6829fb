package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/authz"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/session"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/store"
	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// messageWindow bounds the chat query to the most recent N messages.
const messageWindow = 100

// Service is the reactive query/mutation layer. Mutations write through
// the entity store and invalidate the hub topics they touch; queries are
// the functions the hub re-runs.
type Service struct {
	store *store.Store
	hub   *Hub
	log   *slog.Logger
}

func NewService(st *store.Store, log *slog.Logger) *Service {
	s := &Service{store: st, log: log}
	s.hub = NewHub(map[Topic]QueryFunc{
		TopicMessages:      func(ctx context.Context) (any, error) { return s.ListMessages(ctx) },
		TopicAnnouncements: func(ctx context.Context) (any, error) { return s.ListAnnouncements(ctx) },
		TopicSchedule:      func(ctx context.Context) (any, error) { return s.ListSchedule(ctx) },
	}, log)
	return s
}

// Hub exposes the subscription side of the layer.
func (s *Service) Hub() *Hub { return s.hub }

// --- Queries ---

// ListMessages returns the most recent 100 chat messages oldest-first,
// each joined with its author's current name and role. Authors that no
// longer exist degrade to a placeholder profile.
func (s *Service) ListMessages(ctx context.Context) ([]models.MessageView, error) {
	msgs, err := s.store.RecentMessages(ctx, messageWindow)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(msgs))
	seen := make(map[uint]struct{}, len(msgs))
	for _, m := range msgs {
		if _, ok := seen[m.AuthorID]; !ok {
			seen[m.AuthorID] = struct{}{}
			ids = append(ids, m.AuthorID)
		}
	}
	authors, err := s.store.AccountsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.MessageView, 0, len(msgs))
	for _, m := range msgs {
		profile := models.UnknownProfile
		if a, ok := authors[m.AuthorID]; ok {
			profile = models.Profile{Name: a.Name, Role: a.Role}
		}
		views = append(views, models.MessageView{ChatMessage: m, Profile: profile})
	}
	return views, nil
}

// ListAnnouncements returns all announcements, newest first.
func (s *Service) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return s.store.Announcements(ctx)
}

// ListSchedule returns all schedule entries, unordered; callers group by
// models.DayOrder.
func (s *Service) ListSchedule(ctx context.Context) ([]models.ScheduleEntry, error) {
	return s.store.ScheduleEntries(ctx)
}

// --- Mutations ---

// SendMessageInput carries the caller-supplied part of a chat message.
// The author and timestamp are assigned server-side.
type SendMessageInput struct {
	Content    string `json:"content"`
	IsMandarin bool   `json:"isMandarin"`
	Pinyin     string `json:"pinyin"`
}

// SendMessage appends a chat message authored by the session's account.
func (s *Service) SendMessage(ctx context.Context, sess *session.Session, in SendMessageInput) (*models.MessageView, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: message content is empty", models.ErrValidation)
	}

	msg := models.ChatMessage{
		AuthorID:   sess.AccountID,
		Content:    in.Content,
		IsMandarin: in.IsMandarin,
		Pinyin:     in.Pinyin,
	}
	if err := s.store.CreateMessage(ctx, &msg); err != nil {
		return nil, err
	}
	s.hub.Invalidate(TopicMessages)

	return &models.MessageView{
		ChatMessage: msg,
		Profile:     models.Profile{Name: sess.Name, Role: sess.Role},
	}, nil
}

// PostAnnouncementInput is the payload for posting to the board.
type PostAnnouncementInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority string `json:"priority"`
	ImageURL string `json:"imageUrl"`
}

// PostAnnouncement creates an announcement. Delegates and admins only.
func (s *Service) PostAnnouncement(ctx context.Context, sess *session.Session, in PostAnnouncementInput) (*models.Announcement, error) {
	if !authz.CanManageSharedContent(sess.Role) {
		return nil, fmt.Errorf("%w: role %s may not post announcements", models.ErrForbidden, sess.Role)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: announcement title is empty", models.ErrValidation)
	}

	post := models.Announcement{
		Title:    in.Title,
		Content:  in.Content,
		Priority: models.NormalizePriority(in.Priority),
		ImageURL: in.ImageURL,
	}
	if err := s.store.CreateAnnouncement(ctx, &post); err != nil {
		return nil, err
	}
	s.hub.Invalidate(TopicAnnouncements)
	return &post, nil
}

// DeleteAnnouncement removes an announcement. Idempotent; delegates and
// admins only.
func (s *Service) DeleteAnnouncement(ctx context.Context, sess *session.Session, id uint) error {
	if !authz.CanManageSharedContent(sess.Role) {
		return fmt.Errorf("%w: role %s may not delete announcements", models.ErrForbidden, sess.Role)
	}
	if err := s.store.DeleteAnnouncement(ctx, id); err != nil {
		return err
	}
	s.hub.Invalidate(TopicAnnouncements)
	return nil
}

// AddScheduleItemInput is the payload for a new schedule slot.
type AddScheduleItemInput struct {
	Day     string `json:"day"`
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Room    string `json:"room"`
}

// AddScheduleItem creates a schedule entry. Delegates and admins only.
func (s *Service) AddScheduleItem(ctx context.Context, sess *session.Session, in AddScheduleItemInput) (*models.ScheduleEntry, error) {
	if !authz.CanManageSharedContent(sess.Role) {
		return nil, fmt.Errorf("%w: role %s may not edit the schedule", models.ErrForbidden, sess.Role)
	}
	if strings.TrimSpace(in.Day) == "" || strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("%w: day and subject are required", models.ErrValidation)
	}

	entry := models.ScheduleEntry{Day: in.Day, Time: in.Time, Subject: in.Subject, Room: in.Room}
	if err := s.store.CreateScheduleEntry(ctx, &entry); err != nil {
		return nil, err
	}
	s.hub.Invalidate(TopicSchedule)
	return &entry, nil
}

// DeleteScheduleItem removes a schedule entry. Idempotent; delegates and
// admins only.
func (s *Service) DeleteScheduleItem(ctx context.Context, sess *session.Session, id uint) error {
	if !authz.CanManageSharedContent(sess.Role) {
		return fmt.Errorf("%w: role %s may not edit the schedule", models.ErrForbidden, sess.Role)
	}
	if err := s.store.DeleteScheduleEntry(ctx, id); err != nil {
		return err
	}
	s.hub.Invalidate(TopicSchedule)
	return nil
}

// --- Auth ---

// Login verifies the credentials and opens a session. Unknown email and
// wrong secret produce the same ErrAuth; callers learn nothing about
// which it was. Store failures are not credential failures and pass
// through unchanged.
func (s *Service) Login(ctx context.Context, email, secret string) (*session.Session, *models.Account, error) {
	acc, err := s.store.AccountByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, nil, err
	}
	if err != nil || acc.Secret != secret {
		return nil, nil, models.ErrAuth
	}
	return &session.Session{
		AccountID: acc.ID,
		Name:      acc.Name,
		Email:     acc.Email,
		Role:      acc.Role,
	}, acc, nil
}

// RegisterInput is the self-registration payload. Role is an explicit
// selection, not inferred from the email text; anything but student is
// ignored here and must be granted by an admin via PromoteAccount.
type RegisterInput struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Register creates an account and opens a session for it. Duplicate
// emails fail with ErrConflict regardless of the other fields.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*session.Session, *models.Account, error) {
	if strings.TrimSpace(in.Email) == "" || in.Secret == "" || strings.TrimSpace(in.Name) == "" {
		return nil, nil, fmt.Errorf("%w: email, secret and name are required", models.ErrValidation)
	}

	role := models.RoleStudent
	if hint := models.Role(in.Role); hint.Valid() && hint != models.RoleStudent {
		// Privileged roles are never self-assigned; an admin promotes later.
		s.log.Info("Ignoring privileged role hint at registration", "email", in.Email, "hint", hint)
	}

	acc := models.Account{Email: in.Email, Secret: in.Secret, Name: in.Name, Role: role}
	if err := s.store.CreateAccount(ctx, &acc); err != nil {
		return nil, nil, err
	}

	return &session.Session{
		AccountID: acc.ID,
		Name:      acc.Name,
		Email:     acc.Email,
		Role:      acc.Role,
	}, &acc, nil
}

// PromoteAccount sets another account's role. Admins only.
func (s *Service) PromoteAccount(ctx context.Context, sess *session.Session, accountID uint, role models.Role) error {
	if !authz.CanPromoteAccounts(sess.Role) {
		return fmt.Errorf("%w: only admins may change roles", models.ErrForbidden)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", models.ErrValidation, role)
	}
	if err := s.store.UpdateAccountRole(ctx, accountID, role); err != nil {
		return err
	}
	// Names and roles are joined into the chat view, so a promotion is a
	// relevant change for message subscribers.
	s.hub.Invalidate(TopicMessages)
	return nil
}
