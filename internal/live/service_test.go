package live

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/session"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/store"
	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open test database")

	st := store.New(db)
	require.NoError(t, st.Migrate())
	return NewService(st, slog.New(slog.NewTextHandler(io.Discard, nil))), st
}

func registerAccount(t *testing.T, svc *Service, email string) *session.Session {
	t.Helper()
	sess, _, err := svc.Register(context.Background(), RegisterInput{
		Email:  email,
		Secret: "secret",
		Name:   "User " + email,
	})
	require.NoError(t, err)
	return sess
}

func sessionWithRole(role models.Role) *session.Session {
	return &session.Session{AccountID: 999, Name: "Fixture", Email: "fixture@example.com", Role: role}
}

func TestSendMessage_OrderAndAuthorJoin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := registerAccount(t, svc, "chen@example.com")

	for _, content := range []string{"nĭ hăo", "second", "third"} {
		_, err := svc.SendMessage(ctx, sess, SendMessageInput{Content: content})
		require.NoError(t, err)
	}

	views, err := svc.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "nĭ hăo", views[0].Content)
	assert.Equal(t, "third", views[2].Content)
	for _, v := range views {
		assert.Equal(t, "User chen@example.com", v.Profile.Name)
		assert.Equal(t, models.RoleStudent, v.Profile.Role)
	}
}

func TestSendMessage_EmptyContent(t *testing.T) {
	svc, _ := newTestService(t)
	sess := sessionWithRole(models.RoleStudent)

	_, err := svc.SendMessage(context.Background(), sess, SendMessageInput{Content: "   "})
	assert.ErrorIs(t, err, models.ErrValidation)

	views, err := svc.ListMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListMessages_MissingAuthorDegrades(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	// Author id 404 has no account row; the join must not fail the query.
	require.NoError(t, st.CreateMessage(ctx, &models.ChatMessage{AuthorID: 404, Content: "orphan"}))

	views, err := svc.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.UnknownProfile, views[0].Profile)
}

func TestRegister_PrivilegedHintIgnored(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	sess, acc, err := svc.Register(ctx, RegisterInput{
		Email:  "wannabe@example.com",
		Secret: "pw",
		Name:   "Wannabe",
		Role:   "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, sess.Role)
	assert.Equal(t, models.RoleStudent, acc.Role)

	stored, err := st.AccountByEmail(ctx, "wannabe@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, stored.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	registerAccount(t, svc, "taken@example.com")

	_, _, err := svc.Register(ctx, RegisterInput{Email: "taken@example.com", Secret: "other", Name: "Other"})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Register(context.Background(), RegisterInput{Email: "x@example.com", Name: "X"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	registerAccount(t, svc, "known@example.com")

	_, _, errWrongSecret := svc.Login(ctx, "known@example.com", "not-the-secret")
	_, _, errUnknownEmail := svc.Login(ctx, "nobody@example.com", "secret")

	require.Error(t, errWrongSecret)
	require.Error(t, errUnknownEmail)
	assert.ErrorIs(t, errWrongSecret, models.ErrAuth)
	assert.ErrorIs(t, errUnknownEmail, models.ErrAuth)
	// A caller probing for registered emails must learn nothing.
	assert.Equal(t, errWrongSecret.Error(), errUnknownEmail.Error())
}

func TestLogin_StoreFailureIsNotAuthError(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.Migrate())
	svc := NewService(st, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// A dead database is an infrastructure failure, not bad credentials.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, _, err = svc.Login(context.Background(), "known@example.com", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrAuth)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	registerAccount(t, svc, "ok@example.com")

	sess, acc, err := svc.Login(ctx, "ok@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, sess.AccountID)
	assert.Equal(t, "ok@example.com", sess.Email)
}

func TestManagedMutations_RequireManagerRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	student := sessionWithRole(models.RoleStudent)

	mutations := map[string]func(*session.Session) error{
		"post announcement": func(s *session.Session) error {
			_, err := svc.PostAnnouncement(ctx, s, PostAnnouncementInput{Title: "t"})
			return err
		},
		"delete announcement": func(s *session.Session) error {
			return svc.DeleteAnnouncement(ctx, s, 1)
		},
		"add schedule item": func(s *session.Session) error {
			_, err := svc.AddScheduleItem(ctx, s, AddScheduleItemInput{Day: "Monday", Subject: "Grammar"})
			return err
		},
		"delete schedule item": func(s *session.Session) error {
			return svc.DeleteScheduleItem(ctx, s, 1)
		},
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, mutate(student), models.ErrForbidden)
			assert.NoError(t, mutate(sessionWithRole(models.RoleDelegate)))
			assert.NoError(t, mutate(sessionWithRole(models.RoleAdmin)))
		})
	}
}

func TestPostAnnouncement_NormalizesPriority(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	delegate := sessionWithRole(models.RoleDelegate)

	post, err := svc.PostAnnouncement(ctx, delegate, PostAnnouncementInput{Title: "Exam", Priority: "shouty"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityNormal, post.Priority)

	urgent, err := svc.PostAnnouncement(ctx, delegate, PostAnnouncementInput{Title: "Fire drill", Priority: "urgent"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, urgent.Priority)
}

func TestPromoteAccount_AdminOnly(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	target := registerAccount(t, svc, "target@example.com")

	err := svc.PromoteAccount(ctx, sessionWithRole(models.RoleDelegate), target.AccountID, models.RoleDelegate)
	assert.ErrorIs(t, err, models.ErrForbidden)

	err = svc.PromoteAccount(ctx, sessionWithRole(models.RoleAdmin), target.AccountID, models.Role("emperor"))
	assert.ErrorIs(t, err, models.ErrValidation)

	require.NoError(t, svc.PromoteAccount(ctx, sessionWithRole(models.RoleAdmin), target.AccountID, models.RoleDelegate))
	acc, err := st.AccountByID(ctx, target.AccountID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDelegate, acc.Role)
}
