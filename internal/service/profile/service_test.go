package profile

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id, name string, avatarURL *string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.Name = name
	if avatarURL != nil {
		u.AvatarURL = avatarURL
	}
	f.users[id] = u
	return u, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	u := f.users[id]
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

type fakeFiles struct{}

func (fakeFiles) UploadAvatar(_ context.Context, userID string, _ io.Reader, _ string) (string, error) {
	return "/uploads/avatars/" + userID + ".png", nil
}

func (fakeFiles) UploadLogo(_ context.Context, variant string, _ io.Reader, _ string) (string, error) {
	return "", nil
}

func setup(t *testing.T) (*fakeUsers, *sse.Hub, user.ProfileService, context.Context) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUsers{users: map[string]user.User{
		"u1": {ID: "u1", Email: "budi@example.com", Name: "Budi", Role: user.RoleEmployee, PasswordHash: string(hash)},
	}}
	hub := sse.NewHub()
	svc := NewProfileService(users, fakeFiles{}, hub)
	ctx := jwt.NewContext(context.Background(), user.Actor{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee})
	return users, hub, svc, ctx
}

func TestUpdateMe_PublishesToOwnSessions(t *testing.T) {
	_, hub, svc, ctx := setup(t)
	mine, stopMine := hub.Subscribe("u1", sse.TopicProfileUpdated)
	defer stopMine()
	other, stopOther := hub.Subscribe("u2", sse.TopicProfileUpdated)
	defer stopOther()

	got, err := svc.UpdateMe(ctx, user.UpdateProfileRequest{Name: "  Budi Santoso "})

	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", got.Name)
	require.Len(t, mine, 1)
	event := <-mine
	assert.Equal(t, "Budi Santoso", event.Data.(sse.ProfileUpdated).Name)
	assert.Len(t, other, 0)
}

func TestUpdateMe_Invalid(t *testing.T) {
	_, hub, svc, ctx := setup(t)
	ch, stop := hub.Subscribe("u1")
	defer stop()

	_, err := svc.UpdateMe(ctx, user.UpdateProfileRequest{Name: "   "})

	assert.Error(t, err)
	assert.Len(t, ch, 0)

	_, err = svc.GetMe(context.Background())
	assert.ErrorIs(t, err, user.ErrUnauthenticated)
}

func TestChangePassword(t *testing.T) {
	users, _, svc, ctx := setup(t)

	err := svc.ChangePassword(ctx, user.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, user.ErrWrongPassword)

	err = svc.ChangePassword(ctx, user.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "abc"})
	assert.Error(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "newsecret"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.users["u1"].PasswordHash), []byte("newsecret")))
}

func TestUploadAvatar(t *testing.T) {
	_, _, svc, ctx := setup(t)

	got, err := svc.UploadAvatar(ctx, strings.NewReader("png"), "me.png")

	require.NoError(t, err)
	require.NotNil(t, got.AvatarURL)
	assert.Equal(t, "/uploads/avatars/u1.png", *got.AvatarURL)
	assert.Equal(t, "Budi", got.Name)
}
