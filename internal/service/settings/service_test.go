package settings

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/settings"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSettings struct {
	values map[string]string
}

func (m *memSettings) GetMany(_ context.Context, keys []string) (map[string]string, error) {
	out := map[string]string{}
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *memSettings) Upsert(_ context.Context, values map[string]string) error {
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

type fakeFiles struct{}

func (fakeFiles) UploadAvatar(_ context.Context, userID string, _ io.Reader, _ string) (string, error) {
	return "/uploads/avatars/" + userID + ".png", nil
}

func (fakeFiles) UploadLogo(_ context.Context, variant string, _ io.Reader, _ string) (string, error) {
	return "/uploads/logos/" + variant + ".png", nil
}

type recorder struct {
	events []sse.Event
}

func (r *recorder) Publish(e sse.Event) { r.events = append(r.events, e) }

func managerCtx() context.Context {
	return jwt.NewContext(context.Background(), user.Actor{UserID: "m1", EmployeeID: "e-m1", Role: user.RoleManager})
}

func employeeCtx() context.Context {
	return jwt.NewContext(context.Background(), user.Actor{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee})
}

func TestGetLogo_LegacyFallback(t *testing.T) {
	repo := &memSettings{values: map[string]string{
		settings.KeyLogoLegacy:    "https://cdn/legacy.png",
		settings.KeyLogoCollapsed: "  ",
	}}
	svc := NewSettingsService(repo, fakeFiles{}, &recorder{})

	got, err := svc.GetLogo(employeeCtx())

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/legacy.png", got.ExpandedLogoURL)
	assert.Equal(t, "https://cdn/legacy.png", got.CollapsedLogoURL)
	assert.Equal(t, got.ExpandedLogoURL, got.LogoURL)
}

func TestUpdateLogo(t *testing.T) {
	tests := []struct {
		name          string
		ctx           context.Context
		req           settings.UpdateLogoRequest
		wantErr       error
		wantExpanded  string
		wantCollapsed string
	}{
		{
			name:    "employee forbidden",
			ctx:     employeeCtx(),
			req:     settings.UpdateLogoRequest{LogoURL: "a.png"},
			wantErr: user.ErrManagerAccessRequired,
		},
		{
			name:    "all empty",
			ctx:     managerCtx(),
			req:     settings.UpdateLogoRequest{LogoURL: " ", ExpandedLogoURL: ""},
			wantErr: settings.ErrLogoEmpty,
		},
		{
			name:          "single logo fills both",
			ctx:           managerCtx(),
			req:           settings.UpdateLogoRequest{LogoURL: "a.png"},
			wantExpanded:  "a.png",
			wantCollapsed: "a.png",
		},
		{
			name:          "variants win over single logo",
			ctx:           managerCtx(),
			req:           settings.UpdateLogoRequest{LogoURL: "a.png", CollapsedLogoURL: "c.png"},
			wantExpanded:  "a.png",
			wantCollapsed: "c.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memSettings{values: map[string]string{}}
			pub := &recorder{}
			svc := NewSettingsService(repo, fakeFiles{}, pub)

			got, err := svc.UpdateLogo(tt.ctx, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, pub.events)
				assert.Empty(t, repo.values)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExpanded, got.ExpandedLogoURL)
			assert.Equal(t, tt.wantCollapsed, got.CollapsedLogoURL)
			assert.Equal(t, tt.wantExpanded, repo.values[settings.KeyLogoExpanded])
			require.Len(t, pub.events, 1)
			assert.Equal(t, sse.TopicLogoUpdated, pub.events[0].Topic)
			assert.Equal(t, sse.LogoUpdated{Expanded: tt.wantExpanded, Collapsed: tt.wantCollapsed}, pub.events[0].Data)
		})
	}
}

func TestUploadLogo_ReplacesOneVariant(t *testing.T) {
	repo := &memSettings{values: map[string]string{settings.KeyLogoLegacy: "old.png"}}
	pub := &recorder{}
	svc := NewSettingsService(repo, fakeFiles{}, pub)

	got, err := svc.UploadLogo(managerCtx(), settings.UploadLogoRequest{
		Variant:  "Collapsed",
		File:     strings.NewReader("img"),
		Filename: "logo.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "old.png", got.ExpandedLogoURL)
	assert.Equal(t, "/uploads/logos/collapsed.png", got.CollapsedLogoURL)
	assert.Len(t, pub.events, 1)

	_, err = svc.UploadLogo(managerCtx(), settings.UploadLogoRequest{Variant: "wide", File: strings.NewReader("x")})
	assert.Error(t, err)
}
