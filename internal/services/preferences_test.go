package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
)

type fakePrefsRepo struct {
	byUser map[uuid.UUID]*domain.UserPreferences
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{byUser: make(map[uuid.UUID]*domain.UserPreferences)}
}

func (f *fakePrefsRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	return f.byUser[userID], nil
}

func (f *fakePrefsRepo) Upsert(dbc dbctx.Context, prefs *domain.UserPreferences) (*domain.UserPreferences, error) {
	f.byUser[prefs.UserID] = prefs
	return prefs, nil
}

func TestPreferencesGetOrCreateSeedsDefaults(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := NewPreferencesService(nil, testLogger(t), repo)
	userID := uuid.New()

	prefs, err := svc.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 12, prefs.Horizon)
	require.True(t, prefs.GatingEnabled)
	require.InDelta(t, 0.95, prefs.ConfidenceLevel, 1e-9)

	// Second read returns the stored row, not a fresh default.
	prefs.Horizon = 26
	again, err := svc.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 26, again.Horizon)
}

func TestPreferencesUpdateValidation(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := NewPreferencesService(nil, testLogger(t), repo)
	userID := uuid.New()

	badHorizon := 53
	_, err := svc.Update(context.Background(), userID, PreferencesUpdate{Horizon: &badHorizon})
	require.Error(t, err)

	badConfidence := 1.0
	_, err = svc.Update(context.Background(), userID, PreferencesUpdate{ConfidenceLevel: &badConfidence})
	require.Error(t, err)

	horizon, gating := 26, false
	prefs, err := svc.Update(context.Background(), userID, PreferencesUpdate{Horizon: &horizon, GatingEnabled: &gating})
	require.NoError(t, err)
	require.Equal(t, 26, prefs.Horizon)
	require.False(t, prefs.GatingEnabled)
	require.InDelta(t, 0.95, prefs.ConfidenceLevel, 1e-9)
}
