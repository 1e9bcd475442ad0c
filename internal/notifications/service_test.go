package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func newSQLiteService(t *testing.T) (Service, *Repository) {
	t.Helper()
	r := NewRepository(repo.OpenSQLite(t))
	svc, err := NewService(r)
	require.NoError(t, err)
	return svc, r
}

func boolPtr(v bool) *bool { return &v }

func TestSubscribeCreatesPreferenceOnce(t *testing.T) {
	svc, r := newSQLiteService(t)
	ctx := context.Background()

	prefs, created, err := svc.Subscribe(ctx, "  Ana@Example.com ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ana@example.com", prefs.Email)
	assert.True(t, prefs.Newsletter)
	assert.True(t, prefs.Transactional)
	assert.False(t, prefs.Marketing)

	stored, err := r.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	_, err = uuid.Parse(stored.Token)
	require.NoError(t, err)

	_, created, err = svc.Subscribe(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, r.Conn().Model(&models.EmailPreference{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubscribeReenablesNewsletter(t *testing.T) {
	svc, r := newSQLiteService(t)
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &models.EmailPreference{Email: "ben@example.com", Token: uuid.NewString()}))

	prefs, created, err := svc.Subscribe(ctx, "ben@example.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, prefs.Newsletter)

	stored, err := r.FindByEmail(ctx, "ben@example.com")
	require.NoError(t, err)
	assert.True(t, stored.Newsletter)
}

func TestSubscribeRequiresEmail(t *testing.T) {
	svc, _ := newSQLiteService(t)
	_, _, err := svc.Subscribe(context.Background(), "   ")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestGetAndUpdateByToken(t *testing.T) {
	svc, r := newSQLiteService(t)
	ctx := context.Background()
	token := uuid.NewString()
	require.NoError(t, r.Create(ctx, &models.EmailPreference{
		Email: "cy@example.com", Token: token, Newsletter: true, Marketing: true, Transactional: true,
	}))

	prefs, err := svc.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "cy@example.com", prefs.Email)

	prefs, err = svc.Update(ctx, token, UpdatePreferencesInput{Marketing: boolPtr(false), Newsletter: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, prefs.Marketing)
	assert.False(t, prefs.Newsletter)
	assert.True(t, prefs.Transactional)

	stored, err := r.FindByToken(ctx, token)
	require.NoError(t, err)
	assert.False(t, stored.Marketing)
	assert.False(t, stored.Newsletter)
	assert.True(t, stored.Transactional)
}

func TestGetUnknownOrMalformedToken(t *testing.T) {
	svc, _ := newSQLiteService(t)
	for _, token := range []string{"", "not-a-token", uuid.NewString()} {
		_, err := svc.Get(context.Background(), token)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound), token)
	}
}

type racingRepository struct {
	existing *models.EmailPreference
	lookups  int
	updated  bool
}

func (r *racingRepository) FindByToken(context.Context, string) (*models.EmailPreference, error) {
	return nil, errors.New("unused")
}

func (r *racingRepository) FindByEmail(context.Context, string) (*models.EmailPreference, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.existing, nil
}

func (r *racingRepository) Create(context.Context, *models.EmailPreference) error {
	return errors.New(`ERROR: duplicate key value violates unique constraint "idx_email_preferences_email"`)
}

func (r *racingRepository) UpdateFlags(context.Context, *models.EmailPreference) error {
	r.updated = true
	return nil
}

func TestSubscribeRecoversFromConcurrentInsert(t *testing.T) {
	fake := &racingRepository{existing: &models.EmailPreference{Email: "dee@example.com", Token: uuid.NewString()}}
	svc, err := NewService(fake)
	require.NoError(t, err)

	prefs, created, err := svc.Subscribe(context.Background(), "dee@example.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, prefs.Newsletter)
	assert.True(t, fake.updated)
	assert.Equal(t, 2, fake.lookups)
}

func TestNewServiceRequiresRepository(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}
