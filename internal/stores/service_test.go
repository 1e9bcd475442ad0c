package stores

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	r := NewRepository(repo.OpenSQLite(t))
	svc, err := NewService(r)
	require.NoError(t, err)
	return svc, r
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestCreateStoreRejectsSameNameIgnoringCase(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "seller", CreateStoreInput{Name: "Night Shift Skate Co."})
	require.NoError(t, err)
	require.NotNil(t, created.Slug)
	assert.Equal(t, "night-shift-skate-co", *created.Slug)
	assert.False(t, created.Active)

	_, err = svc.Create(ctx, "someone-else", CreateStoreInput{Name: "night shift skate co."})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))

	_, err = svc.Create(ctx, "seller", CreateStoreInput{Name: "   "})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestUpdateStore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "seller", CreateStoreInput{Name: "First"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "seller", CreateStoreInput{Name: "Second"})
	require.NoError(t, err)

	active := true
	renamed := "FIRST"
	updated, err := svc.Update(ctx, "seller", first.ID, UpdateStoreInput{Name: &renamed, Active: &active})
	require.NoError(t, err)
	assert.Equal(t, "FIRST", updated.Name)
	assert.True(t, updated.Active)

	clash := "second"
	_, err = svc.Update(ctx, "seller", first.ID, UpdateStoreInput{Name: &clash})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))

	_, err = svc.Update(ctx, "intruder", first.ID, UpdateStoreInput{Active: &active})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestGetOwnedIncludesPaymentStatus(t *testing.T) {
	svc, r := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "seller", CreateStoreInput{Name: "Paid Shop"})
	require.NoError(t, err)

	dto, err := svc.GetOwned(ctx, "seller", created.ID)
	require.NoError(t, err)
	assert.Nil(t, dto.Payment)
	assert.False(t, dto.PaymentsConnected)

	require.NoError(t, r.Conn().Create(&models.Payment{
		StoreID:          created.ID,
		StripeAccountID:  "acct_123",
		DetailsSubmitted: true,
	}).Error)
	acct := "acct_123"
	require.NoError(t, r.Conn().Model(&models.Store{}).Where("id = ?", created.ID).Update("stripe_account_id", acct).Error)

	dto, err = svc.GetOwned(ctx, "seller", created.ID)
	require.NoError(t, err)
	require.NotNil(t, dto.Payment)
	assert.Equal(t, "acct_123", dto.Payment.StripeAccountID)
	assert.True(t, dto.Payment.DetailsSubmitted)
	assert.True(t, dto.PaymentsConnected)

	_, err = svc.GetOwned(ctx, "other", created.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	_, err = svc.GetOwned(ctx, "seller", 999)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestListOwnedRequiresUser(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ListOwned(context.Background(), "", listquery.Normalize(url.Values{}, DirectorySchema))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "night-shift-skate-co", Slugify("  Night Shift -- Skate Co. "))
	assert.Equal(t, "", Slugify("!!!"))
	assert.Equal(t, "420-boards", Slugify("420 Boards"))
}
