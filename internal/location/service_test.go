package location_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsense/airsense/internal/location"
)

func newService() *location.Service {
	return location.NewService(location.NewInMemoryRepository())
}

func TestService_Create(t *testing.T) {
	svc := newService()

	loc, err := svc.Create(context.Background(), location.CreateInput{
		Label: "Home",
		Lat:   52.37,
		Lon:   4.89,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(loc.ID, "loc_"))
	assert.Equal(t, "Home", loc.Label)
	assert.False(t, loc.CreatedAt.IsZero())
}

func TestService_Create_Validation(t *testing.T) {
	svc := newService()

	tests := []struct {
		name  string
		input location.CreateInput
		field string
	}{
		{"missing label", location.CreateInput{Lat: 1, Lon: 1}, "label"},
		{"label too long", location.CreateInput{Label: strings.Repeat("x", 81), Lat: 1, Lon: 1}, "label"},
		{"lat out of range", location.CreateInput{Label: "a", Lat: 91, Lon: 1}, "lat"},
		{"lon out of range", location.CreateInput{Label: "a", Lat: 1, Lon: 181}, "lon"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			require.Error(t, err)

			var verr *location.ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Errors)
			assert.Equal(t, tc.field, verr.Errors[0].Field)
		})
	}
}

func TestService_GetUpdateDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, location.CreateInput{Label: "Office", Lat: 51.92, Lon: 4.48})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office", got.Label)

	updated, err := svc.Update(ctx, created.ID, location.UpdateInput{Label: "HQ", Lat: 51.92, Lon: 4.48})
	require.NoError(t, err)
	assert.Equal(t, "HQ", updated.Label)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, location.ErrLocationNotFound)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := newService()

	_, err := svc.Update(context.Background(), "loc_missing", location.UpdateInput{Label: "x", Lat: 0, Lon: 0})
	assert.ErrorIs(t, err, location.ErrLocationNotFound)
}

func TestService_List(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, label := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, location.CreateInput{Label: label, Lat: 1, Lon: 1})
		require.NoError(t, err)
	}

	locations, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, locations, 2)
}
