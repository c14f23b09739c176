package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/settings"
	"github.com/dmitrijs2005/finkeeper/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget_RemainingExample(t *testing.T) {
	svc := NewBudgetService(newStore(t).Settings())
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, models.Budget{
		Income:        money.MustParse("5000"),
		Rent:          money.MustParse("1200"),
		Food:          money.MustParse("300"),
		Transport:     money.MustParse("150"),
		Entertainment: money.MustParse("200"),
	}))

	rem, err := svc.Remaining(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3150.00", rem.String())
}

func TestBudget_DefaultsToZero(t *testing.T) {
	svc := NewBudgetService(newStore(t).Settings())

	b, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Budget{}, b)
}

func TestBudget_SetOverwrites(t *testing.T) {
	svc := NewBudgetService(newStore(t).Settings())
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, models.Budget{Income: money.MustParse("10")}))
	require.NoError(t, svc.Set(ctx, models.Budget{Income: money.MustParse("20"), Food: money.MustParse("5")}))

	b, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "15.00", b.Remaining().String())
}

func TestBudget_CorruptValue(t *testing.T) {
	repo := newStore(t).Settings()
	require.NoError(t, repo.Set(context.Background(), settings.KeyBudget, []byte("{not json")))

	_, err := NewBudgetService(repo).Get(context.Background())
	assert.ErrorContains(t, err, "decode budget")
}
