package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzabot/internal/database/databasetest"
	"pizzabot/internal/models"
)

// stepClock returns a clock that advances one minute per call.
func stepClock() func() time.Time {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithClock(stepClock())}, opts...)
	return NewStore(databasetest.Open(t), opts...)
}

func pizzaOrder(name string) NewOrder {
	return NewOrder{
		CustomerName:  name,
		Address:       "House 1, Street 2",
		Items:         models.OrderItems{{Name: "Large Pizza", Price: 1500}, {Name: "Cola Next", Price: 80}},
		Total:         1580,
		PaymentMethod: "Cash on Delivery",
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := pizzaOrder("Ali Khan")
	id, err := store.Create(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in.Items, got.Items)
	assert.Equal(t, in.Total, got.TotalAmount)
	assert.Equal(t, in.PaymentMethod, got.PaymentMethod)
	assert.Equal(t, "Ali Khan", got.CustomerName)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.False(t, got.Timestamp.IsZero())
}

func TestCreate_IDsIncrease(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, pizzaOrder("A"))
	require.NoError(t, err)
	second, err := store.Create(ctx, pizzaOrder("B"))
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*NewOrder)
		field string
	}{
		{name: "empty name", mod: func(o *NewOrder) { o.CustomerName = "" }, field: "customer_name"},
		{name: "blank name", mod: func(o *NewOrder) { o.CustomerName = "   " }, field: "customer_name"},
		{name: "total too high", mod: func(o *NewOrder) { o.Total = 2000 }, field: "total"},
		{name: "total too low", mod: func(o *NewOrder) { o.Total = 0 }, field: "total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			ctx := context.Background()

			in := pizzaOrder("Ali")
			tt.mod(&in)
			_, err := store.Create(ctx, in)
			require.Error(t, err)

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)

			all, err := store.ListAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestCreate_SnapshotIsIndependentOfCaller(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := pizzaOrder("Sara")
	id, err := store.Create(ctx, in)
	require.NoError(t, err)

	in.Items[0].Price = 1
	got, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got.Items[0].Price)
}

func TestListAll_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := store.Create(ctx, pizzaOrder(name))
		require.NoError(t, err)
	}

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].CustomerName)
	assert.Equal(t, "second", all[1].CustomerName)
	assert.Equal(t, "first", all[2].CustomerName)
}

func TestFindByID_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.FindByID(context.Background(), 42)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestFindByNameFuzzy(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Ali Khan", "Sara", "ALIYA", "Bob_Smith"} {
		_, err := store.Create(ctx, pizzaOrder(name))
		require.NoError(t, err)
	}

	matches, err := store.FindByNameFuzzy(ctx, "ali")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "ALIYA", matches[0].CustomerName)
	assert.Equal(t, "Ali Khan", matches[1].CustomerName)

	all, err := store.FindByNameFuzzy(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := store.FindByNameFuzzy(ctx, "zed")
	require.NoError(t, err)
	assert.Empty(t, none)

	// wildcards in the query are literal
	underscore, err := store.FindByNameFuzzy(ctx, "b_s")
	require.NoError(t, err)
	require.Len(t, underscore, 1)
	assert.Equal(t, "Bob_Smith", underscore[0].CustomerName)

	percent, err := store.FindByNameFuzzy(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, percent)
}

func TestFindByNameFuzzy_FoldsNonASCII(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"ÄLI Öztürk", "Zoë", "Sara"} {
		_, err := store.Create(ctx, pizzaOrder(name))
		require.NoError(t, err)
	}

	upper, err := store.FindByNameFuzzy(ctx, "äli")
	require.NoError(t, err)
	require.Len(t, upper, 1)
	assert.Equal(t, "ÄLI Öztürk", upper[0].CustomerName)

	lower, err := store.FindByNameFuzzy(ctx, "ZOË")
	require.NoError(t, err)
	require.Len(t, lower, 1)
	assert.Equal(t, "Zoë", lower[0].CustomerName)

	mixed, err := store.FindByNameFuzzy(ctx, "öZTÜ")
	require.NoError(t, err)
	assert.Len(t, mixed, 1)
}

func TestUpdateStatus_NotFoundCreatesNothing(t *testing.T) {
	for _, strict := range []bool{true, false} {
		store := newTestStore(t, WithStrictTransitions(strict))
		ctx := context.Background()

		err := store.UpdateStatus(ctx, 99, models.OrderStatusCooking)
		assert.True(t, errors.Is(err, models.ErrNotFound), "strict=%v: %v", strict, err)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	}
}

func TestUpdateStatus_StrictLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, pizzaOrder("Ali"))
	require.NoError(t, err)

	err = store.UpdateStatus(ctx, id, models.OrderStatusDelivered)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))

	require.NoError(t, store.UpdateStatus(ctx, id, models.OrderStatusCooking))
	require.NoError(t, store.UpdateStatus(ctx, id, models.OrderStatusCooking), "same status is a no-op")
	require.NoError(t, store.UpdateStatus(ctx, id, models.OrderStatusDelivered))

	err = store.UpdateStatus(ctx, id, models.OrderStatusCancelled)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))

	err = store.UpdateStatus(ctx, id, models.OrderStatusPending)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))

	got, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)
}

func TestUpdateStatus_LenientAllowsAnyMove(t *testing.T) {
	store := newTestStore(t, WithStrictTransitions(false))
	ctx := context.Background()

	id, err := store.Create(ctx, pizzaOrder("Ali"))
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(ctx, id, models.OrderStatusDelivered))
	require.NoError(t, store.UpdateStatus(ctx, id, models.OrderStatusPending))

	got, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	store := newTestStore(t)
	err := store.UpdateStatus(context.Background(), 1, models.OrderStatus("Burnt"))
	assert.True(t, models.IsValidation(err))
}
