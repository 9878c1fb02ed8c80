package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagSet_ScanSplitsAndNormalizes(t *testing.T) {
	var tags TagSet
	require.NoError(t, tags.Scan("large, Pizza ,cheesy,, pizza"))
	assert.Equal(t, TagSet{"large", "pizza", "cheesy"}, tags)

	value, err := tags.Value()
	require.NoError(t, err)
	assert.Equal(t, "large, pizza, cheesy", value)
}

func TestTagSet_ScanNil(t *testing.T) {
	tags := TagSet{"x"}
	require.NoError(t, tags.Scan(nil))
	assert.Empty(t, tags)
}

func TestMenuItem_NormalizeMergesNameWords(t *testing.T) {
	item := MenuItem{Name: "Cola Next", Tags: TagSet{"Cola", "drink"}}
	item.Normalize()
	assert.Equal(t, TagSet{"cola", "drink", "next"}, item.Tags)
}

func TestValidateMenuItem(t *testing.T) {
	tests := []struct {
		name    string
		item    MenuItem
		wantErr bool
	}{
		{name: "valid", item: MenuItem{Name: "FizzUp", Price: 80, Tags: TagSet{"fizzup"}}},
		{name: "zero price", item: MenuItem{Name: "FizzUp", Price: 0, Tags: TagSet{"fizzup"}}, wantErr: true},
		{name: "negative price", item: MenuItem{Name: "FizzUp", Price: -5, Tags: TagSet{"fizzup"}}, wantErr: true},
		{name: "no tags", item: MenuItem{Name: "FizzUp", Price: 80}, wantErr: true},
		{name: "no name", item: MenuItem{Price: 80, Tags: TagSet{"x"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMenuItem(&tt.item)
			if tt.wantErr {
				assert.True(t, IsConfiguration(err), "expected configuration error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderItems_RoundTrip(t *testing.T) {
	items := OrderItems{{Name: "Large Pizza", Price: 1500}, {Name: "Cola Next", Price: 80}}
	value, err := items.Value()
	require.NoError(t, err)

	var decoded OrderItems
	require.NoError(t, decoded.Scan([]byte(value.(string))))
	assert.Equal(t, items, decoded)
	assert.Equal(t, int64(1580), decoded.Total())
}

func TestOrderStatus_Transitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCooking))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusDelivered))
	assert.True(t, OrderStatusCooking.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusCooking))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPending))

	assert.ElementsMatch(t, []OrderStatus{OrderStatusPending, OrderStatusCooking}, OrderStatusCancelled.Predecessors())
	assert.Empty(t, OrderStatusPending.Predecessors())
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus(" cooking ")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusCooking, status)

	_, ok = ParseOrderStatus("burnt")
	assert.False(t, ok)
}

func TestIsValidation_Wrapped(t *testing.T) {
	err := fmt.Errorf("checkout: %w", NewValidationError("name", "is required"))
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(errors.New("boom")))
	assert.Equal(t, "checkout: name: is required", err.Error())
}
