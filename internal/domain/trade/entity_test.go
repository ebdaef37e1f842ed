//go:build unit

package trade_test

import (
	"testing"

	"secondhand-market/internal/domain/trade"
	"secondhand-market/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		buyerID := uuid.New()
		sellerID := uuid.New()
		productID := uuid.New()

		actual, err := trade.NewReservation(buyerID, sellerID, productID)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, buyerID, actual.BuyerID())
		assert.Equal(t, sellerID, actual.SellerID())
		assert.Equal(t, productID, actual.ProductID())
		assert.Equal(t, trade.StatusRequested, actual.Status())
		assert.True(t, actual.IsActive())
		assert.False(t, actual.IsCanceled())
	})

	t.Run("buyer equals seller", func(t *testing.T) {
		id := uuid.New()
		actual, err := trade.NewReservation(id, id, uuid.New())
		require.ErrorIs(t, err, trade.ErrOwnProduct)
		assert.Nil(t, actual)
	})
}

func TestRoleOf(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	assert.Equal(t, trade.RoleBuyer, trade.RoleOf(buyerID, buyerID, sellerID))
	assert.Equal(t, trade.RoleSeller, trade.RoleOf(sellerID, buyerID, sellerID))
	assert.Equal(t, trade.RoleNone, trade.RoleOf(uuid.New(), buyerID, sellerID))
}

func TestStatus(t *testing.T) {
	t.Run("validity", func(t *testing.T) {
		for _, s := range []trade.Status{
			trade.StatusRequested,
			trade.StatusAccepted,
			trade.StatusDeclined,
			trade.StatusCancelled,
			trade.StatusCompleted,
		} {
			assert.True(t, s.IsValid(), s.String())
		}
		assert.False(t, trade.Status("SHIPPED").IsValid())
		assert.False(t, trade.Status("requested").IsValid())
	})

	t.Run("terminality", func(t *testing.T) {
		assert.False(t, trade.StatusRequested.IsTerminal())
		assert.False(t, trade.StatusAccepted.IsTerminal())
		assert.True(t, trade.StatusDeclined.IsTerminal())
		assert.True(t, trade.StatusCancelled.IsTerminal())
		assert.True(t, trade.StatusCompleted.IsTerminal())
	})
}

func TestIsCanceled(t *testing.T) {
	for _, tc := range []struct {
		status   trade.Status
		expected bool
	}{
		{trade.StatusRequested, false},
		{trade.StatusAccepted, false},
		{trade.StatusDeclined, false},
		{trade.StatusCancelled, true},
		{trade.StatusCompleted, false},
	} {
		res := builder.NewReservationBuilder().WithStatus(tc.status).BuildDomain()
		assert.Equal(t, tc.expected, res.IsCanceled(), tc.status.String())
	}
}

func TestEnsureDeletableBy(t *testing.T) {
	type testCase struct {
		name     string
		status   trade.Status
		bySeller bool
		errIs    error
	}

	cases := []testCase{
		{name: "buyer deletes REQUESTED", status: trade.StatusRequested},
		{name: "buyer deletes DECLINED", status: trade.StatusDeclined},
		{name: "buyer deletes CANCELLED", status: trade.StatusCancelled},
		{name: "buyer deletes ACCEPTED", status: trade.StatusAccepted, errIs: trade.ErrNotDeletable},
		{name: "buyer deletes COMPLETED", status: trade.StatusCompleted, errIs: trade.ErrNotDeletable},
		{name: "seller deletes REQUESTED", status: trade.StatusRequested, bySeller: true, errIs: trade.ErrNotBuyer},
		{name: "seller deletes CANCELLED", status: trade.StatusCancelled, bySeller: true, errIs: trade.ErrNotBuyer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewReservationBuilder().WithStatus(tc.status)
			res := b.BuildDomain()

			actorID := b.BuyerID
			if tc.bySeller {
				actorID = b.SellerID
			}

			err := res.EnsureDeletableBy(actorID)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
