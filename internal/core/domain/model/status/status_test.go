package status_test

import (
	"testing"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderStatus(t *testing.T) {
	t.Run("should create status with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		s, err := status.NewOrderStatus(id, "Processing", "#f0ad4e", false, false, "", status.ActionFlags{
			ReserveStock:     true,
			SendNotification: true,
		})

		require.NoError(t, err)
		assert.True(t, s.ID().IsEqual(id))
		assert.Equal(t, "Processing", s.Name())
		assert.Equal(t, "#f0ad4e", s.Color())
		assert.False(t, s.IsDefault())
		assert.False(t, s.IsExplanationRequired())
		assert.True(t, s.Actions().ReserveStock)
		assert.True(t, s.Actions().SendNotification)
		assert.False(t, s.Actions().ReduceStock)
		require.NoError(t, s.Validate())
	})

	t.Run("should create explanation-gated status with label", func(t *testing.T) {
		s, err := status.NewOrderStatus(kernel.NewUUID(), "Refunded", "#d9534f", false,
			true, "Reason for refund", status.ActionFlags{MarkAsRefunded: true})

		require.NoError(t, err)
		assert.True(t, s.IsExplanationRequired())
		assert.Equal(t, "Reason for refund", s.ExplanationLabel())
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		testCases := []struct {
			name     string
			setup    func() (*status.OrderStatus, error)
			expected string
		}{
			{
				name: "zero value id",
				setup: func() (*status.OrderStatus, error) {
					var id kernel.UUID
					return status.NewOrderStatus(id, "Placed", "", true, false, "", status.ActionFlags{})
				},
				expected: "UUID",
			},
			{
				name: "empty name",
				setup: func() (*status.OrderStatus, error) {
					return status.NewOrderStatus(kernel.NewUUID(), "", "", false, false, "", status.ActionFlags{})
				},
				expected: "name",
			},
			{
				name: "explanation required without label",
				setup: func() (*status.OrderStatus, error) {
					return status.NewOrderStatus(kernel.NewUUID(), "Cancelled", "", false, true, "", status.ActionFlags{})
				},
				expected: "explanationLabel",
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.setup()
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expected)
			})
		}
	})
}

func TestOrderStatus_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var s status.OrderStatus
		err := s.Validate()

		require.Error(t, err)
		assert.Equal(t, status.ErrOrderStatusIsNotConstructed, err)
	})

	t.Run("nil pointer fails validation", func(t *testing.T) {
		var s *status.OrderStatus
		require.Error(t, s.Validate())
	})
}

func TestOrderStatus_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, _ := status.NewOrderStatus(id, "Placed", "", true, false, "", status.ActionFlags{})
	b, _ := status.NewOrderStatus(id, "Renamed", "#fff", true, false, "", status.ActionFlags{})
	c, _ := status.NewOrderStatus(kernel.NewUUID(), "Placed", "", true, false, "", status.ActionFlags{})

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}

func TestNewTransition(t *testing.T) {
	t.Run("should create transition with valid parameters", func(t *testing.T) {
		from := kernel.NewUUID()
		to := kernel.NewUUID()

		tr, err := status.NewTransition(from, to, "Mark as shipped", true)

		require.NoError(t, err)
		assert.True(t, tr.FromID().IsEqual(from))
		assert.True(t, tr.ToID().IsEqual(to))
		assert.Equal(t, "Mark as shipped", tr.Label())
		assert.True(t, tr.IsScanningRequired())
		require.NoError(t, tr.Validate())
	})

	t.Run("should reject self loop", func(t *testing.T) {
		id := kernel.NewUUID()
		_, err := status.NewTransition(id, id, "Noop", false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "itself")
	})

	t.Run("should reject empty label", func(t *testing.T) {
		_, err := status.NewTransition(kernel.NewUUID(), kernel.NewUUID(), "", false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "label")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var tr status.Transition
		err := tr.Validate()

		require.Error(t, err)
		assert.Equal(t, status.ErrTransitionIsNotConstructed, err)
	})
}
