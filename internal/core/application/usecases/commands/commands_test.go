package commands_test

import (
	"testing"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/domain/model/gate"
	"depot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateRedeliveryCommand(t *testing.T) {
	t.Run("should report every violation", func(t *testing.T) {
		payload := redeliveryPayload("")
		payload.Details[0].Units[0].UnitNumber = "bad"

		_, err := commands.NewCreateRedeliveryCommand(internal, payload)

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		fields := make([]string, 0, len(validationErr.Violations))
		for _, v := range validationErr.Violations {
			fields = append(fields, v.Field)
		}
		assert.Contains(t, fields, "redeliveryNumber")
		assert.Contains(t, fields, "details[0].units[0].unitNumber")
	})

	t.Run("should keep caller and payload", func(t *testing.T) {
		cmd, err := commands.NewCreateRedeliveryCommand(external, redeliveryPayload("AHAMG33141"))

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.Caller().IsExternal())
		assert.Equal(t, "AHAMG33141", cmd.Payload().RedeliveryNumber)
	})
}

func TestNewUpdateRedeliveryCommand(t *testing.T) {
	t.Run("should take over the addressed number", func(t *testing.T) {
		cmd, err := commands.NewUpdateRedeliveryCommand(internal, "AHAMG33141", redeliveryPayload(""))

		require.NoError(t, err)
		assert.Equal(t, "AHAMG33141", cmd.Payload().RedeliveryNumber)
	})

	t.Run("should reject a different number in the payload", func(t *testing.T) {
		_, err := commands.NewUpdateRedeliveryCommand(internal, "AHAMG33141", redeliveryPayload("AHAMG99999"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewCancelRedeliveryCommand(t *testing.T) {
	_, err := commands.NewCancelRedeliveryCommand(internal, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewCancelRedeliveryCommand(internal, "AHAMG33141")
	require.NoError(t, err)
	assert.Equal(t, "AHAMG33141", cmd.Number())
}

func TestNewCreateGateCommand(t *testing.T) {
	t.Run("should parse the movement", func(t *testing.T) {
		cmd, err := commands.NewCreateGateCommand(internal, gatePayload("OUT"))

		require.NoError(t, err)
		assert.Equal(t, gate.DirectionOut, cmd.Direction())
		assert.Equal(t, gate.ConditionSound, cmd.Condition())
		assert.Equal(t, gate.Key{
			UnitNumber: "TRLU1234567", AdviceNumber: "AHAMG33141", Depot: "DEHAMDEP1", Direction: gate.DirectionOut,
		}, cmd.Key())
	})

	t.Run("should reject an unknown gate type", func(t *testing.T) {
		payload := gatePayload("SIDEWAYS")

		_, err := commands.NewCreateGateCommand(internal, payload)

		require.ErrorIs(t, err, errs.ErrValidationRejected)
	})
}

func TestNewCreateEstimateCommand(t *testing.T) {
	t.Run("should compute totals", func(t *testing.T) {
		cmd, err := commands.NewCreateEstimateCommand(internal, estimatePayload("D"))

		require.NoError(t, err)
		assert.True(t, cmd.Content().Totals().Total.Equal(decimal.NewFromInt(150)))
	})

	t.Run("should accept a matching supplied total", func(t *testing.T) {
		payload := estimatePayload("D")
		total := decimal.RequireFromString("150.00")
		payload.Total = &total

		_, err := commands.NewCreateEstimateCommand(internal, payload)

		require.NoError(t, err)
	})

	t.Run("should reject a supplied total that does not match", func(t *testing.T) {
		payload := estimatePayload("D")
		total := decimal.NewFromInt(151)
		payload.Total = &total

		_, err := commands.NewCreateEstimateCommand(internal, payload)

		require.ErrorIs(t, err, errs.ErrInvariantViolated)
	})

	t.Run("should reject an unknown condition", func(t *testing.T) {
		_, err := commands.NewCreateEstimateCommand(internal, estimatePayload("Z"))

		require.ErrorIs(t, err, errs.ErrValidationRejected)
	})
}

func TestNewWorkOrderUnitCommand(t *testing.T) {
	_, err := commands.NewWorkOrderUnitCommand(internal, "", "bad")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewCreateWorkOrderCommand(internal, requests.WorkOrder{})
	require.ErrorIs(t, err, errs.ErrValidationRejected)
}
