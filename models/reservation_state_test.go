package models

import (
	"testing"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStateAllowedTransitions(t *testing.T) {
	cases := []struct {
		from   ReservationStatus
		action ReservationAction
		to     ReservationStatus
		room   RoomStatus
	}{
		{ReservationStatusPending, ActionConfirm, ReservationStatusConfirmed, RoomStatusReserved},
		{ReservationStatusPending, ActionCancel, ReservationStatusCancelled, RoomStatusAvailable},
		{ReservationStatusConfirmed, ActionComplete, ReservationStatusCompleted, RoomStatusAvailable},
		{ReservationStatusConfirmed, ActionCancel, ReservationStatusCancelled, RoomStatusAvailable},
		{ReservationStatusCompleted, ActionRequestRefund, ReservationStatusRefundInProgress, ""},
		{ReservationStatusCompleted, ActionRefund, ReservationStatusCancelled, ""},
		{ReservationStatusRefundInProgress, ActionApproveRefund, ReservationStatusRefunded, ""},
		{ReservationStatusRefundInProgress, ActionRejectRefund, ReservationStatusCompleted, ""},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"/"+string(tc.action), func(t *testing.T) {
			tr, err := NextState(tc.from, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.to, tr.To)
			assert.Equal(t, tc.room, tr.RoomStatus)
			assert.Equal(t, tc.from, tr.From)
		})
	}
}

func TestNextStateRejectsTerminalStates(t *testing.T) {
	for _, status := range []ReservationStatus{ReservationStatusCancelled, ReservationStatusRefunded} {
		for _, action := range []ReservationAction{ActionConfirm, ActionComplete, ActionCancel, ActionRequestRefund, ActionRefund} {
			assert.False(t, CanApply(status, action), "%s/%s", status, action)
		}
	}
}

func TestConfirmOnlyFromPendingMessage(t *testing.T) {
	_, err := NextState(ReservationStatusConfirmed, ActionConfirm)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidTransition))
	assert.Contains(t, err.Error(), "only pending reservations can be confirmed")
}

func TestInvalidTransitionNamesStateAndAction(t *testing.T) {
	_, err := NextState(ReservationStatusCancelled, ActionComplete)
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "complete")
	assert.Contains(t, appErr.Message, "cancelled")
}

func TestApplyMutatesOnlyOnSuccess(t *testing.T) {
	r := &Reservation{Status: ReservationStatusPending}
	_, err := r.Apply(ActionComplete)
	require.Error(t, err)
	assert.Equal(t, ReservationStatusPending, r.Status)

	tr, err := r.Apply(ActionConfirm)
	require.NoError(t, err)
	assert.Equal(t, ReservationStatusConfirmed, r.Status)
	assert.Equal(t, RoomStatusReserved, tr.RoomStatus)
}

func TestActiveStatuses(t *testing.T) {
	assert.True(t, ReservationStatusPending.IsActive())
	assert.True(t, ReservationStatusConfirmed.IsActive())
	assert.False(t, ReservationStatusCompleted.IsActive())
	assert.False(t, ReservationStatusCancelled.IsActive())
	assert.False(t, ReservationAction("bogus").IsValid())
	assert.True(t, ActionApproveRefund.IsValid())
}
