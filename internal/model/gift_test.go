package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalStatus(t *testing.T) {
	tests := []struct {
		name   string
		result GiftResultItem
		want   OwnershipStatus
		ok     bool
	}{
		{
			name:   "success marks owned",
			result: GiftResultItem{Success: true},
			want:   StatusOwned,
			ok:     true,
		},
		{
			name:   "owned error tag",
			result: GiftResultItem{Error: "GiftResponseError: item is owned by the receiver"},
			want:   StatusOwned,
			ok:     true,
		},
		{
			name:   "conflict status code",
			result: GiftResultItem{StatusCode: 409},
			want:   StatusOwned,
			ok:     true,
		},
		{
			name:   "purchase not allowed tag",
			result: GiftResultItem{Error: "purchase not allowed for this item"},
			want:   StatusPurchaseNotAllowed,
			ok:     true,
		},
		{
			name:   "purchase not allowed camel tag",
			result: GiftResultItem{Error: "GiftResponseError_PurchaseNotAllowed"},
			want:   StatusPurchaseNotAllowed,
			ok:     true,
		},
		{
			name:   "rate limit is never terminal",
			result: GiftResultItem{Error: RateLimitSenderError, StatusCode: 409},
			ok:     false,
		},
		{
			name:   "plain failure is not terminal",
			result: GiftResultItem{Error: "timeout talking to upstream", StatusCode: 500},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := tt.result.TerminalStatus()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, status)
			}
		})
	}
}

func TestGiftResponseRateLimited(t *testing.T) {
	assert.True(t, (&GiftResponse{Error: RateLimitSenderError}).RateLimited())
	assert.True(t, (&GiftResponse{
		Details: &GiftDetails{Error: RateLimitSenderError},
	}).RateLimited())
	assert.False(t, (&GiftResponse{Error: "other"}).RateLimited())
	assert.False(t, (&GiftResponse{}).RateLimited())
}

func TestGiftResponseAccessors(t *testing.T) {
	empty := &GiftResponse{}
	assert.Nil(t, empty.Results())
	_, ok := empty.RemainingBalance()
	assert.False(t, ok)

	left := 4200
	full := &GiftResponse{
		Success: true,
		Details: &GiftDetails{
			Results:        []GiftResultItem{{ItemID: "a", Success: true}},
			KeyBalanceLeft: &left,
		},
	}
	assert.Len(t, full.Results(), 1)
	got, ok := full.RemainingBalance()
	assert.True(t, ok)
	assert.Equal(t, 4200, got)
}

func TestOwnershipStatusValid(t *testing.T) {
	assert.True(t, StatusOwned.Valid())
	assert.True(t, StatusPurchaseNotAllowed.Valid())
	assert.False(t, OwnershipStatus("banned").Valid())
	assert.False(t, OwnershipStatus("").Valid())
}
