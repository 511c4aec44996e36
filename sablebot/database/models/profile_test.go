package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUnmarshalLegacyTimestamps(t *testing.T) {
	// The shape the original bot wrote: unix numbers for the accrual gains,
	// timezone-less isoformat strings for the daily claim and creation date.
	legacy := `{
		"id": "1",
		"username": "arthur",
		"sable": 420,
		"dernier_gain_message": 1748770000,
		"dernier_gain_vocal": 1748770000.5,
		"dernier_daily": "2025-06-01T09:12:33.123456",
		"date_creation": "2024-11-02T18:05:12"
	}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(legacy), &p))

	assert.Equal(t, int64(420), p.Sable)
	assert.Equal(t, int64(1748770000), p.DernierGainMessage.Unix())
	assert.Equal(t, int64(1748770000), p.DernierGainVocal.Unix())
	assert.Equal(t, 500000000, p.DernierGainVocal.Nanosecond())

	require.NotNil(t, p.DernierDaily)
	assert.True(t, p.DernierDaily.Equal(
		time.Date(2025, 6, 1, 9, 12, 33, 123456000, time.Local)))
	assert.True(t, p.DateCreation.Equal(
		time.Date(2024, 11, 2, 18, 5, 12, 0, time.Local)))
}

func TestProfileUnmarshalCurrentLayoutRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	original := NewProfile("1", "arthur", now)
	original.DernierGainMessage = now
	original.DernierDaily = &now

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Profile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.DernierGainMessage.Equal(now))
	require.NotNil(t, decoded.DernierDaily)
	assert.True(t, decoded.DernierDaily.Equal(now))
	assert.True(t, decoded.DateCreation.Equal(now))
}

func TestProfileUnmarshalMissingTimestamps(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"id": "1", "sable": 50, "dernier_daily": null}`), &p))

	assert.True(t, p.DernierGainMessage.IsZero())
	assert.True(t, p.DernierGainVocal.IsZero())
	assert.True(t, p.DateCreation.IsZero())
	assert.Nil(t, p.DernierDaily)
}
