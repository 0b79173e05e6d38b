package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDate_ISODateOnly(t *testing.T) {
	got, err := parseLocalDate("2026-08-14", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC), got)
}

func TestParseLocalDate_ISODateTimeWithT(t *testing.T) {
	got, err := parseLocalDate("2026-08-14T15:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 14, 15, 30, 0, 0, time.UTC), got)
}

func TestParseLocalDate_ISODateTimeWithSpace(t *testing.T) {
	got, err := parseLocalDate("2026-08-14 09:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC), got)
}

func TestParseLocalDate_SlashFormat(t *testing.T) {
	got, err := parseLocalDate("14/08/2026", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC), got)
}

func TestParseLocalDate_SlashFormatWithTime(t *testing.T) {
	got, err := parseLocalDate("14/08/2026 18:45", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 14, 18, 45, 0, 0, time.UTC), got)
}

func TestParseLocalDate_Empty(t *testing.T) {
	_, err := parseLocalDate("  ", time.UTC)
	require.Error(t, err)
}

func TestParseLocalDate_Garbage(t *testing.T) {
	_, err := parseLocalDate("not-a-date", time.UTC)
	require.Error(t, err)
}

func TestParseLocalDate_AttachesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	got, err := parseLocalDate("2026-08-14", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
}
