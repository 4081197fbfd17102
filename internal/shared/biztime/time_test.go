package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMonthsUTC(t *testing.T) {
	start := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 4, 15, 10, 30, 0, 0, time.UTC), AddMonthsUTC(start, 1))

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	local := time.Date(2024, 3, 15, 17, 30, 0, 0, jakarta)
	assert.Equal(t, time.Date(2024, 4, 15, 10, 30, 0, 0, time.UTC), AddMonthsUTC(local, 1))
}

func TestFormatInBizTimezone(t *testing.T) {
	require.NoError(t, Init(""))
	ts := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-16 03:00", FormatInBizTimezone(ts, "2006-01-02 15:04"))
	assert.Equal(t, time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC), StartOfDayUTC(ts))
}
