package models

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortKeyLexicographicMatchesChronological(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(9 * time.Millisecond),
		base,
		base.Add(time.Second),
		base.Add(100 * time.Nanosecond),
		base.Add(time.Minute),
	}

	keys := make([]string, len(times))
	for i, ts := range times {
		keys[i] = SortKey(ts, "id")
	}

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	chronological := append([]time.Time(nil), times...)
	sort.Slice(chronological, func(i, j int) bool { return chronological[i].Before(chronological[j]) })

	for i, ts := range chronological {
		assert.Equal(t, SortKey(ts, "id"), sorted[i])
	}
}

func TestSortKeyDistinctForIdenticalTimestamps(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)

	a := NewDetection("t1", ts, nil, nil, "10.0.0.1", "MALWARE", "92.1%")
	b := NewDetection("t1", ts, nil, nil, "10.0.0.1", "MALWARE", "92.1%")

	require.NotEqual(t, a.DetectionID, b.DetectionID)
	assert.NotEqual(t, a.SortKey, b.SortKey)
}

func TestSortKeyTimestampPrefixIsFixedWidth(t *testing.T) {
	whole := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	frac := time.Date(2026, 3, 1, 10, 0, 5, 120000000, time.UTC)

	wholeKey := SortKey(whole, "id")
	fracKey := SortKey(frac, "id")

	assert.Equal(t, len(wholeKey), len(fracKey))
	assert.Less(t, wholeKey, fracKey)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com "))
}

func TestNewTenantStartsPendingProfile(t *testing.T) {
	tenant := NewTenant("C1", "123456789012", "prod-abc")

	assert.NotEmpty(t, tenant.TenantID)
	assert.True(t, tenant.IsPendingProfile())
	assert.False(t, tenant.IsActive())
	assert.Nil(t, tenant.VNI)
}
