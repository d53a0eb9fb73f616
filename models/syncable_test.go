package models

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncMeta_State_EmptyMeansSynced(t *testing.T) {
	// a bulk pull produces entities with no sync_state at all
	var rec DietRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"record_date":"2026-08-27"}`), &rec))
	assert.Equal(t, StateSynced, rec.State())

	rec.SetState(StatePendingUpdate)
	assert.Equal(t, StatePendingUpdate, rec.State())
}

func TestSyncMeta_Touch(t *testing.T) {
	m := &SyncMeta{}

	m.Touch("2026-08-27T10:00:00Z")
	assert.Equal(t, "2026-08-27T10:00:00Z", m.CreatedAt)
	assert.Equal(t, "2026-08-27T10:00:00Z", m.UpdatedAt)

	// a later touch never rewrites CreatedAt
	m.Touch("2026-08-27T11:00:00Z")
	assert.Equal(t, "2026-08-27T10:00:00Z", m.CreatedAt)
	assert.Equal(t, "2026-08-27T11:00:00Z", m.UpdatedAt)
}

func TestIsTempID(t *testing.T) {
	assert.False(t, IsTempID(0))
	assert.False(t, IsTempID(1))
	assert.False(t, IsTempID(999_999_999_999))
	assert.True(t, IsTempID(tempIDFloor))
	assert.True(t, IsTempID(time.Now().UnixMilli()))
}

func TestTempIDGenerator_Monotonic(t *testing.T) {
	gen := &TempIDGenerator{}

	prev := gen.Next()
	assert.True(t, IsTempID(prev))
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestTempIDGenerator_ConcurrentUnique(t *testing.T) {
	gen := &TempIDGenerator{}

	const workers, perWorker = 8, 200
	var mu sync.Mutex
	seen := make(map[int64]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := gen.Next()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestCollection_SnapshotKey(t *testing.T) {
	assert.Equal(t, "entities:diet-records", CollectionDietRecords.SnapshotKey())
	assert.Equal(t, "entities:favorites", CollectionFavorites.SnapshotKey())
}
