package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrikeeper/go-diet-keeper/internal/config"
	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

func newTestRemoteStore(t *testing.T, handler http.Handler, token string) (RemoteStore, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	remote, err := NewHTTPRemoteStore(
		config.ClientAdapter{BaseURL: srv.URL, RequestTimeout: 2 * time.Second},
		config.ClientApp{AuthToken: token},
		logger.Nop(),
	)
	require.NoError(t, err)

	return remote, srv
}

func testToken(t *testing.T, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: subject})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "full url", in: "http://localhost:3001", want: "http://localhost:3001"},
		{name: "trailing slash trimmed", in: "http://localhost:3001/", want: "http://localhost:3001"},
		{name: "bare host gets scheme", in: "localhost:3001", want: "http://localhost:3001"},
		{name: "empty", in: "   ", wantErr: true},
		{name: "scheme only", in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPRemoteStore_SetToken(t *testing.T) {
	remote, _ := newTestRemoteStore(t, chi.NewRouter(), "")

	assert.Empty(t, remote.Token())
	assert.Zero(t, remote.AccountID())

	remote.SetToken("  " + testToken(t, "17") + "  ")
	assert.EqualValues(t, 17, remote.AccountID())
	assert.NotContains(t, remote.Token(), " ")

	// an opaque token is accepted, just without an account id
	remote.SetToken("opaque-token")
	assert.Equal(t, "opaque-token", remote.Token())
	assert.Zero(t, remote.AccountID())
}

func TestHTTPRemoteStore_PullAll(t *testing.T) {
	token := testToken(t, "1")

	r := chi.NewRouter()
	r.Get("/api/entities/diet-records", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer "+token, req.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"record_date":"2026-08-27"},{"id":2,"record_date":"2026-08-26"}]`))
	})

	remote, _ := newTestRemoteStore(t, r, token)

	items, err := remote.PullAll(context.Background(), models.CollectionDietRecords)
	require.NoError(t, err)
	require.Len(t, items, 2)

	var rec models.DietRecord
	require.NoError(t, json.Unmarshal(items[0], &rec))
	assert.EqualValues(t, 1, rec.ID)
	assert.Equal(t, "2026-08-27", rec.RecordDate)
}

func TestHTTPRemoteStore_Create(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/entities/weight-records", func(w http.ResponseWriter, req *http.Request) {
		assert.NotEmpty(t, req.Header.Get("X-Idempotency-Key"))

		var in models.WeightRecord
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))

		in.ID = 301 // backend assigns the durable id
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(in)
	})

	remote, _ := newTestRemoteStore(t, r, testToken(t, "1"))

	payload := &models.WeightRecord{
		SyncMeta:   models.SyncMeta{ID: 1_000_000_000_007},
		WeightKG:   71.4,
		RecordDate: "2026-08-27",
	}
	raw, err := remote.Create(context.Background(), models.CollectionWeightRecords, payload)
	require.NoError(t, err)

	var stored models.WeightRecord
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.EqualValues(t, 301, stored.ID)
	assert.InDelta(t, 71.4, stored.WeightKG, 0.001)
}

func TestHTTPRemoteStore_Create_ValidationRejected(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/entities/diet-records", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "quantity_g must be positive", http.StatusUnprocessableEntity)
	})

	remote, _ := newTestRemoteStore(t, r, testToken(t, "1"))

	_, err := remote.Create(context.Background(), models.CollectionDietRecords, &models.DietRecord{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationRejected)
	assert.Contains(t, err.Error(), "quantity_g must be positive")
}

func TestHTTPRemoteStore_Create_BackendDown(t *testing.T) {
	remote, srv := newTestRemoteStore(t, chi.NewRouter(), "")
	srv.Close()

	_, err := remote.Create(context.Background(), models.CollectionDietRecords, &models.DietRecord{})
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
}

func TestHTTPRemoteStore_ServerErrorIsRetryable(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/entities/favorites", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	remote, _ := newTestRemoteStore(t, r, "")

	_, err := remote.PullAll(context.Background(), models.CollectionFavorites)
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
}

func TestHTTPRemoteStore_Unauthorized(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/entities/diet-records", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	})

	remote, _ := newTestRemoteStore(t, r, "stale-token")

	_, err := remote.PullAll(context.Background(), models.CollectionDietRecords)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPRemoteStore_Update(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/api/entities/exercise-records/{id}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "55", chi.URLParam(req, "id"))

		var in models.ExerciseRecord
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(in)
	})

	remote, _ := newTestRemoteStore(t, r, testToken(t, "1"))

	raw, err := remote.Update(context.Background(), models.CollectionExerciseRecords, 55, &models.ExerciseRecord{
		SyncMeta:    models.SyncMeta{ID: 55},
		DurationMin: 30,
	})
	require.NoError(t, err)

	var stored models.ExerciseRecord
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.EqualValues(t, 30, stored.DurationMin)
}

func TestHTTPRemoteStore_Delete_NotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/entities/custom-foods/{id}", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "no such entity", http.StatusNotFound)
	})

	remote, _ := newTestRemoteStore(t, r, testToken(t, "1"))

	err := remote.Delete(context.Background(), models.CollectionCustomFoods, 9000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPRemoteStore_GetCatalog(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/reference-data/foods", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"food_name":"apple","energy_kcal":52},{"id":2,"food_name":"rice","energy_kcal":130}]`))
	})

	remote, _ := newTestRemoteStore(t, r, "")

	items, err := remote.GetCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "apple", items[0].FoodName)
	assert.InDelta(t, 130, items[1].EnergyKcal, 0.001)
}

func TestHTTPRemoteStore_SearchCatalog(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/reference-data/foods/search", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "app", req.URL.Query().Get("q"))
		assert.False(t, req.URL.Query().Has("food_group"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"food_name":"apple","energy_kcal":52}]`))
	})

	remote, _ := newTestRemoteStore(t, r, "")

	items, err := remote.SearchCatalog(context.Background(), "app", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "apple", items[0].FoodName)
}

func TestHTTPRemoteStore_SearchCatalog_GroupParam(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/reference-data/foods/search", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "app", req.URL.Query().Get("q"))
		assert.Equal(t, "fruits", req.URL.Query().Get("food_group"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"food_name":"apple","food_group":"fruits","energy_kcal":52}]`))
	})

	remote, _ := newTestRemoteStore(t, r, "")

	items, err := remote.SearchCatalog(context.Background(), "app", "fruits")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fruits", items[0].FoodGroup)
}

func TestHTTPRemoteStore_Profile(t *testing.T) {
	var stored models.Profile

	r := chi.NewRouter()
	r.Get("/api/profile", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stored)
	})
	r.Put("/api/profile", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&stored))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stored)
	})

	remote, _ := newTestRemoteStore(t, r, testToken(t, "1"))
	ctx := context.Background()

	updated, err := remote.UpdateProfile(ctx, models.Profile{
		Nickname: "sam",
		Gender:   "male",
		Birthday: "1990-05-10",
		HeightCM: 180,
		WeightKG: 75,
	})
	require.NoError(t, err)
	assert.Equal(t, "sam", updated.Nickname)

	got, err := remote.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}
