package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epiview/internal/errors"
)

const sampleBody = `[
	{"country": "Kenya", "data": [{"year": "2000", "cases": "120"}, {"year": "2001", "cases": "80"}]},
	{"country": "Peru", "data": [{"year": 2000, "cases": 15}]}
]`

func TestFetchRecordsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	records, err := client.FetchRecords(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Kenya", records[0].Country)
	assert.Len(t, records[0].Data, 2)
	assert.Equal(t, "2000", records[0].Data[0].Year())
	// Numeric feeds decode as float64 and are kept as supplied.
	assert.Equal(t, float64(2000), records[1].Data[0].Year())
}

func TestFetchRecordsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.FetchRecords(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.CodeFetchFailed, errors.GetCode(err))
	assert.Contains(t, err.Error(), "500")
}

func TestFetchRecordsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(time.Second)
	_, err := client.FetchRecords(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.CodeFetchFailed, errors.GetCode(err))
}

func TestFetchRecordsBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.FetchRecords(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.CodeDecodeFailed, errors.GetCode(err))
}
