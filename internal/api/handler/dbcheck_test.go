package handler_test

import (
	"backoffice/pkg/domain"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatabaseCheck_ConnectedEmptyTables(t *testing.T) {
	h := newHandler(t, &stubStorage{version: 170000})

	rec := httptest.NewRecorder()
	h.DatabaseCheck().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/database-check", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status        string             `json:"status"`
		ServerVersion int                `json:"serverVersion"`
		Counts        domain.TableCounts `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Connected", body.Status)
	require.Equal(t, 170000, body.ServerVersion)
	require.Zero(t, body.Counts.Users)
	require.Zero(t, body.Counts.Profiles)
	require.Zero(t, body.Counts.Products)
	require.Zero(t, body.Counts.Companies)
}

func TestDatabaseCheck_ReportsCounts(t *testing.T) {
	h := newHandler(t, &stubStorage{
		counts:  domain.TableCounts{Users: 4, Profiles: 2, Products: 9, Companies: 1},
		version: 170000,
	})

	rec := httptest.NewRecorder()
	h.DatabaseCheck().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/database-check", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Counts domain.TableCounts `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 4, body.Counts.Users)
	require.EqualValues(t, 9, body.Counts.Products)
}

func TestDatabaseCheck_UnreachableDatabase(t *testing.T) {
	h := newHandler(t, &stubStorage{pingErr: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	h.DatabaseCheck().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/database-check", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "INTERNAL", body["code"])
	require.NotContains(t, body["message"], "connection refused",
		"raw error detail must not be echoed to clients")
}

func TestDatabaseCheck_CountFailure(t *testing.T) {
	h := newHandler(t, &stubStorage{countsErr: errors.New("relation missing")})

	rec := httptest.NewRecorder()
	h.DatabaseCheck().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/database-check", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
