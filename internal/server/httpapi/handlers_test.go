package httpapi

import (
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/swivl/traveldiary/internal/logging"
	"github.com/swivl/traveldiary/internal/server/auth"
	"github.com/swivl/traveldiary/internal/server/config"
	"github.com/swivl/traveldiary/internal/server/models"
	"github.com/swivl/traveldiary/internal/server/repositories/repomanager"
	"github.com/swivl/traveldiary/internal/server/services"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (http.Handler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm, err := repomanager.NewPostgresRepositoryManager()
	require.NoError(t, err)

	cfg := &config.Config{SecretKey: testSecret}
	us := services.NewUserService(db, rm, cfg)
	es := services.NewEntryService(db, rm)

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	srv, err := NewServer(":0", logger, us, es, testSecret)
	require.NoError(t, err)

	return srv.Handler(), mock, db
}

func tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret))
	require.NoError(t, err)
	return tok
}

func doJSON(handler http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRegister_CreatesUserAndReturnsToken(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs("a", "a@x.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	w := doJSON(handler, "POST", "/users/register", "", `{"username":"a","email":"a@x.com","password":"p"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		UserID int64  `json:"userId"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.EqualValues(t, 1, resp.UserID)

	gotID, err := auth.GetUserIDFromToken(resp.Token, []byte(testSecret))
	require.NoError(t, err)
	require.EqualValues(t, 1, gotID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_MissingFieldSkipsPersistence(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	w := doJSON(handler, "POST", "/users/register", "", `{"username":"a","email":"a@x.com"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Missing required fields.", strings.TrimSpace(w.Body.String()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_SuccessAndFailure(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("p"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,\s*email,\s*password\s+FROM\s+users`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password"}).
			AddRow(1, "a", "a@x.com", string(hash)))

	w := doJSON(handler, "POST", "/users/login", "", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UserID int64  `json:"userId"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.EqualValues(t, 1, resp.UserID)

	gotID, err := auth.GetUserIDFromToken(resp.Token, []byte(testSecret))
	require.NoError(t, err)
	require.EqualValues(t, 1, gotID)

	// Wrong password against the same stored row.
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,\s*email,\s*password\s+FROM\s+users`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password"}).
			AddRow(1, "a", "a@x.com", string(hash)))

	w = doJSON(handler, "POST", "/users/login", "", `{"email":"a@x.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid credentials", strings.TrimSpace(w.Body.String()))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnknownEmail(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,\s*email,\s*password\s+FROM\s+users`).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	w := doJSON(handler, "POST", "/users/login", "", `{"email":"ghost@x.com","password":"p"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProtectedRoutes_TokenChecks(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	// No Authorization header: 401, fixed text, no persistence.
	w := doJSON(handler, "GET", "/diary-entries/1", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Access Denied. Token is not provided.", strings.TrimSpace(w.Body.String()))

	// Garbage token: 403, fixed text, no persistence.
	w = doJSON(handler, "GET", "/diary-entries/1", "not.a.jwt", "")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Invalid Token.", strings.TrimSpace(w.Body.String()))

	// Wrongly signed token: 403.
	wrong, err := auth.GenerateToken(1, []byte("other-secret"))
	require.NoError(t, err)
	w = doJSON(handler, "DELETE", "/users/1", wrong, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NotFound(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectExec(`(?s)^UPDATE\s+users`).
		WithArgs("b", "b@x.com", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := doJSON(handler, "PUT", "/users/99", tokenFor(t, 99), `{"newUsername":"b","newEmail":"b@x.com"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User not found", strings.TrimSpace(w.Body.String()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_OwnerSucceeds(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectExec(`(?s)^UPDATE\s+users`).
		WithArgs("b", "b@x.com", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(handler, "PUT", "/users/1", tokenFor(t, 1), `{"newUsername":"b","newEmail":"b@x.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "User updated successfully", strings.TrimSpace(w.Body.String()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_OtherAccountForbidden(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	// Valid token for user 1 must not mutate user 2; no statement is issued.
	w := doJSON(handler, "PUT", "/users/2", tokenFor(t, 1), `{"newUsername":"b","newEmail":"b@x.com"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_NotFound(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+users`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := doJSON(handler, "DELETE", "/users/42", tokenFor(t, 42), "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryCreateThenRead_RoundTrip(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+diary_entries`).
		WithArgs(int64(1), "Lisbon", "2024-05-01", "long day").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	w := doJSON(handler, "POST", "/diary-entries/", tokenFor(t, 1),
		`{"userId":1,"location":"Lisbon","date":"2024-05-01","entry":"long day"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		EntryID int64 `json:"entryId"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	require.EqualValues(t, 7, created.EntryID)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*location,\s*date,\s*entry\s+FROM\s+diary_entries`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "location", "date", "entry"}).
			AddRow(7, 1, "Lisbon", "2024-05-01", "long day"))

	w = doJSON(handler, "GET", "/diary-entries/7", tokenFor(t, 1), "")
	require.Equal(t, http.StatusOK, w.Code)

	var got models.DiaryEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Equal(t, models.DiaryEntry{ID: 7, UserID: 1, Location: "Lisbon", Date: "2024-05-01", Entry: "long day"}, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryCreate_MissingUserID(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	w := doJSON(handler, "POST", "/diary-entries/", tokenFor(t, 1),
		`{"location":"Lisbon","date":"2024-05-01","entry":"long day"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRead_OtherOwnerForbidden(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*location,\s*date,\s*entry\s+FROM\s+diary_entries`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "location", "date", "entry"}).
			AddRow(7, 2, "Lisbon", "2024-05-01", "long day"))

	w := doJSON(handler, "GET", "/diary-entries/7", tokenFor(t, 1), "")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryUpdate_NotFound(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*location,\s*date,\s*entry\s+FROM\s+diary_entries`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	w := doJSON(handler, "PUT", "/diary-entries/404", tokenFor(t, 1),
		`{"newLocation":"Porto","newDate":"2024-05-02","newEntry":"short day"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Diary entry not found", strings.TrimSpace(w.Body.String()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryDelete_OwnerSucceeds(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*location,\s*date,\s*entry\s+FROM\s+diary_entries`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "location", "date", "entry"}).
			AddRow(7, 1, "Lisbon", "2024-05-01", "long day"))
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+diary_entries`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(handler, "DELETE", "/diary-entries/7", tokenFor(t, 1), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Diary entry deleted successfully", strings.TrimSpace(w.Body.String()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistenceFailure_GenericInternalError(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs("a", "a@x.com", sqlmock.AnyArg()).
		WillReturnError(sql.ErrConnDone)

	w := doJSON(handler, "POST", "/users/register", "", `{"username":"a","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Internal Server Error", strings.TrimSpace(w.Body.String()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	handler, mock, _ := newTestServer(t)

	w := doJSON(handler, "POST", "/users/register", "", `{}`)
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
	require.NoError(t, mock.ExpectationsWereMet())
}
