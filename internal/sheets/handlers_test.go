package sheets_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aidin1998/studysheets/common/apiutil"
	"github.com/Aidin1998/studysheets/internal/sheets"
	"github.com/Aidin1998/studysheets/pkg/models"
	"github.com/Aidin1998/studysheets/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T, opts sheets.Options) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	db := testutil.NewTestDB(t)

	router := gin.New()
	router.Use(apiutil.ErrorMiddleware(logger))
	sheets.Routes(router, db, logger, opts)
	return router, db
}

func do(t *testing.T, router *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func titles(list []models.Sheet) []string {
	out := make([]string, 0, len(list))
	for _, sheet := range list {
		out = append(out, *sheet.Title)
	}
	return out
}

func TestGetSheetsByTitle(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://1"), Title: testutil.Str("intro to stats")})
	testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://2"), Title: testutil.Str("statistics II")})
	testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://3"), Title: testutil.Str("poetry")})

	w := do(t, router, http.MethodGet, "/sheets?title=stat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []string{"intro to stats", "statistics II"}, titles(decode[[]models.Sheet](t, w)))
}

func TestGetSheetByID(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	sheet := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://1"), Title: testutil.Str("Algebra")})

	w := do(t, router, http.MethodGet, fmt.Sprintf("/sheets?id=%d&title=ignored", sheet.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Sheet](t, w)
	assert.Equal(t, sheet.ID, got.ID)
	assert.Equal(t, "Algebra", *got.Title)

	w = do(t, router, http.MethodGet, "/sheets?id=9999", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestGetSheetsInvalidID(t *testing.T) {
	router, _ := setupRouter(t, sheets.Options{})

	w := do(t, router, http.MethodGet, "/sheets?id=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[apiutil.ErrorResponse](t, w)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Message, "invalid id")
}

func TestGetSheetsByKeyword(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	a := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://a"), Title: testutil.Str("A")})
	b := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://b"), Title: testutil.Str("B")})
	testutil.SeedAttribute(t, db, a.ID, "history")
	testutil.SeedAttribute(t, db, b.ID, "kinematics")
	testutil.SeedAttribute(t, db, b.ID, "kinetic energy")

	w := do(t, router, http.MethodGet, "/sheets?keyword=kine", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"B"}, titles(decode[[]models.Sheet](t, w)))
}

func TestGetSheetsDeduplicatesTitleAndKeywordMatches(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	c := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://c"), Title: testutil.Str("Calculus")})
	d := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://d"), Title: testutil.Str("Derivatives")})
	testutil.SeedAttribute(t, db, c.ID, "limits")
	testutil.SeedAttribute(t, db, d.ID, "limits and continuity")

	w := do(t, router, http.MethodGet, "/sheets?title=Calculus&keyword=limit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Calculus", "Derivatives"}, titles(decode[[]models.Sheet](t, w)))
}

func TestGetSheetsWithoutParamsReturnsAll(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	for i := 0; i < 3; i++ {
		testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://x"), Title: testutil.Str(fmt.Sprintf("s%d", i))})
	}

	w := do(t, router, http.MethodGet, "/sheets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Sheet](t, w), 3)

	empty, _ := setupRouter(t, sheets.Options{})
	w = do(t, empty, http.MethodGet, "/sheets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetKeywords(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	a := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://a")})
	b := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://b")})
	want := testutil.SeedAttribute(t, db, a.ID, "vectors")
	testutil.SeedAttribute(t, db, a.ID, "matrices")
	testutil.SeedAttribute(t, db, b.ID, "vectors")

	w := do(t, router, http.MethodGet, fmt.Sprintf("/sheets/keywords?sheetId=%d&keyword=vec", a.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]models.Attribute](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)
	assert.Equal(t, a.ID, got[0].SheetID)

	w = do(t, router, http.MethodGet, fmt.Sprintf("/sheets/keywords?id=%d", want.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vectors", *decode[models.Attribute](t, w).Keyword)

	w = do(t, router, http.MethodGet, "/sheets/keywords?id=404", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/sheets/keywords", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Attribute](t, w), 3)

	w = do(t, router, http.MethodGet, "/sheets/keywords?sheetId=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateKeyword(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	attr := testutil.SeedAttribute(t, db, 1, "old")

	w := do(t, router, http.MethodPut, "/sheets/keywords", map[string]interface{}{"id": attr.ID, "keyword": "new"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found": true, "old": {"keyword": "old"}, "keyword": "new"}`, w.Body.String())

	w = do(t, router, http.MethodGet, fmt.Sprintf("/sheets/keywords?id=%d", attr.ID), nil)
	assert.Equal(t, "new", *decode[models.Attribute](t, w).Keyword)
}

func TestUpdateKeywordNotFound(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	attr := testutil.SeedAttribute(t, db, 1, "keep")

	w := do(t, router, http.MethodPut, "/sheets/keywords", map[string]interface{}{"id": 999, "keyword": "x"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found": false}`, w.Body.String())

	w = do(t, router, http.MethodGet, fmt.Sprintf("/sheets/keywords?id=%d", attr.ID), nil)
	assert.Equal(t, "keep", *decode[models.Attribute](t, w).Keyword)
}

func TestUpdateKeywordRequiresID(t *testing.T) {
	router, _ := setupRouter(t, sheets.Options{})

	w := do(t, router, http.MethodPut, "/sheets/keywords", map[string]interface{}{"keyword": "x"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[apiutil.ErrorResponse](t, w)
	assert.Equal(t, "Need an attribute id to process request", resp.Message)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "id", resp.Fields[0].Field)
}

func TestUpdateSheet(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	sheet := testutil.SeedSheet(t, db, models.Sheet{
		URL:     testutil.Str("http://a"),
		Title:   testutil.Str("Algebra"),
		Teacher: testutil.Str("Smith"),
	})

	w := do(t, router, http.MethodPut, "/sheets", map[string]interface{}{
		"id":    sheet.ID,
		"url":   "http://b",
		"title": "Algebra II",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"found": true,
		"old": {"url": "http://a", "title": "Algebra"},
		"url": "http://b",
		"title": "Algebra II"
	}`, w.Body.String())

	w = do(t, router, http.MethodGet, fmt.Sprintf("/sheets?id=%d", sheet.ID), nil)
	got := decode[models.Sheet](t, w)
	assert.Equal(t, "Algebra II", *got.Title)
	assert.Nil(t, got.Teacher, "replace mode clears omitted fields")

	w = do(t, router, http.MethodPut, "/sheets", map[string]interface{}{"id": 4242})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found": false}`, w.Body.String())
}

func TestCreateSheet(t *testing.T) {
	router, _ := setupRouter(t, sheets.Options{})

	w := do(t, router, http.MethodPost, "/sheets", map[string]interface{}{"url": "http://x"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"created": true, "url": "http://x"}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/sheets", nil)
	list := decode[[]models.Sheet](t, w)
	require.Len(t, list, 1)

	w = do(t, router, http.MethodGet, fmt.Sprintf("/sheets?id=%d", list[0].ID), nil)
	assert.Equal(t, "http://x", *decode[models.Sheet](t, w).URL)
}

func TestCreateSheetRequiresURL(t *testing.T) {
	router, _ := setupRouter(t, sheets.Options{})

	w := do(t, router, http.MethodPost, "/sheets", map[string]interface{}{"title": "no url"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Sheet url not found, but is required", decode[apiutil.ErrorResponse](t, w).Message)

	w = do(t, router, http.MethodGet, "/sheets", nil)
	assert.JSONEq(t, `[]`, w.Body.String(), "a rejected create must not insert")
}

func TestCreateSheetMalformedBody(t *testing.T) {
	router, _ := setupRouter(t, sheets.Options{})

	req := httptest.NewRequest(http.MethodPost, "/sheets", bytes.NewBufferString(`{"url": 5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateKeyword(t *testing.T) {
	router, _ := setupRouter(t, sheets.Options{})

	w := do(t, router, http.MethodPost, "/sheets/keywords", map[string]interface{}{"id": 12, "keyword": "optics"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"created": true, "keyword": "optics", "id": 12}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/sheets/keywords?sheetId=12", nil)
	assert.Len(t, decode[[]models.Attribute](t, w), 1)

	w = do(t, router, http.MethodPost, "/sheets/keywords", map[string]interface{}{"keyword": "optics"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Sheet id not found, but is required", decode[apiutil.ErrorResponse](t, w).Message)

	w = do(t, router, http.MethodGet, "/sheets/keywords", nil)
	assert.Len(t, decode[[]models.Attribute](t, w), 1)
}

func TestDeleteSheet(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	sheet := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://a")})
	testutil.SeedAttribute(t, db, sheet.ID, "kept")
	target := fmt.Sprintf("/sheets/%d", sheet.ID)

	w := do(t, router, http.MethodDelete, target, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"deleted": true, "id": "%d"}`, sheet.ID), w.Body.String())

	w = do(t, router, http.MethodDelete, target, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"deleted": false, "id": "%d"}`, sheet.ID), w.Body.String())

	w = do(t, router, http.MethodGet, "/sheets/keywords", nil)
	assert.Len(t, decode[[]models.Attribute](t, w), 1, "sheet delete does not cascade by default")
}

func TestDeleteKeyword(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	attr := testutil.SeedAttribute(t, db, 1, "gone")
	target := fmt.Sprintf("/sheets/keywords/%d", attr.ID)

	w := do(t, router, http.MethodDelete, target, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"deleted": true, "id": "%d"}`, attr.ID), w.Body.String())

	w = do(t, router, http.MethodDelete, target, nil)
	assert.JSONEq(t, fmt.Sprintf(`{"deleted": false, "id": "%d"}`, attr.ID), w.Body.String())

	w = do(t, router, http.MethodDelete, "/sheets/keywords/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreFailureReportsCause(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := do(t, router, http.MethodGet, "/sheets?title=x", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[apiutil.ErrorResponse](t, w)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Message, "failed to search sheets: ")
	assert.Contains(t, resp.Message, "database is closed")
}

func TestNumericStringIDs(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	sheet := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://a"), Title: testutil.Str("Old")})

	w := do(t, router, http.MethodPost, "/sheets/keywords", map[string]interface{}{"id": "5", "keyword": "k"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"created": true, "keyword": "k", "id": 5}`, w.Body.String())

	w = do(t, router, http.MethodPut, "/sheets", map[string]interface{}{"id": fmt.Sprint(sheet.ID), "title": "New"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found": true, "old": {"title": "Old"}, "title": "New"}`, w.Body.String())

	w = do(t, router, http.MethodPost, "/sheets/keywords", map[string]interface{}{"id": "five", "keyword": "k"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSheetEchoesNullOldValue(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	sheet := testutil.SeedSheet(t, db, models.Sheet{URL: testutil.Str("http://a")})

	w := do(t, router, http.MethodPut, "/sheets", map[string]interface{}{
		"id":     sheet.ID,
		"url":    "http://a",
		"author": "Ann",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"found": true,
		"old": {"url": "http://a", "author": null},
		"url": "http://a",
		"author": "Ann"
	}`, w.Body.String())
}

func TestUpdateKeywordExplicitNull(t *testing.T) {
	router, db := setupRouter(t, sheets.Options{})
	attr := testutil.SeedAttribute(t, db, 1, "old")

	w := do(t, router, http.MethodPut, "/sheets/keywords", map[string]interface{}{"id": attr.ID, "keyword": nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found": true, "old": {"keyword": "old"}, "keyword": null}`, w.Body.String())

	w = do(t, router, http.MethodPut, "/sheets/keywords", map[string]interface{}{"id": attr.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found": true, "old": {}}`, w.Body.String())
}
