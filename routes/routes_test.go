package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"inspection-backend/config"
	"inspection-backend/controllers"
	"inspection-backend/database"
	"inspection-backend/middlewares"
	"inspection-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testServer struct {
	app   *fiber.App
	db    *gorm.DB
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := config.Config{
		DBDriver:   config.DriverSQLite,
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	auth := middlewares.NewAuthenticator(cfg)
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler(false)})
	Register(app, controllers.New(db, cfg, auth), db, middlewares.NewMetrics())

	token, err := auth.GenerateToken(1, "ops@example.com", models.RoleAdmin)
	require.NoError(t, err)
	return &testServer{app: app, db: db, token: token}
}

type response struct {
	status int
	header http.Header
	body   map[string]any
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := response{status: resp.StatusCode, header: resp.Header}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.body), string(raw))
	}
	return out
}

func (s *testServer) authed(t *testing.T, method, path string, body any) response {
	t.Helper()
	return s.do(t, method, path, body, map[string]string{"Authorization": "Bearer " + s.token})
}

func customerBody(email, mobile string) map[string]any {
	return map[string]any{
		"country_code":  "IN",
		"full_name":     "Asha Verma",
		"email_address": email,
		"mobile_number": mobile,
		"password":      "hunter22",
	}
}

func enquiryBody() map[string]any {
	return map[string]any{
		"inspectionLocation":      "Kandla Port",
		"country":                 "India",
		"commodityCategory":       "Textiles & Garments",
		"subCommodity":            "Cotton",
		"volume":                  250,
		"siUnits":                 "ton",
		"inspectionType":          "single_day",
		"singleDayInspectionDate": "2026-11-02",
		"physicalInspection":      false,
		"chemicalTesting":         false,
		"companyName":             "Acme Exports",
		"contactPersonName":       "R. Rao",
		"emailAddress":            "buyer@acme.example",
		"phoneNumber":             "+919876543210",
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCustomerCreateThenGet(t *testing.T) {
	s := newTestServer(t)

	created := s.do(t, http.MethodPost, "/v1/api/customers", customerBody("asha@example.com", "+919800000001"), nil)
	require.Equal(t, http.StatusCreated, created.status, created.body)
	customer := created.body["customer"].(map[string]any)
	assert.NotContains(t, customer, "password")

	id := int(customer["customer_id"].(float64))
	got := s.authed(t, http.MethodGet, "/v1/api/customers/"+strconv.Itoa(id), nil)
	require.Equal(t, http.StatusOK, got.status)
	fetched := got.body["customer"].(map[string]any)
	assert.NotContains(t, fetched, "password")
	for _, k := range []string{"customer_id", "country_code", "full_name", "email_address", "mobile_number"} {
		assert.Equal(t, customer[k], fetched[k], k)
	}

	var stored models.Customer
	require.NoError(t, s.db.First(&stored, id).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.Password, []byte("hunter22")))
}

func TestCustomerDuplicateContact(t *testing.T) {
	s := newTestServer(t)
	first := s.do(t, http.MethodPost, "/v1/api/customers", customerBody("asha@example.com", "+919800000001"), nil)
	require.Equal(t, http.StatusCreated, first.status)

	dupEmail := s.do(t, http.MethodPost, "/v1/api/customers/register", customerBody("asha@example.com", "+919800000002"), nil)
	assert.Equal(t, http.StatusConflict, dupEmail.status)
	assert.Equal(t, "Customer with this email address already exists.", dupEmail.body["message"])

	dupMobile := s.do(t, http.MethodPost, "/v1/api/customers", customerBody("other@example.com", "+919800000001"), nil)
	assert.Equal(t, http.StatusConflict, dupMobile.status)
	assert.Equal(t, "Customer with this mobile number already exists.", dupMobile.body["message"])

	assert.Equal(t, int64(1), countRows(t, s.db, &models.Customer{}))
}

func TestCustomerValidationNamesField(t *testing.T) {
	s := newTestServer(t)
	body := customerBody("not-an-email", "+919800000001")
	resp := s.do(t, http.MethodPost, "/v1/api/customers", body, nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "Validation error", resp.body["message"])
	errs := resp.body["errors"].(map[string]any)
	assert.Equal(t, "email", errs["email_address"])
}

func TestCustomerUpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	created := s.do(t, http.MethodPost, "/v1/api/customers", customerBody("asha@example.com", "+919800000001"), nil)
	require.Equal(t, http.StatusCreated, created.status)
	path := "/v1/api/customers/" + strconv.Itoa(int(created.body["customer"].(map[string]any)["customer_id"].(float64)))

	empty := s.authed(t, http.MethodPut, path, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, empty.status)
	assert.Equal(t, "No fields provided for update.", empty.body["message"])

	missing := s.authed(t, http.MethodPut, "/v1/api/customers/999", map[string]any{"full_name": "X"})
	assert.Equal(t, http.StatusNotFound, missing.status)

	updated := s.authed(t, http.MethodPut, path, map[string]any{"full_name": "  Asha K. Verma "})
	require.Equal(t, http.StatusOK, updated.status)
	assert.Equal(t, "Asha K. Verma", updated.body["customer"].(map[string]any)["full_name"])

	deleted := s.authed(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, deleted.status)
	again := s.authed(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, again.status)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/v1/api/customers", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, "No token, authorization denied.", resp.body["message"])

	resp = s.do(t, http.MethodGet, "/v1/api/customers", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, "Token is not valid.", resp.body["message"])

	me := s.authed(t, http.MethodGet, "/v1/api/auth/me", nil)
	require.Equal(t, http.StatusOK, me.status)
	assert.Equal(t, "ops@example.com", me.body["user"].(map[string]any)["email"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	reg := s.do(t, http.MethodPost, "/v1/api/auth/register", map[string]any{
		"email": "lead@example.com", "password": "correct-horse", "firstName": "Lea", "lastName": "Das",
	}, nil)
	require.Equal(t, http.StatusCreated, reg.status, reg.body)
	assert.Equal(t, "customer", reg.body["role"])
	assert.NotEmpty(t, reg.body["token"])

	dup := s.do(t, http.MethodPost, "/v1/api/auth/register", map[string]any{
		"email": "lead@example.com", "password": "correct-horse", "firstName": "Lea", "lastName": "Das",
	}, nil)
	assert.Equal(t, http.StatusConflict, dup.status)

	wrongPassword := s.do(t, http.MethodPost, "/v1/api/auth/login", map[string]any{"email": "lead@example.com", "password": "nope"}, nil)
	unknownEmail := s.do(t, http.MethodPost, "/v1/api/auth/login", map[string]any{"email": "ghost@example.com", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.status)
	assert.Equal(t, wrongPassword.status, unknownEmail.status)
	assert.Equal(t, "Invalid credentials.", wrongPassword.body["message"])
	assert.Equal(t, wrongPassword.body, unknownEmail.body)

	ok := s.do(t, http.MethodPost, "/v1/api/auth/login", map[string]any{"email": "lead@example.com", "password": "correct-horse"}, nil)
	require.Equal(t, http.StatusOK, ok.status)
	assert.Equal(t, "Login successful!", ok.body["message"])
}

func TestRiceEnquiryCopiesPhysicalTemplate(t *testing.T) {
	s := newTestServer(t)
	phy := s.authed(t, http.MethodPost, "/v1/api/physical-parameter/save", map[string]any{
		"broken": 4, "purity": 95, "yellowKernel": 1, "damageKernel": 0.5, "redKernel": 0.2,
		"paddyKernel": 0.1, "chalkyRice": 2, "liveInsects": 0, "millingDegree": "Well Milled", "averageGrainLength": 7.1,
	})
	require.Equal(t, http.StatusCreated, phy.status, phy.body)
	phyID := phy.body["data"].(map[string]any)["id"]

	body := enquiryBody()
	body["commodityCategory"] = "Food & Beverages"
	body["subCommodity"] = "Rice"
	body["riceType"] = "Basmati Rice"
	body["physicalInspection"] = true
	body["selectedPhyParamId"] = phyID

	resp := s.authed(t, http.MethodPost, "/v1/api/raiseenquiry", body)
	require.Equal(t, http.StatusCreated, resp.status, resp.body)
	assert.Equal(t, "Enquiry created successfully!", resp.body["message"])
	enquiry := resp.body["enquiry"].(map[string]any)
	assert.Equal(t, 95.0, enquiry["purity"])
	assert.Equal(t, 0.0, enquiry["millingDegree"])
	assert.Nil(t, enquiry["chemicalParameters"])

	var stored models.RaiseEnquiry
	require.NoError(t, s.db.First(&stored).Error)
	require.NotNil(t, stored.Purity)
	assert.Equal(t, 95.0, *stored.Purity)
}

func TestEnquiryPhysicalWithoutTemplateID(t *testing.T) {
	s := newTestServer(t)
	body := enquiryBody()
	body["physicalInspection"] = true

	resp := s.authed(t, http.MethodPost, "/v1/api/raiseenquiry/inquiries", body)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Contains(t, resp.body["message"], "Physical Parameter ID")
	assert.Zero(t, countRows(t, s.db, &models.RaiseEnquiry{}))
}

func TestEnquirySingleDayRejectsMultiDayDates(t *testing.T) {
	s := newTestServer(t)
	body := enquiryBody()
	body["multiDayInspectionStartDate"] = "2026-11-03"

	resp := s.authed(t, http.MethodPost, "/v1/api/raiseenquiry", body)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "Multi-day inspection dates should not be provided for 'Single Day' inspection type.", resp.body["message"])
	assert.Zero(t, countRows(t, s.db, &models.RaiseEnquiry{}))
}

func TestEnquiryShapeValidation(t *testing.T) {
	s := newTestServer(t)
	body := enquiryBody()
	body["siUnits"] = "barrels"
	body["certificates"] = []string{"ISO", "BOGUS"}

	resp := s.authed(t, http.MethodPost, "/v1/api/raiseenquiry", body)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	errs := resp.body["errors"].(map[string]any)
	assert.Equal(t, "oneof", errs["siUnits"])
	assert.Equal(t, "oneof", errs["certificates[1]"])
}

func TestEnquiryListAndGet(t *testing.T) {
	s := newTestServer(t)
	created := s.authed(t, http.MethodPost, "/v1/api/raiseenquiry", enquiryBody())
	require.Equal(t, http.StatusCreated, created.status, created.body)
	id := int(created.body["enquiry"].(map[string]any)["id"].(float64))

	list := s.authed(t, http.MethodGet, "/v1/api/raiseenquiry", nil)
	require.Equal(t, http.StatusOK, list.status)
	assert.Len(t, list.body["data"], 1)

	got := s.authed(t, http.MethodGet, "/v1/api/raiseenquiry/"+strconv.Itoa(id), nil)
	require.Equal(t, http.StatusOK, got.status)
	assert.Equal(t, "Low", got.body["enquiry"].(map[string]any)["urgencyLevel"])
}

func TestChemicalParametersOrderedAndStable(t *testing.T) {
	s := newTestServer(t)
	saved := s.authed(t, http.MethodPost, "/v1/api/chemical-parameter/save", []map[string]any{
		{"parameter_name": "Moisture", "max_value": 14, "unit": "%"},
		{"parameter_name": "Aflatoxin", "max_value": 10, "unit": "ppb"},
		{"parameter_name": "Heavy Metals"},
	})
	require.Equal(t, http.StatusCreated, saved.status, saved.body)

	first := s.do(t, http.MethodGet, "/v1/api/chemical-parameter", nil, nil)
	second := s.do(t, http.MethodGet, "/v1/api/chemical-parameter", nil, nil)
	require.Equal(t, http.StatusOK, first.status)
	assert.Equal(t, first.body, second.body)

	var names []string
	for _, p := range first.body["data"].([]any) {
		names = append(names, p.(map[string]any)["parameter_name"].(string))
	}
	assert.Equal(t, []string{"Aflatoxin", "Heavy Metals", "Moisture"}, names)
}

func TestChemicalBatchIsAllOrNothing(t *testing.T) {
	s := newTestServer(t)
	invalid := s.authed(t, http.MethodPost, "/v1/api/chemical-parameter", []map[string]any{
		{"parameter_name": "Moisture"},
		{"unit": "ppm"},
	})
	assert.Equal(t, http.StatusBadRequest, invalid.status)
	assert.Equal(t, "Invalid chemical parameter at index 1.", invalid.body["message"])
	assert.Zero(t, countRows(t, s.db, &models.ChemInspectionParam{}))

	empty := s.authed(t, http.MethodPost, "/v1/api/chemical-parameter", []map[string]any{})
	assert.Equal(t, http.StatusBadRequest, empty.status)

	ok := s.authed(t, http.MethodPost, "/v1/api/chemical-parameter", []map[string]any{{"parameter_name": "Moisture"}})
	require.Equal(t, http.StatusCreated, ok.status)
	dup := s.authed(t, http.MethodPost, "/v1/api/chemical-parameter", []map[string]any{
		{"parameter_name": "Ash"},
		{"parameter_name": "Moisture"},
	})
	assert.Equal(t, http.StatusConflict, dup.status)
	assert.Equal(t, int64(1), countRows(t, s.db, &models.ChemInspectionParam{}))
}

func TestPhysicalParameterNamesInvalidField(t *testing.T) {
	s := newTestServer(t)
	resp := s.authed(t, http.MethodPost, "/v1/api/physical-parameter", map[string]any{
		"broken": 4, "purity": 120, "yellowKernel": 1, "damageKernel": 0.5, "redKernel": 0.2,
		"paddyKernel": 0.1, "chalkyRice": 2, "liveInsects": 0, "millingDegree": "Polished", "averageGrainLength": 7.1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	errs := resp.body["errors"].(map[string]any)
	assert.Equal(t, "lte", errs["purity"])
	assert.Equal(t, "oneof", errs["millingDegree"])
}

func TestIndianCompanyLogin(t *testing.T) {
	s := newTestServer(t)
	reg := s.do(t, http.MethodPost, "/v1/api/indiancompany/register", map[string]any{
		"companyName":   "Deccan Agro",
		"emailAddress":  "trade@deccan.example",
		"password":      "s3cure-pass",
		"documentPaths": []string{"docs/pan.pdf"},
	}, nil)
	require.Equal(t, http.StatusCreated, reg.status, reg.body)
	assert.NotContains(t, reg.body["company"].(map[string]any), "password")

	bad := s.do(t, http.MethodPost, "/v1/api/indiancompany/login", map[string]any{"emailAddress": "trade@deccan.example", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, bad.status)
	assert.Equal(t, "Invalid credentials.", bad.body["message"])

	ok := s.do(t, http.MethodPost, "/v1/api/indiancompany/login", map[string]any{"emailAddress": "trade@deccan.example", "password": "s3cure-pass"}, nil)
	require.Equal(t, http.StatusOK, ok.status)
	assert.NotEmpty(t, ok.body["token"])
}

func TestInspectorsListedByName(t *testing.T) {
	s := newTestServer(t)
	for i, name := range []string{"Zoya", "Arun"} {
		resp := s.do(t, http.MethodPost, "/v1/api/internationalinspector", map[string]any{
			"countryCode":                "+44",
			"fullName":                   name,
			"emailAddress":               name + "@inspect.example",
			"mobileNumber":               "+4470000000" + strconv.Itoa(i),
			"password":                   "inspector-1",
			"internationalInspectorCode": "INT-" + name,
		}, nil)
		require.Equal(t, http.StatusCreated, resp.status, resp.body)
	}

	dupCode := s.do(t, http.MethodPost, "/v1/api/internationalinspector", map[string]any{
		"countryCode": "+44", "fullName": "Other", "emailAddress": "other@inspect.example",
		"mobileNumber": "+447000000009", "password": "inspector-1", "internationalInspectorCode": "INT-Zoya",
	}, nil)
	assert.Equal(t, http.StatusConflict, dupCode.status)

	list := s.authed(t, http.MethodGet, "/v1/api/internationalinspector", nil)
	require.Equal(t, http.StatusOK, list.status)
	data := list.body["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "Arun", data[0].(map[string]any)["fullName"])
}

func TestIdempotentReplay(t *testing.T) {
	s := newTestServer(t)
	headers := map[string]string{"Idempotency-Key": "create-asha-1"}
	body := customerBody("asha@example.com", "+919800000001")

	first := s.do(t, http.MethodPost, "/v1/api/customers", body, headers)
	require.Equal(t, http.StatusCreated, first.status)
	second := s.do(t, http.MethodPost, "/v1/api/customers", body, headers)
	assert.Equal(t, http.StatusCreated, second.status)
	assert.Equal(t, "true", second.header.Get("Idempotent-Replayed"))
	assert.Equal(t, first.body, second.body)

	other := s.do(t, http.MethodPost, "/v1/api/customers", customerBody("b@example.com", "+919800000002"), headers)
	assert.Equal(t, http.StatusConflict, other.status)
	assert.Equal(t, int64(1), countRows(t, s.db, &models.Customer{}))
}

func TestUnknownRouteAndHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/v1/api/nowhere", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "Not Found", resp.body["message"])

	health := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, health.status)
	assert.Equal(t, "ok", health.body["status"])
}
