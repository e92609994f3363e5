package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"census-otp-service/internal/app/routes"
	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/domain/services/container"
	"census-otp-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	sender *testutil.CaptureSender
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	sender := &testutil.CaptureSender{}
	c := container.NewServiceContainer(db, testutil.TestConfig(), sender)
	t.Cleanup(c.Close)

	return &testServer{
		router: routes.SetupRouter(c),
		db:     db,
		sender: sender,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

// login runs the OTP flow and returns the token and account id.
func (s *testServer) login(t *testing.T, mobile string) (string, uint) {
	t.Helper()

	w, _ := s.do(t, http.MethodPost, "/generate_otp", gin.H{"mobile_number": mobile}, "")
	require.Equal(t, http.StatusOK, w.Code)
	otp, ok := s.sender.Last(mobile)
	require.True(t, ok)

	w, body := s.do(t, http.MethodPost, "/login", gin.H{"mobile_number": mobile, "otp": otp}, "")
	require.Equal(t, http.StatusOK, w.Code)
	return body["token"].(string), uint(body["user_id"].(float64))
}

func validCensus(userID uint) gin.H {
	return gin.H{
		"user_id":        userID,
		"name":           "Asha Devi",
		"age":            34,
		"gender":         "Female",
		"address":        "12 Station Road",
		"household_size": 4,
	}
}

func TestGenerateOTP(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/generate_otp", gin.H{"mobile_number": "9999999999", "name": "Asha"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP sent successfully", body["message"])
	assert.Equal(t, 1, s.sender.Count())

	var account models.Account
	require.NoError(t, s.db.Where("mobile_number = ?", "9999999999").First(&account).Error)
	assert.True(t, account.HasPendingOTP())
}

func TestGenerateOTP_Validation(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/generate_otp", gin.H{"name": "Asha"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Mobile number is required", body["error"])

	w, body = s.do(t, http.MethodPost, "/generate_otp", `{"mobile_number":`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Mobile number is required", body["error"])

	w, body = s.do(t, http.MethodPost, "/generate_otp", gin.H{"mobile_number": "1234567890123456"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "mobile_number")
	assert.Zero(t, s.sender.Count())
}

func TestGenerateOTP_MobileNumberFormat(t *testing.T) {
	s := newTestServer(t)

	for _, mobile := range []string{"+91/99#9", "99+99", "abc", "12.5"} {
		w, body := s.do(t, http.MethodPost, "/generate_otp", gin.H{"mobile_number": mobile}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, mobile)
		assert.Equal(t, "mobile_number: Not a valid mobile number.", body["error"], mobile)
	}
	assert.Zero(t, s.sender.Count())

	w, _ := s.do(t, http.MethodPost, "/generate_otp", gin.H{"mobile_number": "+919999999999"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	_, ok := s.sender.Last("+919999999999")
	assert.True(t, ok)
}

func TestGenerateOTP_NumericMobileNumber(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/generate_otp", `{"mobile_number":9999999999}`, "")
	assert.Equal(t, http.StatusOK, w.Code, body)
	_, ok := s.sender.Last("9999999999")
	assert.True(t, ok)

	w, body = s.do(t, http.MethodPost, "/generate_otp", `{"mobile_number":true}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "mobile_number: Not a valid string value.", body["error"])
}

func TestGenerateOTP_SenderFailure(t *testing.T) {
	s := newTestServer(t)
	s.sender.Err = fmt.Errorf("sms gateway down")

	w, body := s.do(t, http.MethodPost, "/generate_otp", gin.H{"mobile_number": "9999999999"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to send OTP", body["error"])
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/generate_otp", gin.H{"mobile_number": "9999999999", "name": "Asha"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	otp, _ := s.sender.Last("9999999999")

	wrong := "0000"
	if otp == wrong {
		wrong = "1111"
	}
	w, body := s.do(t, http.MethodPost, "/login", gin.H{"mobile_number": "9999999999", "otp": wrong}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid OTP", body["error"])

	w, body = s.do(t, http.MethodPost, "/login", gin.H{"mobile_number": "9999999999", "otp": otp}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
	assert.NotZero(t, body["user_id"])

	// The code was consumed.
	w, body = s.do(t, http.MethodPost, "/login", gin.H{"mobile_number": "9999999999", "otp": otp}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid OTP", body["error"])
}

func TestLogin_MissingFields(t *testing.T) {
	s := newTestServer(t)

	for _, payload := range []gin.H{
		{"mobile_number": "9999999999"},
		{"otp": "1234"},
		{},
	} {
		w, body := s.do(t, http.MethodPost, "/login", payload, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Mobile number and OTP are required", body["error"])
	}
}

func TestLogin_NumericFields(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/generate_otp", gin.H{"mobile_number": "9999999999"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	otp, _ := s.sender.Last("9999999999")

	// A numeric code loses leading zeros, so only send it as a number when it has none.
	if otp[0] != '0' {
		w, body := s.do(t, http.MethodPost, "/login", fmt.Sprintf(`{"mobile_number":9999999999,"otp":%s}`, otp), "")
		assert.Equal(t, http.StatusOK, w.Code, body)
		assert.Equal(t, "Login successful", body["message"])
	}

	w, body := s.do(t, http.MethodPost, "/login", `{"mobile_number":"9999999999","otp":1234}`, "")
	assert.NotEqual(t, http.StatusBadRequest, w.Code)
	assert.NotEqual(t, "Mobile number and OTP are required", body["error"])

	w, body = s.do(t, http.MethodPost, "/login", `{"mobile_number":"9999999999","otp":["1234"]}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "otp: Not a valid string value.", body["error"])
}

func TestSubmitCensus(t *testing.T) {
	s := newTestServer(t)
	_, userID := s.login(t, "9999999999")

	w, body := s.do(t, http.MethodPost, "/submit_census", validCensus(userID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Census form submitted successfully", body["message"])
	assert.NotZero(t, body["id"])
}

func TestSubmitCensus_Validation(t *testing.T) {
	s := newTestServer(t)
	_, userID := s.login(t, "9999999999")

	t.Run("missing user id", func(t *testing.T) {
		payload := validCensus(userID)
		delete(payload, "user_id")
		w, body := s.do(t, http.MethodPost, "/submit_census", payload, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User ID is required", body["error"])
	})

	t.Run("bad gender", func(t *testing.T) {
		payload := validCensus(userID)
		payload["gender"] = "Unknown"
		w, body := s.do(t, http.MethodPost, "/submit_census", payload, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		errs, ok := body["errors"].(map[string]interface{})
		require.True(t, ok, body)
		assert.Contains(t, errs, "gender")
		assert.NotContains(t, errs, "name")
	})

	t.Run("several fields", func(t *testing.T) {
		payload := validCensus(userID)
		payload["age"] = 200
		payload["household_size"] = 0
		delete(payload, "address")
		w, body := s.do(t, http.MethodPost, "/submit_census", payload, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		errs := body["errors"].(map[string]interface{})
		assert.Contains(t, errs, "age")
		assert.Contains(t, errs, "household_size")
		assert.Equal(t, []interface{}{"This field is required."}, errs["address"])
	})

	t.Run("wrong types", func(t *testing.T) {
		payload := validCensus(userID)
		payload["age"] = "thirty"
		w, body := s.do(t, http.MethodPost, "/submit_census", payload, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs, ok := body["errors"].(map[string]interface{})
		require.True(t, ok, body)
		assert.Equal(t, []interface{}{"Not a valid integer value."}, errs["age"])

		payload = validCensus(userID)
		payload["household_size"] = 2.5
		w, body = s.do(t, http.MethodPost, "/submit_census", payload, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs, ok = body["errors"].(map[string]interface{})
		require.True(t, ok, body)
		assert.Equal(t, []interface{}{"Not a valid integer value."}, errs["household_size"])

		payload = validCensus(userID)
		payload["user_id"] = "abc"
		w, body = s.do(t, http.MethodPost, "/submit_census", payload, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs, ok = body["errors"].(map[string]interface{})
		require.True(t, ok, body)
		assert.Equal(t, []interface{}{"Not a valid integer value."}, errs["user_id"])
	})

	t.Run("unknown user", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/submit_census", validCensus(userID+100), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", body["error"])
	})
}

func TestGetCensusData(t *testing.T) {
	s := newTestServer(t)
	_, userID := s.login(t, "9999999999")
	path := fmt.Sprintf("/get_census_data/%d", userID)

	w, body := s.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := body["census_data"].(map[string]interface{})
	assert.Equal(t, "9999999999", data["mobile_number"])
	assert.Empty(t, data["submissions"])

	// Served from cache until a submission purges it.
	w, _ = s.do(t, http.MethodGet, path, nil, "")
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w, _ = s.do(t, http.MethodPost, "/submit_census", validCensus(userID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w, body = s.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	data = body["census_data"].(map[string]interface{})
	assert.Len(t, data["submissions"], 1)
}

func TestGetCensusData_UnknownUser(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/get_census_data/999", "/get_census_data/abc"} {
		w, body := s.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "User not found", body["error"], path)
	}
}

func TestAccountProfile(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/account", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, userID := s.login(t, "9999999999")
	w, body := s.do(t, http.MethodGet, "/account", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(userID), body["user_id"])
	assert.Equal(t, false, body["has_pending_otp"])
}

func TestHouseholdEndpoints(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.login(t, "9999999999")

	w, _ := s.do(t, http.MethodPost, "/households", gin.H{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := s.do(t, http.MethodPost, "/households", gin.H{
		"name":          "Asha Devi",
		"date_of_birth": "1985-02-17",
		"region":        "Awadh",
		"district":      "Lucknow",
		"town":          "Malihabad",
		"members": []gin.H{
			{"name": "Ravi", "date_of_birth": "2012-04-09", "relation_to_head": "Son"},
		},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, body)
	assert.Equal(t, "Household created", body["message"])
	head := body["household"].(map[string]interface{})
	headID := uint(head["id"].(float64))

	w, body = s.do(t, http.MethodPost, fmt.Sprintf("/households/%d/members", headID), gin.H{"name": "Meena", "age": 9}, token)
	require.Equal(t, http.StatusCreated, w.Code, body)

	w, body = s.do(t, http.MethodGet, fmt.Sprintf("/households/%d/members", headID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["members"], 2)

	w, body = s.do(t, http.MethodGet, fmt.Sprintf("/households/%d", headID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	got := body["household"].(map[string]interface{})
	assert.Equal(t, "Lucknow", got["district"])
	assert.Len(t, got["members"], 2)

	w, body = s.do(t, http.MethodDelete, fmt.Sprintf("/households/%d", headID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Household deleted", body["message"])

	var count int64
	s.db.Model(&models.HouseholdMember{}).Count(&count)
	assert.Zero(t, count)

	w, body = s.do(t, http.MethodGet, fmt.Sprintf("/households/%d", headID), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Household not found", body["error"])
}

func TestHouseholdValidation(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.login(t, "9999999999")

	w, body := s.do(t, http.MethodPost, "/households", gin.H{
		"name":          "Asha Devi",
		"date_of_birth": "17/02/1985",
		"region":        "Awadh",
		"members":       []gin.H{{"relation_to_head": "Son"}},
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Not a valid date value."}, errs["date_of_birth"])
	assert.Contains(t, errs, "district")
	assert.Contains(t, errs, "town")
	assert.Contains(t, errs, "members[0].name")

	w, body = s.do(t, http.MethodPost, "/households", gin.H{
		"name":          "Asha Devi",
		"date_of_birth": 19850217,
		"region":        "Awadh",
		"district":      "Lucknow",
		"town":          "Malihabad",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs = body["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Not a valid string value."}, errs["date_of_birth"])

	w, _ = s.do(t, http.MethodGet, "/households/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/households/999/members", gin.H{"name": "Nobody"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/ping", "/health"} {
		w, body := s.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", body["message"])
	}

	w, body := s.do(t, http.MethodGet, "/health/status", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "database")
	assert.Contains(t, body, "cache")
}
