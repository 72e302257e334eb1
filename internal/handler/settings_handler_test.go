package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarpath/intake-api/internal/models"
	"github.com/scholarpath/intake-api/internal/service"
)

type settingsRepoMock struct {
	settings map[string]models.Setting
}

func (m *settingsRepoMock) Get(ctx context.Context, key string) (*models.Setting, error) {
	if setting, ok := m.settings[key]; ok {
		return &setting, nil
	}
	return nil, sql.ErrNoRows
}

func (m *settingsRepoMock) Upsert(ctx context.Context, setting *models.Setting) error {
	if m.settings == nil {
		m.settings = map[string]models.Setting{}
	}
	m.settings[setting.Key] = *setting
	return nil
}

func newSettingsHandler(repo *settingsRepoMock) *SettingsHandler {
	svc := service.NewSettingsService(repo, nil, nil, time.Minute, time.Second, nil)
	return NewSettingsHandler(svc)
}

func TestGetLogoUnsetIsNull(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSettingsHandler(&settingsRepoMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/settings/logo", nil)
	c.Request = req

	handler.GetLogo(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Logo *string `json:"logo"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Data.Logo)
}

func TestUpdateThenGetLogo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &settingsRepoMock{}
	handler := newSettingsHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPut, "/settings/logo", map[string]string{"logo": "data:image/png;base64,abc"})

	handler.UpdateLogo(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "data:image/png;base64,abc", repo.settings[models.SettingKeyLogo].Value)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/settings/logo", nil)
	c.Request = req

	handler.GetLogo(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Logo *string `json:"logo"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data.Logo)
	assert.Equal(t, "data:image/png;base64,abc", *envelope.Data.Logo)
}

func TestUpdateLogoRequiresValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSettingsHandler(&settingsRepoMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/settings/logo", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.UpdateLogo(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
