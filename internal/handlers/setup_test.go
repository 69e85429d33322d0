package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/project-tracker-api/internal/database"
	applog "github.com/yukikurage/project-tracker-api/internal/logger"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

const testPassword = "supersecret"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	users := services.NewUserService(userRepo)
	projects := services.NewProjectService(repository.NewProjectRepository(db), userRepo)
	tasks := services.NewTaskService(repository.NewTaskRepository(db), userRepo, projects, users, nil)

	router := NewRouter(RouterDeps{
		Log:          applog.Nop(),
		SessionStore: cookie.NewStore([]byte("secret")),
		Registry:     prometheus.NewRegistry(),
		Auth:         services.NewAuthService(userRepo),
		Users:        users,
		Projects:     projects,
		Tasks:        tasks,
	})

	return testEnv{db: db, router: router}
}

func (env testEnv) createUser(t *testing.T, name string, admin bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		IsAdmin:      admin,
		IsActive:     true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

// login returns the session cookies of user.
func (env testEnv) login(t *testing.T, user *models.User) []*http.Cookie {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    user.Email,
		"password": testPassword,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func (env testEnv) do(t *testing.T, method, url string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, url, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
