package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// APITestSuite drives the full router with real sessions
type APITestSuite struct {
	suite.Suite
	env testEnv

	admin, alice, bob          *models.User
	adminCookies, aliceCookies []*http.Cookie
	bobCookies                 []*http.Cookie
}

func (suite *APITestSuite) SetupTest() {
	t := suite.T()
	suite.env = setupTestEnv(t)

	suite.admin = suite.env.createUser(t, "admin", true)
	suite.alice = suite.env.createUser(t, "alice", false)
	suite.bob = suite.env.createUser(t, "bob", false)

	suite.adminCookies = suite.env.login(t, suite.admin)
	suite.aliceCookies = suite.env.login(t, suite.alice)
	suite.bobCookies = suite.env.login(t, suite.bob)
}

func (suite *APITestSuite) createProject(name string) string {
	w := suite.env.do(suite.T(), http.MethodPost, "/api/project", map[string]string{"name": name}, suite.aliceCookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	resp := decode[struct {
		Message string          `json:"message"`
		Result  dto.WriteResult `json:"result"`
	}](suite.T(), w)
	suite.Equal("Project successfully created", resp.Message)
	return resp.Result.ID
}

func (suite *APITestSuite) createTask(projectID string, body map[string]any) *httptestResult {
	body["project_id"] = projectID
	w := suite.env.do(suite.T(), http.MethodPost, "/api/task", body, suite.aliceCookies)
	return &httptestResult{code: w.Code, body: w.Body.String()}
}

type httptestResult struct {
	code int
	body string
}

func (suite *APITestSuite) validTask() map[string]any {
	return map[string]any{
		"name":           "Write docs",
		"priority":       "high",
		"estimated_time": 30,
		"executor":       suite.alice.ID,
		"checker":        suite.alice.ID,
		"time_start":     "2024-05-01 09:00:00",
		"time_end":       "2024-05-01 10:30:00",
	}
}

func (suite *APITestSuite) TestHealth() {
	w := suite.env.do(suite.T(), http.MethodGet, "/health", nil, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestMetrics() {
	suite.env.do(suite.T(), http.MethodGet, "/health", nil, nil)

	w := suite.env.do(suite.T(), http.MethodGet, "/metrics", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `http_requests_total{method="GET",route="/health",status="200"}`)
}

func (suite *APITestSuite) TestProjectLifecycle() {
	projectID := suite.createProject("Apollo")

	w := suite.env.do(suite.T(), http.MethodGet, "/api/project/"+projectID, nil, suite.aliceCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	got := decode[dto.EntityResponse[models.Project]](suite.T(), w)
	suite.Require().NotNil(got.Item.Owner)
	assert.Equal(suite.T(), suite.alice.ID, got.Item.Owner.ID)

	w = suite.env.do(suite.T(), http.MethodGet, "/api/project/"+projectID, nil, suite.bobCookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.env.do(suite.T(), http.MethodPut, "/api/project/"+projectID,
		map[string]string{"name": "Artemis"}, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// suspension is admin only
	w = suite.env.do(suite.T(), http.MethodDelete, "/api/project/"+projectID, nil, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.env.do(suite.T(), http.MethodDelete, "/api/project/"+projectID, nil, suite.adminCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Project successfully suspended", decode[dto.ActionResponse](suite.T(), w).Message)

	w = suite.env.do(suite.T(), http.MethodDelete, "/api/project/"+projectID, nil, suite.adminCookies)
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "Invalid request", decode[apierrors.APIError](suite.T(), w).Message)

	w = suite.env.do(suite.T(), http.MethodPost, "/api/project/"+projectID+"/activate", nil, suite.adminCookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestProjectValidation() {
	w := suite.env.do(suite.T(), http.MethodPost, "/api/project", map[string]string{"name": ""}, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.env.do(suite.T(), http.MethodGet, "/api/project/not-a-uuid", nil, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.env.do(suite.T(), http.MethodPut, "/api/project/"+uuid.NewString(),
		map[string]string{"name": "ghost"}, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.env.do(suite.T(), http.MethodGet, "/api/project", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestParticipants() {
	projectID := suite.createProject("Apollo")

	w := suite.env.do(suite.T(), http.MethodPost, "/api/project/"+projectID+"/participants",
		map[string]any{"user_ids": []string{suite.bob.ID, uuid.NewString()}}, suite.aliceCookies)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	added := decode[dto.ListResponse[models.User]](suite.T(), w)
	suite.Require().Len(added.Items, 1)
	assert.Equal(suite.T(), suite.bob.ID, added.Items[0].ID)

	w = suite.env.do(suite.T(), http.MethodGet, "/api/project/"+projectID, nil, suite.bobCookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.env.do(suite.T(), http.MethodDelete, "/api/project/"+projectID+"/participants",
		map[string]any{"user_ids": []string{suite.alice.ID}}, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.env.do(suite.T(), http.MethodPost, "/api/project/"+projectID+"/participants",
		map[string]any{"user_ids": []string{"bogus"}}, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestGenerateTasksWithoutAI() {
	projectID := suite.createProject("Apollo")

	w := suite.env.do(suite.T(), http.MethodPost, "/api/project/"+projectID+"/tasks/generate",
		map[string]string{"text": "build a rocket"}, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

func (suite *APITestSuite) TestTaskLifecycle() {
	projectID := suite.createProject("Apollo")

	res := suite.createTask(projectID, suite.validTask())
	suite.Require().Equal(http.StatusCreated, res.code, res.body)

	w := suite.env.do(suite.T(), http.MethodGet, "/api/task", nil, suite.aliceCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	list := decode[dto.ListResponse[models.Task]](suite.T(), w)
	suite.Require().Len(list.Items, 1)
	taskID := list.Items[0].ID
	assert.Equal(suite.T(), models.PriorityHigh, list.Items[0].Priority)

	w = suite.env.do(suite.T(), http.MethodGet, "/api/task/"+taskID, nil, suite.bobCookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	update := suite.validTask()
	update["name"] = "Rewrite docs"
	w = suite.env.do(suite.T(), http.MethodPut, "/api/task/"+taskID, update, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	w = suite.env.do(suite.T(), http.MethodGet, "/api/user/"+suite.alice.ID+"/tracked-time", nil, suite.aliceCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	tracked := decode[dto.EntityResponse[dto.TrackedTime]](suite.T(), w)
	assert.Equal(suite.T(), 1, tracked.Item.TaskCount)
	assert.Equal(suite.T(), uint64(30), tracked.Item.EstimatedTime)
	assert.Equal(suite.T(), int64(5400), tracked.Item.TrackedSeconds)

	w = suite.env.do(suite.T(), http.MethodDelete, "/api/task/"+taskID, nil, suite.aliceCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Task successfully deleted", decode[dto.ActionResponse](suite.T(), w).Message)

	w = suite.env.do(suite.T(), http.MethodPost, "/api/task/"+taskID+"/restore", nil, suite.adminCookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestTaskValidation() {
	projectID := suite.createProject("Apollo")

	badPriority := suite.validTask()
	badPriority["priority"] = "urgent"
	res := suite.createTask(projectID, badPriority)
	assert.Equal(suite.T(), http.StatusBadRequest, res.code, res.body)

	badTime := suite.validTask()
	badTime["time_start"] = "2024-05-01T09:00:00Z"
	res = suite.createTask(projectID, badTime)
	assert.Equal(suite.T(), http.StatusBadRequest, res.code, res.body)

	unknownChecker := suite.validTask()
	unknownChecker["checker"] = uuid.NewString()
	res = suite.createTask(projectID, unknownChecker)
	assert.Equal(suite.T(), http.StatusBadRequest, res.code, res.body)
	assert.Contains(suite.T(), res.body, "Executor and checker must be existing users")

	missingEstimate := suite.validTask()
	delete(missingEstimate, "estimated_time")
	res = suite.createTask(projectID, missingEstimate)
	assert.Equal(suite.T(), http.StatusBadRequest, res.code, res.body)
}

func (suite *APITestSuite) TestUserAdministration() {
	payload := map[string]any{
		"name":     "Dave",
		"email":    "dave@example.com",
		"password": "longpassword",
	}

	w := suite.env.do(suite.T(), http.MethodPost, "/api/user", payload, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.env.do(suite.T(), http.MethodPost, "/api/user", payload, suite.adminCookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.env.do(suite.T(), http.MethodPut, "/api/user/"+suite.bob.ID,
		map[string]any{"name": "Robert", "email": "robert@example.com", "is_admin": true}, suite.bobCookies)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.env.do(suite.T(), http.MethodDelete, "/api/user/"+suite.bob.ID, nil, suite.adminCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "User successfully blocked", decode[dto.ActionResponse](suite.T(), w).Message)

	w = suite.env.do(suite.T(), http.MethodGet, "/api/auth/me", nil, suite.bobCookies)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.env.do(suite.T(), http.MethodDelete, "/api/user/"+suite.admin.ID, nil, suite.adminCookies)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.env.do(suite.T(), http.MethodPost, "/api/user/"+suite.bob.ID+"/unblock", nil, suite.adminCookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestUserVisibility() {
	w := suite.env.do(suite.T(), http.MethodGet, "/api/user", nil, suite.aliceCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Len(suite.T(), decode[dto.ListResponse[models.User]](suite.T(), w).Items, 1)

	w = suite.env.do(suite.T(), http.MethodGet, "/api/user/"+suite.bob.ID, nil, suite.aliceCookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.env.do(suite.T(), http.MethodGet, "/api/user", nil, suite.adminCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Len(suite.T(), decode[dto.ListResponse[models.User]](suite.T(), w).Items, 3)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
