package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/project-hub/internal/db/migrate"
	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/service"
)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginData struct {
	Token string             `json:"token"`
	User  domain.UserSummary `json:"user"`
}

type createProjectData struct {
	Project domain.Project `json:"project"`
}

type membersData struct {
	Members []domain.MemberWithUser `json:"members"`
}

type addMemberData struct {
	Member domain.MemberWithUser `json:"member"`
}

// registerAndLogin регистрирует пользователя и возвращает его токен
func registerAndLogin(t *testing.T, env *TestEnvironment, name, username string) loginData {
	t.Helper()

	resp := env.MakeRequest(t, http.MethodPost, "/api/auth/register",
		registerRequest{Name: name, Username: username, Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.MakeRequest(t, http.MethodPost, "/api/auth/login",
		loginRequest{Username: username, Password: "password123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData[loginData](t, resp)
	require.NotEmpty(t, data.Token)
	return data
}

// TestE2E_ProjectWorkflow проверяет полный сценарий работы с проектами через API
func TestE2E_ProjectWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)

	env.WaitForHealthCheck(t)

	alice := registerAndLogin(t, env, "Alice Liddell", "alice")
	bob := registerAndLogin(t, env, "Bob Builder", "bob")

	var projectID, bobMembershipID string

	t.Run("Duplicate username", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/api/auth/register",
			registerRequest{Name: "Other", Username: "alice", Password: "password123"}, "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		_, code := decodeError(t, resp)
		assert.Equal(t, string(domain.CodeUserExists), code)
	})

	t.Run("Wrong password", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/api/auth/login",
			loginRequest{Username: "alice", Password: "wrong-password"}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		message, _ := decodeError(t, resp)
		assert.Equal(t, "invalid username or password", message)
	})

	t.Run("Empty project list", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/api/projects", nil, alice.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		list := decodeData[domain.ProjectList](t, resp)
		assert.NotNil(t, list.Items)
		assert.Empty(t, list.Items)
	})

	t.Run("Create project", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/api/projects",
			service.CreateProjectInput{Name: "Apollo", Description: "Moon program"}, alice.Token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		data := decodeData[createProjectData](t, resp)
		assert.Equal(t, "Apollo", data.Project.Name)
		projectID = data.Project.ID
		require.NotEmpty(t, projectID)

		resp = env.MakeRequest(t, http.MethodGet, "/api/projects", nil, alice.Token)
		list := decodeData[domain.ProjectList](t, resp)
		require.Len(t, list.Items, 1)
		assert.Equal(t, projectID, list.Items[0].Project.ID)
		assert.Equal(t, domain.RoleOwner, list.Items[0].Role)
	})

	t.Run("Create project without name", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/api/projects", service.CreateProjectInput{}, alice.Token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		_, code := decodeError(t, resp)
		assert.Equal(t, string(domain.CodeValidation), code)
	})

	t.Run("Non-member cannot see project", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/api/projects/"+projectID, nil, bob.Token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Add member", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/api/projects/"+projectID+"/members",
			service.AddMemberInput{Username: "bob"}, alice.Token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		data := decodeData[addMemberData](t, resp)
		assert.Equal(t, domain.RoleMember, data.Member.Role)
		assert.Equal(t, bob.User.ID, data.Member.User.ID)
		bobMembershipID = data.Member.ID

		resp = env.MakeRequest(t, http.MethodPost, "/api/projects/"+projectID+"/members",
			service.AddMemberInput{Username: "bob"}, alice.Token)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Member sees project detail", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/api/projects/"+projectID, nil, bob.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		detail := decodeData[domain.ProjectDetail](t, resp)
		assert.Equal(t, domain.RoleMember, detail.Role)
		assert.Len(t, detail.Members, 2)

		resp = env.MakeRequest(t, http.MethodGet, "/api/projects/"+projectID+"/members", nil, bob.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		members := decodeData[membersData](t, resp)
		assert.Len(t, members.Members, 2)
	})

	t.Run("Member cannot add members", func(t *testing.T) {
		registerAndLogin(t, env, "Carol", "carol")

		resp := env.MakeRequest(t, http.MethodPost, "/api/projects/"+projectID+"/members",
			service.AddMemberInput{Username: "carol"}, bob.Token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Last owner cannot leave", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/api/projects/"+projectID, nil, alice.Token)
		detail := decodeData[domain.ProjectDetail](t, resp)

		var ownerMembershipID string
		for _, m := range detail.Members {
			if m.UserID == alice.User.ID {
				ownerMembershipID = m.ID
			}
		}
		require.NotEmpty(t, ownerMembershipID)

		resp = env.MakeRequest(t, http.MethodDelete,
			"/api/projects/"+projectID+"/members/"+ownerMembershipID, nil, alice.Token)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		_, code := decodeError(t, resp)
		assert.Equal(t, string(domain.CodeLastOwner), code)
	})

	t.Run("Remove member", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodDelete,
			"/api/projects/"+projectID+"/members/"+bobMembershipID, nil, alice.Token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = env.MakeRequest(t, http.MethodGet, "/api/projects", nil, bob.Token)
		list := decodeData[domain.ProjectList](t, resp)
		assert.Empty(t, list.Items)
	})

	t.Run("Me and stats", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/api/me", nil, alice.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		me := decodeData[domain.UserSummary](t, resp)
		assert.Equal(t, "alice", me.Username)

		resp = env.MakeRequest(t, http.MethodGet, "/api/stats", nil, alice.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		stats := decodeData[service.Stats](t, resp)
		assert.Equal(t, 3, stats.Totals.Users)
		assert.Equal(t, 1, stats.Totals.Projects)
		assert.Equal(t, 1, stats.Totals.Memberships)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/api/projects", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		message, code := decodeError(t, resp)
		assert.NotEmpty(t, message)
		assert.Equal(t, string(domain.CodeUnauthorized), code)
	})
}

// TestE2E_Pages проверяет HTML страницы, которые получают данные через API
func TestE2E_Pages(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)

	env.WaitForHealthCheck(t)

	registerAndLogin(t, env, "Dana Scully", "dana")
	client := httpClient()

	t.Run("Guest is redirected to login", func(t *testing.T) {
		resp, err := client.Get(env.BaseURL + "/projects")
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login?next=%2Fprojects", resp.Header.Get("Location"))
	})

	var session *http.Cookie

	t.Run("Login sets session cookie", func(t *testing.T) {
		resp, err := client.PostForm(env.BaseURL+"/login", url.Values{
			"username": {"dana"},
			"password": {"password123"},
			"next":     {"/projects"},
		})
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/projects", resp.Header.Get("Location"))
		for _, c := range resp.Cookies() {
			if c.Name == "session" {
				session = c
			}
		}
		require.NotNil(t, session)
	})

	page := func(t *testing.T, method, path string, form url.Values) (*http.Response, string) {
		t.Helper()

		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}
		req, err := http.NewRequest(method, env.BaseURL+path, body)
		require.NoError(t, err)
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		req.AddCookie(session)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, string(raw)
	}

	t.Run("Empty state", func(t *testing.T) {
		resp, body := page(t, http.MethodGet, "/projects", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "You don&#39;t have any projects yet")
		assert.Equal(t, 1, strings.Count(body, "Add Your First Project"))
	})

	var projectID string

	t.Run("Create from dialog", func(t *testing.T) {
		_, body := page(t, http.MethodGet, "/projects?new=1", nil)
		assert.Contains(t, body, "<dialog open")

		resp, _ := page(t, http.MethodPost, "/projects", url.Values{"name": {"Voyager"}})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		location := resp.Header.Get("Location")
		require.True(t, strings.HasPrefix(location, "/projects/"))
		projectID = strings.TrimPrefix(location, "/projects/")
	})

	t.Run("Project page lists members", func(t *testing.T) {
		resp, body := page(t, http.MethodGet, "/projects/"+projectID, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Voyager")
		assert.Contains(t, body, "<h2>Members</h2>")
		assert.Contains(t, body, "Dana Scully")
	})

	t.Run("List shows new card", func(t *testing.T) {
		_, body := page(t, http.MethodGet, "/projects", nil)

		assert.Contains(t, body, fmt.Sprintf(`data-key="%s"`, projectID))
		assert.NotContains(t, body, "Add Your First Project")
	})

	t.Run("Failed submit keeps dialog open", func(t *testing.T) {
		resp, body := page(t, http.MethodPost, "/projects", url.Values{"name": {"   "}})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "<dialog open")
		assert.Contains(t, body, "name is required")
	})

	t.Run("Unknown project", func(t *testing.T) {
		resp, body := page(t, http.MethodGet, "/projects/00000000-0000-4000-8000-000000000000", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, "project not found")
	})
}

// TestMigrations_DownUp проверяет, что миграции откатываются и применяются повторно
func TestMigrations_DownUp(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)

	dsn := env.Config.Database.DSN()

	require.NoError(t, migrate.Run(dsn, migrate.Up), "repeated up is a no-op")
	require.NoError(t, migrate.Run(dsn, migrate.Down))

	var exists bool
	err := env.DB.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'projects')`).Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, migrate.Run(dsn, migrate.Up))
}
