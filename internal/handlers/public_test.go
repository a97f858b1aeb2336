package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/api/internal/models"
)

func visibleProject(id string, order int) models.Project {
	return models.Project{
		ID:        id,
		Title:     "Project " + id,
		URL:       "https://example.com/" + id,
		Order:     order,
		IsVisible: true,
	}
}

func TestListPublicProjectsFiltersHidden(t *testing.T) {
	env := newTestEnv(t, "")
	env.projects.projects["p1"] = visibleProject("p1", 1)
	hidden := visibleProject("p2", 2)
	hidden.IsVisible = false
	env.projects.projects["p2"] = hidden

	rec := env.request(t, http.MethodGet, "/api/v1/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Projects []struct {
			ID        string `json:"id"`
			AvgRating float64 `json:"avgRating"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Projects, 1)
	assert.Equal(t, "p1", body.Projects[0].ID)
	assert.Zero(t, body.Projects[0].AvgRating)
}

func TestApplyEngagementValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing project id", `{"like":true}`},
		{"rating above range", `{"projectId":"p1","rating":6}`},
		{"rating below range", `{"projectId":"p1","rating":0}`},
		{"negative rating", `{"projectId":"p1","rating":-2}`},
		{"neither like nor rating", `{"projectId":"p1"}`},
		{"explicit no-op", `{"projectId":"p1","like":false}`},
		{"malformed json", `{"projectId":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			env.projects.projects["p1"] = visibleProject("p1", 1)

			rec := env.request(t, http.MethodPost, "/api/v1/projects/engagement", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, env.projects.engagements, "store must not be touched on invalid input")
		})
	}
}

func TestApplyEngagementLikeAndRating(t *testing.T) {
	env := newTestEnv(t, "")
	env.projects.projects["p1"] = visibleProject("p1", 1)

	rec := env.request(t, http.MethodPost, "/api/v1/projects/engagement",
		`{"projectId":"p1","like":true,"rating":5}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OK      bool `json:"ok"`
		Project struct {
			ID          string  `json:"id"`
			LikesCount  int     `json:"likesCount"`
			RatingCount int     `json:"ratingCount"`
			RatingSum   int     `json:"ratingSum"`
			AvgRating   float64 `json:"avgRating"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "p1", body.Project.ID)
	assert.Equal(t, 1, body.Project.LikesCount)
	assert.Equal(t, 1, body.Project.RatingCount)
	assert.Equal(t, 5, body.Project.RatingSum)
	assert.Equal(t, 5.0, body.Project.AvgRating)
}

func TestApplyEngagementLikeOnly(t *testing.T) {
	env := newTestEnv(t, "")
	env.projects.projects["p1"] = visibleProject("p1", 1)

	rec := env.request(t, http.MethodPost, "/api/v1/projects/engagement",
		`{"projectId":"p1","like":true}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := env.projects.projects["p1"]
	assert.Equal(t, 1, stored.LikesCount)
	assert.Zero(t, stored.RatingCount)
	assert.Zero(t, stored.RatingSum)
}

func TestApplyEngagementAccumulates(t *testing.T) {
	env := newTestEnv(t, "")
	env.projects.projects["p1"] = visibleProject("p1", 1)

	for _, body := range []string{
		`{"projectId":"p1","rating":4}`,
		`{"projectId":"p1","rating":2}`,
		`{"projectId":"p1","like":true}`,
	} {
		rec := env.request(t, http.MethodPost, "/api/v1/projects/engagement", body, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	stored := env.projects.projects["p1"]
	assert.Equal(t, 1, stored.LikesCount)
	assert.Equal(t, 2, stored.RatingCount)
	assert.Equal(t, 6, stored.RatingSum)
	assert.Equal(t, 3.0, stored.AvgRating())
}

func TestApplyEngagementConcurrentLikes(t *testing.T) {
	env := newTestEnv(t, "")
	env.projects.projects["p1"] = visibleProject("p1", 1)

	// Every like must land; the increment happens inside the store, never
	// as a read-modify-write in the handler.
	const likes = 32
	var wg sync.WaitGroup
	wg.Add(likes)
	for i := 0; i < likes; i++ {
		go func() {
			defer wg.Done()
			rec := env.request(t, http.MethodPost, "/api/v1/projects/engagement",
				`{"projectId":"p1","like":true}`, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()

	stored := env.projects.projects["p1"]
	assert.Equal(t, likes, stored.LikesCount)
	assert.Zero(t, stored.RatingCount)
}

func TestApplyEngagementConcurrentRatings(t *testing.T) {
	env := newTestEnv(t, "")
	env.projects.projects["p1"] = visibleProject("p1", 1)

	const ratings = 16
	var wg sync.WaitGroup
	wg.Add(ratings)
	for i := 0; i < ratings; i++ {
		go func() {
			defer wg.Done()
			rec := env.request(t, http.MethodPost, "/api/v1/projects/engagement",
				`{"projectId":"p1","rating":3}`, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()

	stored := env.projects.projects["p1"]
	assert.Equal(t, ratings, stored.RatingCount)
	assert.Equal(t, 3*ratings, stored.RatingSum)
	assert.Equal(t, 3.0, stored.AvgRating())
}

func TestApplyEngagementUnknownProject(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.request(t, http.MethodPost, "/api/v1/projects/engagement",
		`{"projectId":"ghost","like":true}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitContactValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","message":"hello there, long enough"}`},
		{"bad email", `{"name":"Ann","email":"nope","message":"hello there, long enough"}`},
		{"message too short", `{"name":"Ann","email":"a@b.com","message":"short"}`},
		{"phone too short", `{"name":"Ann","email":"a@b.com","phone":"123","message":"hello there, long enough"}`},
		{"blank name", `{"name":"   ","email":"a@b.com","message":"hello there, long enough"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, "")

			rec := env.request(t, http.MethodPost, "/api/v1/contact", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, env.messages.messages)
		})
	}
}

func TestSubmitContactStoresTrimmedMessage(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.request(t, http.MethodPost, "/api/v1/contact",
		`{"name":"  Ann  ","email":"ann@example.com","phone":" +1 555 0100 ","message":"  I would like to talk about a project.  "}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, env.messages.messages, 1)
	msg := env.messages.messages[0]
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Ann", msg.Name)
	assert.Equal(t, "ann@example.com", msg.Email)
	require.NotNil(t, msg.Phone)
	assert.Equal(t, "+1 555 0100", *msg.Phone)
	assert.Equal(t, "I would like to talk about a project.", msg.Message)
}

func TestResumeRedirect(t *testing.T) {
	t.Run("no resume configured", func(t *testing.T) {
		env := newTestEnv(t, "")

		rec := env.request(t, http.MethodGet, "/api/v1/resume", "", nil)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/contact", rec.Header().Get("Location"))
	})

	t.Run("plain external url", func(t *testing.T) {
		env := newTestEnv(t, "")
		resume := "https://files.example.com/resume.pdf"
		env.settings.settings.ResumeURL = &resume

		rec := env.request(t, http.MethodGet, "/api/v1/resume", "", nil)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, resume, rec.Header().Get("Location"))
	})

	t.Run("storage ref without configured storage", func(t *testing.T) {
		env := newTestEnv(t, "")
		resume := "storage://portfolio-files/resume/resume-1.pdf"
		env.settings.settings.ResumeURL = &resume

		rec := env.request(t, http.MethodGet, "/api/v1/resume", "", nil)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/contact", rec.Header().Get("Location"))
	})
}
