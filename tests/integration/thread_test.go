package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/ferdian3456/virdanthread/internal/constant"
	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/ferdian3456/virdanthread/internal/repository"
	"github.com/ferdian3456/virdanthread/tests/integration/setup"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestThreadFlow drives the HTTP surface against postgres and redis.
func TestThreadFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err, "infrastructure should start successfully")
	defer func() { _ = infra.Terminate(ctx, t) }()

	setup.RunMigration(infra.PgURL, t)

	app, db, cache := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL)
	defer db.Close()
	defer func() { _ = cache.Close() }()

	kyle := model.CommentUser{Id: uuid.New(), Name: "Kyle"}
	sally := model.CommentUser{Id: uuid.New(), Name: "Sally"}
	userRepository := repository.NewUserRepository(zap.NewNop(), db)
	require.NoError(t, userRepository.Upsert(ctx, kyle))
	require.NoError(t, userRepository.Upsert(ctx, sally))

	postRepository := repository.NewPostRepository(zap.NewNop(), db, cache, time.Minute)
	postId := uuid.New()
	require.NoError(t, postRepository.Create(ctx, model.Posts{Id: postId, Title: "Integration", Body: "body", CreateDatetime: time.Now().UTC()}))

	kyleToken := setup.AccessToken(t, kyle.Id)
	sallyToken := setup.AccessToken(t, sally.Id)
	commentsURL := fmt.Sprintf("/api/posts/%s/comments", postId)

	// C1 at t=10, reply C2 at t=20, C3 at t=30
	req := setup.CreateAuthRequest(http.MethodPost, commentsURL, []byte(`{"message":"C1"}`), kyleToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c1 := setup.ParseJSONResponse(t, resp)

	time.Sleep(10 * time.Millisecond)
	req = setup.CreateAuthRequest(http.MethodPost, commentsURL, []byte(fmt.Sprintf(`{"message":"C2","parentId":"%s"}`, c1["id"])), sallyToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c2 := setup.ParseJSONResponse(t, resp)

	time.Sleep(10 * time.Millisecond)
	req = setup.CreateAuthRequest(http.MethodPost, commentsURL, []byte(`{"message":"C3"}`), sallyToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c3 := setup.ParseJSONResponse(t, resp)

	t.Run("thread is nested newest first", func(t *testing.T) {
		req := setup.CreateAuthRequest(http.MethodGet, "/api/posts/"+postId.String(), nil, kyleToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		post := setup.ParseJSONResponse(t, resp)
		comments := post["comments"].([]interface{})
		require.Len(t, comments, 2)

		first := comments[0].(map[string]interface{})
		second := comments[1].(map[string]interface{})
		require.Equal(t, c3["id"], first["id"])
		require.Equal(t, c1["id"], second["id"])
		require.Equal(t, "Kyle", second["user"].(map[string]interface{})["name"])

		children := second["children"].([]interface{})
		require.Len(t, children, 1)
		require.Equal(t, c2["id"], children[0].(map[string]interface{})["id"])
	})

	t.Run("concurrent toggles settle on the ledger", func(t *testing.T) {
		url := fmt.Sprintf("%s/%s/toggleLike", commentsURL, c3["id"])

		var wg sync.WaitGroup
		statuses := make([]int, 4)
		for i := range statuses {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := setup.CreateAuthRequest(http.MethodPost, url, nil, kyleToken)
				resp, err := app.Test(req, -1)
				if err == nil {
					statuses[i] = resp.StatusCode
				}
			}(i)
		}
		wg.Wait()

		for _, status := range statuses {
			require.Equal(t, http.StatusOK, status)
		}

		var count int
		err := db.QueryRow(ctx, "SELECT COUNT(*) FROM comment_likes WHERE user_id = $1 AND comment_id = $2", kyle.Id, c3["id"]).Scan(&count)
		require.NoError(t, err)
		require.LessOrEqual(t, count, 1)
	})

	t.Run("only the author can edit", func(t *testing.T) {
		url := fmt.Sprintf("%s/%s", commentsURL, c1["id"])

		req := setup.CreateAuthRequest(http.MethodPut, url, []byte(`{"message":"hijack"}`), sallyToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		code, _, _ := setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
		require.Equal(t, constant.ERR_FORBIDDEN_ERROR, code)

		req = setup.CreateAuthRequest(http.MethodPut, url, []byte(`{"message":"C1 edited"}`), kyleToken)
		resp, err = app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("deleting a parent promotes its replies", func(t *testing.T) {
		req := setup.CreateAuthRequest(http.MethodDelete, fmt.Sprintf("%s/%s", commentsURL, c1["id"]), nil, kyleToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req = setup.CreateAuthRequest(http.MethodGet, "/api/posts/"+postId.String(), nil, kyleToken)
		resp, err = app.Test(req, -1)
		require.NoError(t, err)

		post := setup.ParseJSONResponse(t, resp)
		comments := post["comments"].([]interface{})
		require.Len(t, comments, 2)
		require.Equal(t, c3["id"], comments[0].(map[string]interface{})["id"])
		require.Equal(t, c2["id"], comments[1].(map[string]interface{})["id"])
	})

	t.Run("validation errors carry the param", func(t *testing.T) {
		req := setup.CreateAuthRequest(http.MethodPost, commentsURL, []byte(`{"message":""}`), kyleToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		code, message, param := setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
		require.Equal(t, constant.ERR_VALIDATION_CODE, code)
		require.NotEmpty(t, message)
		require.Equal(t, "message", param)
	})
}
