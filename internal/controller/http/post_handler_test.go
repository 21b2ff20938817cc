package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"carhive/internal/entity"
	"carhive/internal/repo/persistent"
	"carhive/internal/usecase"
	"carhive/pkg/logger"
	"carhive/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) GetFeed(userID string, w pagination.Window) ([]*entity.Post, error) {
	args := m.Called(userID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPopular(userID string, w pagination.Window) ([]*entity.Post, error) {
	args := m.Called(userID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(postID, userID string) (*entity.Post, error) {
	args := m.Called(postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetSaved(userID string, w pagination.Window) ([]*entity.Post, error) {
	args := m.Called(userID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetViewed(userID string) ([]*entity.Post, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) Search(term string) ([]*entity.Post, error) {
	args := m.Called(term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetByOwner(ownerID, viewerID string, w pagination.Window) ([]*entity.Post, error) {
	args := m.Called(ownerID, viewerID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetFiltered(userID string, filter persistent.PostFilter, w pagination.Window) ([]*entity.Post, error) {
	args := m.Called(userID, filter, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) Create(input usecase.CreatePostInput, imageFiles []*multipart.FileHeader) (*entity.Post, error) {
	args := m.Called(input, imageFiles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) Update(postID string, input usecase.UpdatePostInput) (*entity.Post, error) {
	args := m.Called(postID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) Delete(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

// MockEngagementUseCase is a mock implementation of EngagementUseCase
type MockEngagementUseCase struct {
	mock.Mock
}

func (m *MockEngagementUseCase) Toggle(kind entity.EngagementKind, actorID, targetID string) (bool, error) {
	args := m.Called(kind, actorID, targetID)
	return args.Bool(0), args.Error(1)
}

var _ usecase.EngagementUseCase = (*MockEngagementUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func newPostTestHandler() (*PostHandler, *MockPostUseCase, *MockEngagementUseCase) {
	mockPosts := new(MockPostUseCase)
	mockEngagement := new(MockEngagementUseCase)
	handler := NewPostHandler(mockPosts, mockEngagement, logger.New())
	return handler, mockPosts, mockEngagement
}

func makePosts(n int) []*entity.Post {
	posts := make([]*entity.Post, n)
	for i := range posts {
		posts[i] = &entity.Post{ID: "post-" + string(rune('a'+i)), OwnerID: "owner-1", CarName: "BMW M3"}
	}
	return posts
}

func TestGetAllPosts_MissingUserID(t *testing.T) {
	handler, _, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts", handler.GetAllPosts)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "User ID is required", response["error"])
}

func TestGetAllPosts_FullPageHasNextPage(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts", handler.GetAllPosts)

	window := pagination.Window{Page: 1, Limit: 12, Offset: 0}
	mockPosts.On("GetFeed", "user-1", window).Return(makePosts(12), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["nextPage"])
	assert.Len(t, response["posts"], 12)

	mockPosts.AssertExpectations(t)
}

func TestGetAllPosts_ShortPageEndsPagination(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts", handler.GetAllPosts)

	window := pagination.Window{Page: 2, Limit: 12, Offset: 12}
	mockPosts.On("GetFeed", "user-1", window).Return(makePosts(3), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?userId=user-1&page=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Nil(t, response["nextPage"])
	assert.Len(t, response["posts"], 3)

	mockPosts.AssertExpectations(t)
}

func TestGetAllPosts_EmptyPageIsOK(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts", handler.GetAllPosts)

	window := pagination.Window{Page: 1, Limit: 12, Offset: 0}
	mockPosts.On("GetFeed", "user-1", window).Return([]*entity.Post{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Nil(t, response["nextPage"])
	assert.Len(t, response["posts"], 0)

	mockPosts.AssertExpectations(t)
}

func TestGetAllPosts_InvalidPageClampsToOne(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts", handler.GetAllPosts)

	window := pagination.Window{Page: 1, Limit: 12, Offset: 0}
	mockPosts.On("GetFeed", "user-1", window).Return([]*entity.Post{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?userId=user-1&page=-3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockPosts.AssertExpectations(t)
}

func TestGetPopularPosts_Empty(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts/popular", handler.GetPopularPosts)

	window := pagination.Window{Page: 1, Limit: 12, Offset: 0}
	mockPosts.On("GetPopular", "user-1", window).Return(nil, usecase.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/popular?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "No posts found", response["message"])

	mockPosts.AssertExpectations(t)
}

func TestGetSearchPosts_EmptyTermReturnsAll(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts/search", handler.GetSearchPosts)

	mockPosts.On("Search", "").Return(makePosts(2), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/search", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response, 2)

	mockPosts.AssertExpectations(t)
}

func TestGetSearchPosts_NoMatches(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts/search", handler.GetSearchPosts)

	mockPosts.On("Search", "lada").Return(nil, usecase.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/search?searchTerm=lada", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "No posts found", response["message"])

	mockPosts.AssertExpectations(t)
}

func TestGetFilteredPost_NoFilters(t *testing.T) {
	handler, _, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts/filter", handler.GetFilteredPost)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/filter?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFilteredPost_UnknownKeysIgnored(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts/filter", handler.GetFilteredPost)

	window := pagination.Window{Page: 1, Limit: 12, Offset: 0}
	filter := persistent.PostFilter{City: "Berlin"}
	mockPosts.On("GetFiltered", "user-1", filter, window).Return([]*entity.Post{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/filter?userId=user-1&city=Berlin&color=red", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Nil(t, response["nextPage"])
	assert.Len(t, response["posts"], 0)

	mockPosts.AssertExpectations(t)
}

func TestGetPostByID_MissingUserID(t *testing.T) {
	handler, _, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts/:postId", handler.GetPostByID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post ID and User ID are required", response["error"])
}

func TestGetPostByID_NotFound(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts/:postId", handler.GetPostByID)

	mockPosts.On("GetPost", "post-x", "user-1").Return(nil, usecase.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-x?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post not found", response["message"])

	mockPosts.AssertExpectations(t)
}

func TestGetPostsByUserID_Empty(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.GET("/posts/user/:userId", handler.GetPostsByUserID)

	window := pagination.Window{Page: 1, Limit: 12, Offset: 0}
	mockPosts.On("GetByOwner", "owner-1", "user-1", window).Return(nil, usecase.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/user/owner-1?myId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "No posts found for this user", response["message"])

	mockPosts.AssertExpectations(t)
}

func TestUpdateLike_Success(t *testing.T) {
	handler, _, mockEngagement := newPostTestHandler()
	router := setupTestRouter()
	router.PUT("/posts/:postId/like", handler.UpdateLike)

	mockEngagement.On("Toggle", entity.EngagementLike, "user-1", "post-1").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-1/like?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "post like updated successfully", response["message"])

	mockEngagement.AssertExpectations(t)
}

func TestUpdateLike_MissingUserID(t *testing.T) {
	handler, _, _ := newPostTestHandler()
	router := setupTestRouter()
	router.PUT("/posts/:postId/like", handler.UpdateLike)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-1/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post ID and User ID are required", response["error"])
}

func TestUpdateSave_TargetGone(t *testing.T) {
	handler, _, mockEngagement := newPostTestHandler()
	router := setupTestRouter()
	router.PUT("/posts/:postId/save", handler.UpdateSave)

	mockEngagement.On("Toggle", entity.EngagementSave, "user-1", "post-x").Return(false, usecase.ErrTargetNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-x/save?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post not found", response["message"])

	mockEngagement.AssertExpectations(t)
}

func TestUpdateViewedPosts_RepeatViewIsOK(t *testing.T) {
	handler, _, mockEngagement := newPostTestHandler()
	router := setupTestRouter()
	router.PUT("/posts/:postId/viewed", handler.UpdateViewedPosts)

	mockEngagement.On("Toggle", entity.EngagementViewPost, "user-1", "post-1").Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-1/viewed?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "post viewed updated successfully", response["message"])

	mockEngagement.AssertExpectations(t)
}

func TestUpdatePost_NotFound(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.PUT("/posts/:postId", handler.UpdatePost)

	carName := "Audi RS6"
	mockPosts.On("Update", "post-x", usecase.UpdatePostInput{CarName: &carName}).Return(nil, usecase.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-x", bytes.NewBufferString(`{"car_name":"Audi RS6"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockPosts.AssertExpectations(t)
}

func TestDeletePost_Success(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.DELETE("/posts/:postId", handler.DeletePost)

	mockPosts.On("Delete", "post-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-1?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post deleted successfully", response["message"])

	mockPosts.AssertExpectations(t)
}

func TestDeletePost_ServerError(t *testing.T) {
	handler, mockPosts, _ := newPostTestHandler()
	router := setupTestRouter()
	router.DELETE("/posts/:postId", handler.DeletePost)

	mockPosts.On("Delete", "post-1").Return(errors.New("connection reset"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-1?userId=user-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Failed to delete post", response["error"])

	mockPosts.AssertExpectations(t)
}
