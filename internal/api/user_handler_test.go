package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MyelinBots/userrank-go/internal/db/repositories/user"
	"github.com/MyelinBots/userrank-go/internal/services/userservice"
	"github.com/gin-gonic/gin"
)

// ---- mock implementation ----

type mockUserService struct {
	createFn     func(ctx context.Context, name, email string, score int) (*user.User, error)
	updateFn     func(ctx context.Context, id uint, name, email string, score int) error
	deleteFn     func(ctx context.Context, id uint) error
	getFn        func(ctx context.Context, id uint) (*user.User, error)
	listFn       func(ctx context.Context, minScore *int, sortByScore bool) ([]*user.User, error)
	rankedListFn func(ctx context.Context) ([]*user.User, error)
	rankOfFn     func(ctx context.Context, id uint) (int, error)
}

func (m *mockUserService) Create(ctx context.Context, name, email string, score int) (*user.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, email, score)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockUserService) Update(ctx context.Context, id uint, name, email string, score int) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, name, email, score)
	}
	return fmt.Errorf("not configured")
}
func (m *mockUserService) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return fmt.Errorf("not configured")
}
func (m *mockUserService) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockUserService) List(ctx context.Context, minScore *int, sortByScore bool) ([]*user.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, minScore, sortByScore)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockUserService) RankedList(ctx context.Context) ([]*user.User, error) {
	if m.rankedListFn != nil {
		return m.rankedListFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockUserService) RankOf(ctx context.Context, id uint) (int, error) {
	if m.rankOfFn != nil {
		return m.rankOfFn(ctx, id)
	}
	return 0, fmt.Errorf("not configured")
}

// ---- helpers ----

func newTestRouter(svc userservice.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewUserHandler(svc))
	return r
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

var testUser = &user.User{
	ID: 1, Name: "Alice", Email: "alice@example.com", Score: 100,
	CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"name": "Alice", "email": "alice@example.com", "score": 100,
	}
}

// ---- tests ----

func TestCreateUserHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(ctx context.Context, name, email string, score int) (*user.User, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success - creates new user",
			body: validBody(),
			createFn: func(ctx context.Context, name, email string, score int) (*user.User, error) {
				return testUser, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - missing required fields",
			body:           map[string]interface{}{"score": 100},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - invalid email format",
			body:           map[string]interface{}{"name": "Alice", "email": "not-valid", "score": 100},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - duplicate email",
			body: validBody(),
			createFn: func(ctx context.Context, name, email string, score int) (*user.User, error) {
				return nil, &userservice.ValidationError{Message: userservice.MsgEmailExists}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Email already exists.",
		},
		{
			name: "bad request - non-positive score",
			body: map[string]interface{}{"name": "Alice", "email": "alice@example.com", "score": 0},
			createFn: func(ctx context.Context, name, email string, score int) (*user.User, error) {
				return nil, &userservice.ValidationError{Message: userservice.MsgScorePositive}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Score must be a positive integer.",
		},
		{
			name: "internal error - store failure",
			body: validBody(),
			createFn: func(ctx context.Context, name, email string, score int) (*user.User, error) {
				return nil, fmt.Errorf("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUserService{createFn: tt.createFn})
			w := doRequest(router, http.MethodPost, "/users", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("[%s] expected body to contain %q, got %s", tt.name, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestCreateUserHandlerLocation(t *testing.T) {
	router := newTestRouter(&mockUserService{
		createFn: func(ctx context.Context, name, email string, score int) (*user.User, error) {
			return testUser, nil
		},
	})
	w := doRequest(router, http.MethodPost, "/users", validBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/users/1" {
		t.Errorf("expected Location /users/1, got %q", loc)
	}
	var got user.User
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.ID != testUser.ID || got.Email != testUser.Email || !got.CreatedAt.Equal(testUser.CreatedAt) {
		t.Errorf("response mismatch: %+v", got)
	}
}

func TestUpdateUserHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           interface{}
		updateFn       func(ctx context.Context, id uint, name, email string, score int) error
		expectedStatus int
	}{
		{
			name: "success - full replacement",
			url:  "/users/1",
			body: validBody(),
			updateFn: func(ctx context.Context, id uint, name, email string, score int) error {
				return nil
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "not found - unknown id",
			url:  "/users/99",
			body: validBody(),
			updateFn: func(ctx context.Context, id uint, name, email string, score int) error {
				return userservice.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "bad request - duplicate email",
			url:  "/users/1",
			body: validBody(),
			updateFn: func(ctx context.Context, id uint, name, email string, score int) error {
				return &userservice.ValidationError{Message: userservice.MsgEmailExists}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing required fields",
			url:            "/users/1",
			body:           map[string]interface{}{},
			updateFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found - non-numeric id",
			url:            "/users/abc",
			body:           validBody(),
			updateFn:       nil,
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUserService{updateFn: tt.updateFn})
			w := doRequest(router, http.MethodPut, tt.url, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetUserHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		getFn          func(ctx context.Context, id uint) (*user.User, error)
		expectedStatus int
	}{
		{
			name: "success - returns user",
			url:  "/users/1",
			getFn: func(ctx context.Context, id uint) (*user.User, error) {
				return testUser, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - unknown id",
			url:  "/users/99",
			getFn: func(ctx context.Context, id uint) (*user.User, error) {
				return nil, userservice.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUserService{getFn: tt.getFn})
			w := doRequest(router, http.MethodGet, tt.url, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestDeleteUserHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		deleteFn       func(ctx context.Context, id uint) error
		expectedStatus int
	}{
		{
			name:           "success - removes user",
			url:            "/users/1",
			deleteFn:       func(ctx context.Context, id uint) error { return nil },
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "not found - already deleted",
			url:            "/users/1",
			deleteFn:       func(ctx context.Context, id uint) error { return userservice.ErrNotFound },
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUserService{deleteFn: tt.deleteFn})
			w := doRequest(router, http.MethodDelete, tt.url, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListUsersHandler(t *testing.T) {
	t.Run("forwards minScore and sort", func(t *testing.T) {
		var gotMin *int
		var gotSort bool
		router := newTestRouter(&mockUserService{
			listFn: func(ctx context.Context, minScore *int, sortByScore bool) ([]*user.User, error) {
				gotMin, gotSort = minScore, sortByScore
				return []*user.User{{ID: 2, Score: 150}}, nil
			},
		})
		w := doRequest(router, http.MethodGet, "/users?minScore=120&sort=true", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if gotMin == nil || *gotMin != 120 {
			t.Errorf("expected minScore 120, got %v", gotMin)
		}
		if !gotSort {
			t.Errorf("expected sort true")
		}
	})

	t.Run("defaults to unfiltered insertion order", func(t *testing.T) {
		var gotMin *int
		var gotSort bool
		router := newTestRouter(&mockUserService{
			listFn: func(ctx context.Context, minScore *int, sortByScore bool) ([]*user.User, error) {
				gotMin, gotSort = minScore, sortByScore
				return nil, nil
			},
		})
		w := doRequest(router, http.MethodGet, "/users", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if gotMin != nil || gotSort {
			t.Errorf("expected no filter and no sort, got min=%v sort=%v", gotMin, gotSort)
		}
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("expected empty array body, got %s", body)
		}
	})

	t.Run("rejects malformed minScore", func(t *testing.T) {
		router := newTestRouter(&mockUserService{})
		w := doRequest(router, http.MethodGet, "/users?minScore=abc", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestRankedUsersHandler(t *testing.T) {
	router := newTestRouter(&mockUserService{
		rankedListFn: func(ctx context.Context) ([]*user.User, error) {
			return []*user.User{
				{ID: 2, Score: 150},
				{ID: 1, Score: 100},
			}, nil
		},
	})
	w := doRequest(router, http.MethodGet, "/users/rank", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var got []user.User
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(got) != 2 || got[0].Score != 150 || got[1].Score != 100 {
		t.Errorf("expected descending scores, got %+v", got)
	}
}

func TestUserRankHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		rankOfFn       func(ctx context.Context, id uint) (int, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success - returns bare rank",
			url:            "/users/rank/1",
			rankOfFn:       func(ctx context.Context, id uint) (int, error) { return 2, nil },
			expectedStatus: http.StatusOK,
			expectedBody:   "2",
		},
		{
			name:           "not found - unknown id",
			url:            "/users/rank/99",
			rankOfFn:       func(ctx context.Context, id uint) (int, error) { return 0, userservice.ErrNotFound },
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUserService{rankOfFn: tt.rankOfFn})
			w := doRequest(router, http.MethodGet, tt.url, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedBody != "" && strings.TrimSpace(w.Body.String()) != tt.expectedBody {
				t.Errorf("[%s] expected body %q, got %q", tt.name, tt.expectedBody, w.Body.String())
			}
		})
	}
}
