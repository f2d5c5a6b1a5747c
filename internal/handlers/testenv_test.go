package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fotoprint/fotoprint/internal/hash"
	"github.com/fotoprint/fotoprint/internal/models"
	"github.com/fotoprint/fotoprint/internal/service/token"
	"github.com/fotoprint/fotoprint/internal/storage"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	Store  storage.Store
	Tokens *token.TokenService

	Auth          *AuthHandler
	Products      *ProductHandler
	Photographers *PhotographerHandler
	Orders        *OrderHandler
	Upload        *UploadHandler
}

func initTestStore(t *testing.T) storage.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	require.NoError(t, storage.Migrate(db))

	return &storage.GormStore{DB: db}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := initTestStore(t)
	tokens := &token.TokenService{
		Store:         store,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:      t,
		E:      echo.New(),
		Store:  store,
		Tokens: tokens,

		Auth:          &AuthHandler{Store: store, Tokens: tokens},
		Products:      &ProductHandler{Store: store},
		Photographers: &PhotographerHandler{Store: store},
		Orders:        &OrderHandler{Store: store},
		Upload:        &UploadHandler{},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createUser(username string, admin bool) *models.User {
	env.T.Helper()

	pwHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		IsAdmin:      admin,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(env.T, env.Store.CreateUser(context.Background(), &user))
	return &user
}

// asUser mimics what the session middleware puts into the context.
func asUser(c echo.Context, user *models.User) {
	c.Set("userID", user.ID)
	c.Set("username", user.Username)
	c.Set("isAdmin", user.IsAdmin)
}

func (env *testEnv) createOrder(userID uuid.UUID, createdAt time.Time) *models.Order {
	env.T.Helper()

	order := models.Order{
		UserID:        userID,
		ProductType:   "photoalbum",
		Status:        models.StatusPending,
		TotalPrice:    3000,
		ProductConfig: datatypes.JSON(`{"size":"medium","coverType":"hard","pages":30,"paperType":"glossy"}`),
		PhotoSource:   models.PhotoSourceUpload,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(env.T, env.Store.CreateOrder(context.Background(), &order))
	return &order
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}
