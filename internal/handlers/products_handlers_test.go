package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fotoprint/fotoprint/internal/models"
	"github.com/fotoprint/fotoprint/internal/objectstore"
)

func (env *testEnv) createProduct(name, displayName string, basePrice int) *models.ProductType {
	env.T.Helper()

	p := models.ProductType{
		Name:        name,
		DisplayName: displayName,
		BasePrice:   basePrice,
	}
	require.NoError(env.T, env.Store.CreateProduct(context.Background(), &p))
	return &p
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct("photoalbum", "Фотоальбом", 500)
	env.createProduct("calendar", "Календарь", 600)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products", nil)
	require.NoError(t, env.Products.ListProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.ProductType
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
}

func TestPatchProductPartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct("photoalbum", "Фотоальбом", 500)

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/products/"+product.ID.String(), map[string]any{
		"basePrice": 550,
	})
	c.SetParamNames("id")
	c.SetParamValues(product.ID.String())
	require.NoError(t, env.Products.PatchProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.ProductType
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 550, got.BasePrice)
	// untouched fields survive a partial update
	require.Equal(t, "photoalbum", got.Name)
	require.Equal(t, "Фотоальбом", got.DisplayName)
}

func TestPatchProductRejectsNegativePrice(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct("photoalbum", "Фотоальбом", 500)

	_, c := env.doJSONRequest(http.MethodPatch, "/api/products/"+product.ID.String(), map[string]any{
		"basePrice": -10,
	})
	c.SetParamNames("id")
	c.SetParamValues(product.ID.String())
	requireHTTPError(t, env.Products.PatchProduct(c), http.StatusBadRequest)
}

func TestPatchProductBadID(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPatch, "/api/products/not-a-uuid", map[string]any{"basePrice": 100})
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	requireHTTPError(t, env.Products.PatchProduct(c), http.StatusBadRequest)
}

func TestPatchProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	missing := "0d2cf5b3-9df0-4f53-bc61-58dfe3b7d0aa"
	_, c := env.doJSONRequest(http.MethodPatch, "/api/products/"+missing, map[string]any{"basePrice": 100})
	c.SetParamNames("id")
	c.SetParamValues(missing)
	requireHTTPError(t, env.Products.PatchProduct(c), http.StatusNotFound)
}

type stubSigner struct {
	uploads int
}

func (s *stubSigner) SignUpload(ctx context.Context, fileName, contentType string) (*objectstore.SignedUpload, error) {
	s.uploads++
	return &objectstore.SignedUpload{
		SignedURL: "https://storage.example/upload?token=abc",
		FilePath:  "photos/generated.jpg",
	}, nil
}

func (s *stubSigner) SignDownload(ctx context.Context, filePath string) (string, error) {
	return "https://storage.example/" + filePath + "?token=abc", nil
}

func TestSignedUploadURL(t *testing.T) {
	env := newTestEnv(t)
	signer := &stubSigner{}
	env.Upload.Signer = signer

	rec, c := env.doJSONRequest(http.MethodPost, "/api/upload/signed-url", map[string]string{
		"fileName":    "cat.jpg",
		"contentType": "image/jpeg",
	})
	require.NoError(t, env.Upload.SignedUploadURL(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, signer.uploads)

	var got objectstore.SignedUpload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got.SignedURL)
	require.NotEmpty(t, got.FilePath)
}

func TestSignedUploadURLValidation(t *testing.T) {
	env := newTestEnv(t)
	env.Upload.Signer = &stubSigner{}

	for _, body := range []map[string]string{
		{"fileName": "", "contentType": "image/jpeg"},
		{"fileName": "cat.jpg", "contentType": ""},
		{},
	} {
		_, c := env.doJSONRequest(http.MethodPost, "/api/upload/signed-url", body)
		requireHTTPError(t, env.Upload.SignedUploadURL(c), http.StatusBadRequest)
	}
}

func TestSignedUploadURLWithoutStorage(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/upload/signed-url", map[string]string{
		"fileName":    "cat.jpg",
		"contentType": "image/jpeg",
	})
	requireHTTPError(t, env.Upload.SignedUploadURL(c), http.StatusInternalServerError)
}
