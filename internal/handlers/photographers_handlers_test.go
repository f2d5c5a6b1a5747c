package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fotoprint/fotoprint/internal/models"
)

func TestListPhotographers(t *testing.T) {
	env := newTestEnv(t)
	for _, p := range []models.Photographer{
		{Name: "Алексей Петров", Specialization: "Свадебная съёмка", PricePerHour: 3000, Rating: 5},
		{Name: "Мария Иванова", Specialization: "Семейная съёмка", PricePerHour: 2500, Rating: 5},
	} {
		ph := p
		require.NoError(t, env.Store.CreatePhotographer(context.Background(), &ph))
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/photographers", nil)
	require.NoError(t, env.Photographers.ListPhotographers(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Photographer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
}

func TestGetPhotographer(t *testing.T) {
	env := newTestEnv(t)
	ph := models.Photographer{Name: "Дмитрий Соколов", PricePerHour: 2000, Rating: 4}
	require.NoError(t, env.Store.CreatePhotographer(context.Background(), &ph))

	rec, c := env.doJSONRequest(http.MethodGet, "/api/photographers/"+ph.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(ph.ID.String())
	require.NoError(t, env.Photographers.GetPhotographer(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Photographer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, ph.ID, got.ID)
	require.Equal(t, 2000, got.PricePerHour)
}

func TestGetPhotographerNotFound(t *testing.T) {
	env := newTestEnv(t)

	missing := "8f14e45f-ceea-467f-aabc-0d2cf5b39df0"
	_, c := env.doJSONRequest(http.MethodGet, "/api/photographers/"+missing, nil)
	c.SetParamNames("id")
	c.SetParamValues(missing)
	requireHTTPError(t, env.Photographers.GetPhotographer(c), http.StatusNotFound)
}

func TestGetPhotographerBadID(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/photographers/oops", nil)
	c.SetParamNames("id")
	c.SetParamValues("oops")
	requireHTTPError(t, env.Photographers.GetPhotographer(c), http.StatusBadRequest)
}
