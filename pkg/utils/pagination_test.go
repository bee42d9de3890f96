package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestGetPaginationFromCtx(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest("GET", "/?page=3&size=25", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	p, err := GetPaginationFromCtx(c)
	require.NoError(t, err)
	require.Equal(t, 3, p.GetPage())
	require.Equal(t, 25, p.GetSize())
	require.Equal(t, 50, p.GetOffset())
	require.Equal(t, 25, p.GetLimit())
}

func TestGetPaginationDefaults(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest("GET", "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	p, err := GetPaginationFromCtx(c)
	require.NoError(t, err)
	require.Equal(t, 1, p.GetPage())
	require.Equal(t, 10, p.GetSize())
	require.Equal(t, 0, p.GetOffset())
}

func TestGetPaginationRejectsGarbage(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest("GET", "/?page=abc", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := GetPaginationFromCtx(c)
	require.Error(t, err)
}

func TestGetHasMore(t *testing.T) {
	require.True(t, GetHasMore(1, 25, 10))
	require.False(t, GetHasMore(3, 25, 10))
}
