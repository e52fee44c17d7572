package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Payload struct {
	Dates string `binding:"required,daterange"`
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	request, err := http.NewRequest("GET", "/", nil)
	assert.NoError(t, err)
	ctx.Request = request

	err = ctx.ShouldBind(&Payload{Dates: "09:00-03:30 2 Jan 2026 - 17:00-03:30 9 Jan 2026"})
	assert.NoError(t, err)

	err = ctx.ShouldBind(&Payload{Dates: "sometime next week"})
	assert.Error(t, err)
	assert.Equal(t, "Key: 'Payload.Dates' Error:Field validation for 'Dates' failed on the 'daterange' tag", err.Error())

	err = ctx.ShouldBind(&Payload{Dates: "a - b - c"})
	assert.Error(t, err)
}
