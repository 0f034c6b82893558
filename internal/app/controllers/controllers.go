package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/rahuldey/uniroutine/internal/app/models/dto"
)

// parseIDParam reads the numeric :id path parameter. On failure it writes the
// 400 response itself and reports false.
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		status := http.StatusBadRequest
		ctx.JSON(status, dto.NewAPIResponse(status, nil, "Invalid id"))
		return 0, false
	}
	return id, true
}

// bindingMessage translates a request binding failure into the endpoint's
// canonical message. Tag-specific overrides win over the fallback.
func bindingMessage(err error, fallback string, tagMessages map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(tagMessages) > 0 {
		for _, fe := range verrs {
			if msg, ok := tagMessages[fe.Tag()]; ok {
				return msg
			}
		}
	}
	return fallback
}
