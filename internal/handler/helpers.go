package handler

import (
	"net/http"
	"reflect"

	"github.com/tettoewai/restaurant-pos-sub001/internal/apierror"
	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondAction shapes business mutation outcomes as {isSuccess, message}.
// Validation failures map to 400, illegal lifecycle transitions to 409, and
// anything else is a masked 500.
func respondAction(c *gin.Context, err error, successMsg string) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.OK(successMsg))
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
	case service.IsStateConflict(err):
		c.JSON(http.StatusConflict, dto.Fail(err.Error()))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("action failed")
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal server error"))
	}
}

// respondError is the plain-envelope sibling of respondAction for read
// endpoints and non-action writes.
func respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case service.IsStateConflict(err):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

// uuidParam parses a path parameter as a UUID, writing the 400 itself.
func uuidParam(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
