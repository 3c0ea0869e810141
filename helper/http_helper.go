package helper

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"

	"portfolio-blog-api/models"
)

// HTTPHelper centralizes error responses. Every error body is a JSON object
// with a "message" field; validation errors add a per-field "errors" map.
type HTTPHelper struct {
	Validate    *validator.Validate
	Translator  ut.Translator
	Logger      *zap.Logger
	Development bool
}

func NewHTTPHelper(validate *validator.Validate, translator ut.Translator, logger *zap.Logger, development bool) *HTTPHelper {
	return &HTTPHelper{
		Validate:    validate,
		Translator:  translator,
		Logger:      logger,
		Development: development,
	}
}

// ValidateStruct runs the request DTO through the validator and, on failure,
// writes the 400 response itself. Returns false when the request is invalid.
func (u *HTTPHelper) ValidateStruct(c *gin.Context, req interface{}) bool {
	err := u.Validate.Struct(req)
	if err == nil {
		return true
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		u.SendBadRequest(c, "Invalid request body")
		return false
	}

	fieldErrors := map[string][]string{}
	translated := validationErrors.Translate(u.Translator)
	for _, fieldErr := range validationErrors {
		key := Underscore(fieldErr.StructField())
		fieldErrors[key] = append(fieldErrors[key], translated[fieldErr.Namespace()])
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  fieldErrors,
	})
	return false
}

// SendServiceError maps a service-layer error onto its HTTP status. Store
// errors are logged here; their details reach the client only in
// development mode.
func (u *HTTPHelper) SendServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case models.ErrorValidation:
		c.JSON(http.StatusBadRequest, gin.H{"message": e.Message})
	case models.ErrorConflict:
		c.JSON(http.StatusBadRequest, gin.H{"message": e.Message})
	case models.ErrorNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": e.Message})
	case models.ErrorUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"message": e.Message})
	case models.ErrorForbidden:
		c.JSON(http.StatusForbidden, gin.H{"message": e.Message})
	case models.ErrorInternalServer:
		u.Logger.Error(e.Message,
			zap.String("path", c.Request.URL.Path),
			zap.Error(e.Err),
		)
		body := gin.H{"message": e.Message}
		if u.Development && e.Err != nil {
			body["error"] = e.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	default:
		u.Logger.Error("unexpected error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func (u *HTTPHelper) SendUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": message})
}

func (u *HTTPHelper) SendForbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{"message": message})
}

func (u *HTTPHelper) SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

// Underscore converts a StructField name like "AuthorName" to "author_name"
// for validation error keys.
func Underscore(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
