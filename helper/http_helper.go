package helper

import (
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	textServerError = `unable to process request`
)

// ResponseHelper ...
type ResponseHelper struct {
	C       *gin.Context
	Status  int
	Success bool
	Message string
	Data    interface{}
	Error   interface{}
	Meta    interface{}
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Log        *zap.Logger
}

// NewHTTPHelper wires an english translator into the validator and reports
// fields under their json names.
func NewHTTPHelper(log *zap.Logger) *HTTPHelper {
	if log == nil {
		log = zap.NewNop()
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		log.Warn("validator translations not registered", zap.Error(err))
	}

	return &HTTPHelper{
		Validate:   validate,
		Translator: trans,
		Log:        log,
	}
}

func (u *HTTPHelper) getTypeData(i interface{}) string {
	v := reflect.ValueOf(i)
	v = reflect.Indirect(v)

	return v.Type().String()
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	statusCode := http.StatusOK
	if err != nil {
		switch u.getTypeData(err) {
		case "models.ErrorBadRequest":
			statusCode = http.StatusBadRequest
		case "models.ErrorUnauthorized":
			statusCode = http.StatusUnauthorized
		case "models.ErrorForbidden":
			statusCode = http.StatusForbidden
		case "models.ErrorNotFound":
			statusCode = http.StatusNotFound
		case "models.ErrorConflict":
			statusCode = http.StatusConflict
		case "models.ErrorInternalServer":
			statusCode = http.StatusInternalServerError
		default:
			statusCode = http.StatusInternalServerError
		}
	}

	return statusCode
}

// BindAndValidate decodes the JSON body into req and runs the struct
// validations. It writes the 400 response itself and returns false when the
// request should stop there.
func (u *HTTPHelper) BindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		u.SendBadRequest(c, "invalid request body", err.Error())
		return false
	}

	if err := u.Validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			u.SendValidationError(c, verrs)
			return false
		}
		u.SendBadRequest(c, err.Error(), nil)
		return false
	}
	return true
}

// ParamID reads a numeric path parameter. A 400 is sent when it is not one.
func (u *HTTPHelper) ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		u.SendBadRequest(c, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status int, message string, data interface{}) ResponseHelper {
	return ResponseHelper{
		C:       c,
		Status:  status,
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	}
}

// SendError ...
// Send the response matching a service error to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, err error) error {
	status := u.GetStatusCode(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		if u.getTypeData(err) != "models.ErrorInternalServer" {
			u.Log.Error("unhandled error",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		message = textServerError
	}

	return u.SendResponse(u.SetResponse(c, status, message, nil))
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, detail interface{}) error {
	res := u.SetResponse(c, http.StatusBadRequest, message, nil)
	res.Error = detail

	return u.SendResponse(res)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := err.Field()
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	res := u.SetResponse(c, http.StatusBadRequest, "validation failed", nil)
	res.Error = errorResponse

	return u.SendResponse(res)
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string) error {
	if message == "" {
		message = "problem with access token"
	}
	return u.SendResponse(u.SetResponse(c, http.StatusUnauthorized, message, nil))
}

// SendForbiddenError ...
// Send forbidden response to consumers.
func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string) error {
	if message == "" {
		message = "unauthorized access"
	}
	return u.SendResponse(u.SetResponse(c, http.StatusForbidden, message, nil))
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) error {
	if message == "" {
		message = "content not found"
	}
	return u.SendResponse(u.SetResponse(c, http.StatusNotFound, message, nil))
}

// SendServerError ...
func (u *HTTPHelper) SendServerError(c *gin.Context) error {
	return u.SendResponse(u.SetResponse(c, http.StatusInternalServerError, textServerError, nil))
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	return u.SendResponse(u.SetResponse(c, http.StatusOK, message, data))
}

// SendCreated ...
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) error {
	return u.SendResponse(u.SetResponse(c, http.StatusCreated, message, data))
}

// SendPage ...
// Send one page of a list together with its pagination block.
func (u *HTTPHelper) SendPage(c *gin.Context, message string, data interface{}, meta PageMeta) error {
	res := u.SetResponse(c, http.StatusOK, message, data)
	res.Meta = u.GeneratePaging(c, meta)

	return u.SendResponse(res)
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	body := map[string]interface{}{
		"success": res.Success,
	}
	if res.Message != "" {
		body["message"] = res.Message
	}
	if res.Data != nil {
		body["data"] = res.Data
	}
	if res.Error != nil {
		body["error"] = res.Error
	}
	if res.Meta != nil {
		body["meta"] = res.Meta
	}

	res.C.JSON(res.Status, body)
	return nil
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	q := r.URL.Query()
	q.Del("offset")
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	return scheme + "://" + r.Host + r.URL.Path + "?" + q.Encode()
}

// Set paginantion response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, meta PageMeta) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	page := meta.CurrentPage
	limit := meta.PerPage
	totalPages := int(math.Max(float64(meta.TotalPages), 0))

	if totalPages >= page && page > 1 {
		prevURL = u.GetPagingUrl(c, page-1, limit)
		firstURL = u.GetPagingUrl(c, 1, limit)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, page+1, limit)
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	return map[string]interface{}{
		"currentPage":  meta.CurrentPage,
		"totalPages":   meta.TotalPages,
		"totalRecords": meta.TotalRecords,
		"perPage":      meta.PerPage,
		"links":        links,
	}
}
