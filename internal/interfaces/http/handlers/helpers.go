package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/interfaces/http/middleware"
	"legalease.backend/internal/interfaces/http/response"
	"legalease.backend/internal/usecases"
	"legalease.backend/pkg/filecheck"
	"legalease.backend/pkg/utils"
)

// MaxMultipartMemory bounds the in-memory form parse; the file rule sets enforce the real limits
const MaxMultipartMemory = 12 << 20

// multipartOverhead is the room left for form fields and part headers on top of a file limit
const multipartOverhead = 1 << 20

// actorOrAbort writes 401 and returns false when the request is unauthenticated
func actorOrAbort(c *gin.Context) (usecases.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return usecases.Actor{}, false
	}
	return actor, true
}

func paginationFrom(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPageLimit)))
	return utils.GetPaginationParams(page, limit)
}

func listBody(key string, items interface{}, total int64, p utils.PaginationParams) gin.H {
	return gin.H{
		key:          items,
		"pagination": utils.CalculateMeta(total, p.Page, p.Limit),
	}
}

// limitUpload caps the request body so an oversized upload fails while
// the form is parsed instead of being buffered first
func limitUpload(c *gin.Context, rules filecheck.Rules) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, rules.MaxSize+multipartOverhead)
}

// formError reports a tripped body limit as the file size rule, else fallback
func formError(err error, rules filecheck.Rules, fallback error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domainerrors.BadRequest(filecheck.CheckSize(rules, rules.MaxSize+1).Error())
	}
	return fallback
}

// readUpload loads a multipart file into memory. A missing file yields nil and the usecase rejects it.
func readUpload(c *gin.Context, field string, rules filecheck.Rules) (*entities.UploadedFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, formError(err, rules, domainerrors.BadRequest("Invalid multipart form"))
	}
	if err := filecheck.CheckSize(rules, header.Size); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}
	return readFileHeader(header, rules.MaxSize)
}

func readFileHeader(header *multipart.FileHeader, maxSize int64) (*entities.UploadedFile, error) {
	f, err := header.Open()
	if err != nil {
		return nil, domainerrors.BadRequest("Unable to read uploaded file")
	}
	defer f.Close()

	// one byte past the limit is enough for filecheck to reject it
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, domainerrors.BadRequest("Unable to read uploaded file")
	}
	return &entities.UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
