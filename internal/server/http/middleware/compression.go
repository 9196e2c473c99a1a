package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kakigori/storefront/internal/server/http/dto"
)

// MaxDecompressedBody caps the size of an inflated request body.
const MaxDecompressedBody = 1 << 20

type gzipBody struct {
	*gzip.Reader
	raw io.Closer
}

func (b gzipBody) Close() error {
	_ = b.Reader.Close()
	return b.raw.Close()
}

// DecompressRequest inflates gzip encoded request bodies, such as batched
// pointer events sent by the board page. Inflated bodies larger than
// MaxDecompressedBody fail to bind.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.EqualFold(strings.TrimSpace(c.GetHeader("Content-Encoding")), "gzip") {
			c.Next()
			return
		}

		reader, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "bad_request",
				Message: "malformed gzip body",
			})
			return
		}

		body := gzipBody{Reader: reader, raw: c.Request.Body}
		c.Request.Body = http.MaxBytesReader(c.Writer, body, MaxDecompressedBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
