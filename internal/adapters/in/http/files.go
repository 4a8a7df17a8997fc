package http

import (
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/adapters/out/filestore"

	"github.com/labstack/echo/v4"
)

// DocumentSource is a file store that can hand back stored bytes.
type DocumentSource interface {
	Open(ref string) ([]byte, string, bool)
}

// ServeDocuments serves download URLs minted by a local file store. The
// expires query parameter is checked against now.
func ServeDocuments(e *echo.Echo, src DocumentSource, now func() time.Time) {
	e.GET("/"+filestore.Prefix+":name", func(c echo.Context) error {
		expires, err := strconv.ParseInt(c.QueryParam("expires"), 10, 64)
		if err != nil || now().Unix() > expires {
			return echo.NewHTTPError(http.StatusForbidden, "download link expired")
		}
		ref := filestore.Prefix + c.Param("name")
		if err := filestore.ValidateRef(ref); err != nil {
			return err
		}
		data, contentType, ok := src.Open(ref)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "file not found")
		}
		if contentType == "" {
			contentType = echo.MIMEOctetStream
		}
		return c.Blob(http.StatusOK, contentType, data)
	})
}
