package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
)

const pdfContentType = "application/pdf"

// DownloadInvoicePDF renders one of the caller's own invoices.
func (s *Server) DownloadInvoicePDF(c *gin.Context, p identitydomain.Principal) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body, filename, err := s.invoiceSvc.RenderPDF(c.Request.Context(), p.SubjectID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.DataFromReader(http.StatusOK, -1, pdfContentType, body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
	})
}
