package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) qrImage(c *gin.Context) {
	const op = "qrImage"

	id, err := parseProductID(c, "productId")
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	// The PNG is cheap to render but useless for an unregistered product.
	if _, err := s.gateway.GetProduct(c.Request.Context(), id); err != nil {
		AbortWithError(c, op, err)
		return
	}

	png, err := s.qr.PNG(id)
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) qrData(c *gin.Context) {
	const op = "qrData"

	id, err := parseProductID(c, "productId")
	if err != nil {
		AbortWithError(c, op, err)
		return
	}

	if _, err := s.gateway.GetProduct(c.Request.Context(), id); err != nil {
		AbortWithError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    s.qr.Data(id),
	})
}
