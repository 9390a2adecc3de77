package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/rs/zerolog/log"
)

type scanBarcodeResponse struct {
	Barcode    string      `json:"barcode"`
	Generated  bool        `json:"generated"`
	Confidence float64     `json:"confidence"`
	Product    *db.Product `json:"product"`
}

// @Summary		Scan a barcode from a photo
// @Description	Decodes an EAN-13/UPC barcode from the uploaded image. When the photo contains no readable barcode, a deterministic placeholder code is generated from the image so the intake flow can continue; the response marks it as generated.
// @Tags			barcode
// @Accept			multipart/form-data
// @Produce		json
// @Param			image	formData	file	true	"Photo of the barcode"
// @Success		200		{object}	scanBarcodeResponse
// @Security		BearerAuth
// @Router			/v1/barcode/scan [post]
func (server *Server) scanBarcode(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("image file is required")))
		return
	}

	imageData, err := readMultipartFile(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	result, err := server.barcodeScanner.Scan(imageData)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	resp := scanBarcodeResponse{
		Barcode:    result.Code,
		Generated:  result.Generated,
		Confidence: result.Confidence,
	}

	// Mã đọc được thì thử tra luôn trong danh mục để client đỡ một round trip.
	product, err := server.dbStore.GetProductByBarcode(context.Background(), result.Code)
	switch {
	case err == nil:
		resp.Product = &product
	case errors.Is(err, db.ErrRecordNotFound):
	default:
		log.Err(err).Msg("failed to look up scanned barcode")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
