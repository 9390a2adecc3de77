package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ngochandev/taphoa-BE/internal/barcode"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/ngochandev/taphoa-BE/internal/voice"
	"github.com/rs/zerolog/log"
)

type createProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Barcode     *string `json:"barcode"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	Price       int64   `json:"price"`
	ImportPrice int64   `json:"import_price"`
	Stock       int64   `json:"stock"`
	MinStock    int64   `json:"min_stock"`
}

// @Summary		Create a product
// @Tags			products
// @Accept			json
// @Produce		json
// @Param			request	body		createProductRequest	true	"Product info"
// @Success		200		{object}	db.Product
// @Security		BearerAuth
// @Router			/v1/products [post]
func (server *Server) createProduct(ctx *gin.Context) {
	req := new(createProductRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	// Mã vạch nhập tay 12 số thì tự thêm số kiểm tra, 13 số thì kiểm tra luôn.
	if req.Barcode != nil && *req.Barcode != "" {
		completed, err := barcode.Complete(*req.Barcode)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(err))
			return
		}
		req.Barcode = &completed
	}

	if req.Unit == "" {
		req.Unit = "cái"
	}
	if req.Category == "" {
		req.Category = "Chưa phân loại"
	}

	arg := db.CreateProductParams{
		Name:        req.Name,
		Slug:        util.GenerateProductSlug(req.Name),
		Description: req.Description,
		Barcode:     req.Barcode,
		Unit:        req.Unit,
		Category:    req.Category,
		Price:       req.Price,
		ImportPrice: req.ImportPrice,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
	}

	product, err := server.dbStore.CreateProduct(context.Background(), arg)
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		switch {
		case errCode == db.UniqueViolationCode && constraintName == db.UniqueBarcodeConstraint:
			err = fmt.Errorf("barcode %s already exists", *req.Barcode)
			ctx.JSON(http.StatusConflict, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to create product")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// @Summary		List products
// @Tags			products
// @Produce		json
// @Param			name		query		string	false	"Filter by name (substring match)"
// @Param			category	query		string	false	"Filter by category"
// @Success		200			{array}		db.Product
// @Security		BearerAuth
// @Router			/v1/products [get]
func (server *Server) listProducts(ctx *gin.Context) {
	arg := db.ListProductsParams{}

	if name := ctx.Query("name"); name != "" {
		arg.Name = &name
	}
	if category := ctx.Query("category"); category != "" {
		arg.Category = &category
	}

	products, err := server.dbStore.ListProducts(context.Background(), arg)
	if err != nil {
		log.Err(err).Msg("failed to list products")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, products)
}

func (server *Server) getProduct(ctx *gin.Context) {
	productID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid product ID")))
		return
	}

	product, err := server.dbStore.GetProductByID(context.Background(), productID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("product %d not found", productID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to get product")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// @Summary		Look up a product by barcode
// @Tags			products
// @Produce		json
// @Param			code	path		string	true	"EAN-13 barcode"
// @Success		200		{object}	db.Product
// @Security		BearerAuth
// @Router			/v1/products/by-barcode/{code} [get]
func (server *Server) getProductByBarcode(ctx *gin.Context) {
	code := ctx.Param("code")

	product, err := server.dbStore.GetProductByBarcode(context.Background(), code)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("no product with barcode %s", code)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to get product by barcode")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, product)
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Barcode     *string `json:"barcode"`
	Unit        *string `json:"unit"`
	Category    *string `json:"category"`
	Price       *int64  `json:"price"`
	ImportPrice *int64  `json:"import_price"`
	MinStock    *int64  `json:"min_stock"`
}

func (server *Server) updateProduct(ctx *gin.Context) {
	productID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid product ID")))
		return
	}

	req := new(updateProductRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.Barcode != nil && *req.Barcode != "" {
		completed, err := barcode.Complete(*req.Barcode)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(err))
			return
		}
		req.Barcode = &completed
	}

	product, err := server.dbStore.UpdateProduct(context.Background(), db.UpdateProductParams{
		ID:          productID,
		Name:        req.Name,
		Description: req.Description,
		Barcode:     req.Barcode,
		Unit:        req.Unit,
		Category:    req.Category,
		Price:       req.Price,
		ImportPrice: req.ImportPrice,
		MinStock:    req.MinStock,
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("product %d not found", productID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to update product")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func (server *Server) updateProductImage(ctx *gin.Context) {
	productID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid product ID")))
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("image file is required")))
		return
	}

	if _, err = server.dbStore.GetProductByID(context.Background(), productID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("product %d not found", productID)))
			return
		}

		log.Err(err).Msg("failed to get product")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	urls, err := server.uploadFileToCloudinary("product", strconv.FormatInt(productID, 10), "products", file)
	if err != nil {
		log.Err(err).Msg("failed to upload product image")
		ctx.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	err = server.dbStore.UpdateProductImageURL(context.Background(), db.UpdateProductImageURLParams{
		ID:       productID,
		ImageURL: urls[0],
	})
	if err != nil {
		log.Err(err).Msg("failed to update product image url")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"image_url": urls[0]})
}

// @Summary		Find a product by a spoken phrase
// @Description	Matches the transcript against the catalog, e.g. "bán cho chị chai Coca"
// @Tags			products
// @Produce		json
// @Param			q	query		string	true	"Spoken phrase"
// @Success		200	{object}	db.Product
// @Security		BearerAuth
// @Router			/v1/products/search [get]
func (server *Server) searchProductByVoice(ctx *gin.Context) {
	transcript := ctx.Query("q")
	if transcript == "" {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("query parameter q is required")))
		return
	}

	products, err := server.dbStore.ListProducts(context.Background(), db.ListProductsParams{})
	if err != nil {
		log.Err(err).Msg("failed to list products")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	product, found := voice.MatchProduct(transcript, products)
	if !found {
		ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("no product matches %q", transcript)))
		return
	}

	ctx.JSON(http.StatusOK, product)
}
