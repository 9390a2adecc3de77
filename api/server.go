package api

import (
	"context"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ngochandev/taphoa-BE/internal/barcode"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/event"
	"github.com/ngochandev/taphoa-BE/internal/gemini"
	"github.com/ngochandev/taphoa-BE/internal/storage"
	"github.com/ngochandev/taphoa-BE/internal/token"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/ngochandev/taphoa-BE/internal/vietqr"
	"github.com/ngochandev/taphoa-BE/internal/worker"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"google.golang.org/api/idtoken"
	"resty.dev/v3"
)

type Server struct {
	router                 *gin.Engine
	dbStore                db.Store
	fileStore              storage.FileStore
	tokenMaker             token.Maker
	config                 *util.Config
	googleIDTokenValidator *idtoken.Validator
	geminiService          *gemini.Service
	vietqrService          *vietqr.Service
	barcodeCodec           *barcode.Codec
	barcodeScanner         *barcode.Scanner
	taskDistributor        worker.TaskDistributor
	restyClient            *resty.Client
	eventSender            event.EventSender
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(store db.Store, taskDistributor worker.TaskDistributor, config *util.Config, eventSender event.EventSender) (*Server, error) {
	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	log.Info().Msg("Token maker created successfully ✅")

	// Create a new Google ID token validator
	googleIDTokenValidator, err := idtoken.NewValidator(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create google id token validator: %w", err)
	}

	// Create a new Cloudinary instance
	var fileStore storage.FileStore
	if config.CloudinaryURL != "" {
		fileStore = storage.NewCloudinaryStore(config.CloudinaryURL)
		log.Info().Msg("Cloudinary store created successfully ✅")
	}

	// Bộ sinh mã vạch dự phòng + decoder ảnh
	barcodeCodec, err := barcode.NewCodec(config.BarcodePrefixes)
	if err != nil {
		return nil, fmt.Errorf("failed to create barcode codec: %w", err)
	}
	barcodeScanner := barcode.NewScanner(barcodeCodec)
	log.Info().Msg("Barcode scanner created successfully ✅")

	// Khởi tạo resty client
	restyClient := resty.New()
	log.Info().Msg("Resty client created successfully ✅")

	geminiService := gemini.NewService(restyClient, config.GeminiAPIKey, config.GeminiModel)
	if !geminiService.Configured() {
		log.Warn().Msg("GEMINI_API_KEY is not set, voice import will run in degraded mode")
	}

	vietqrService := vietqr.NewService(config.BankID, config.BankAccountNo, config.BankAccountName, config.PaymentWebhookKey)

	server := &Server{
		dbStore:                store,
		tokenMaker:             tokenMaker,
		config:                 config,
		googleIDTokenValidator: googleIDTokenValidator,
		fileStore:              fileStore,
		geminiService:          geminiService,
		vietqrService:          vietqrService,
		barcodeCodec:           barcodeCodec,
		barcodeScanner:         barcodeScanner,
		taskDistributor:        taskDistributor,
		restyClient:            restyClient,
		eventSender:            eventSender,
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	gin.ForceConsoleColor()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(func(c *gin.Context) {
		c.Header("Cross-Origin-Opener-Policy", "same-origin same-origin-allow-popups")
		c.Header("Cross-Origin-Embedder-Policy", "unsafe-none")
		c.Next()
	})

	v1 := router.Group("/v1")

	v1.POST("/tokens/verify", server.verifyAccessToken)

	v1.POST("/auth/register", server.createUser)
	v1.POST("/auth/login", server.loginUser)
	v1.POST("/auth/google-login", server.loginUserWithGoogle)

	// Webhook từ dịch vụ đối soát ngân hàng, xác thực bằng chữ ký HMAC
	// thay vì access token.
	v1.POST("/payments/webhook", server.handlePaymentWebhook)

	// API cho quầy bán hàng, cần đăng nhập
	productGroup := v1.Group("/products", authMiddleware(server.tokenMaker))
	{
		productGroup.POST("", server.createProduct)
		productGroup.GET("", server.listProducts)
		productGroup.GET(":id", server.getProduct)
		productGroup.PUT(":id", server.updateProduct)
		productGroup.PATCH(":id/image", server.updateProductImage)
		productGroup.GET("by-barcode/:code", server.getProductByBarcode)

		// Tìm sản phẩm theo câu nói ở quầy bán ("bán cho chị chai Coca")
		productGroup.GET("search", server.searchProductByVoice)
	}

	barcodeGroup := v1.Group("/barcode", authMiddleware(server.tokenMaker))
	{
		barcodeGroup.POST("scan", server.scanBarcode)
	}

	voiceGroup := v1.Group("/voice", authMiddleware(server.tokenMaker))
	{
		// Mode A: transcript từ Web Speech API, bóc tách bằng regex tại chỗ
		voiceGroup.POST("import-command", server.parseImportCommand)

		// Mode B: file ghi âm, bóc tách bằng Gemini
		voiceGroup.POST("import", server.extractImportIntent)
	}

	orderGroup := v1.Group("/orders", authMiddleware(server.tokenMaker))
	{
		orderGroup.POST("", server.createOrder)
		orderGroup.GET("", server.listOrders)
		orderGroup.GET("stream", server.streamOrderEvents)
		orderGroup.GET(":code", server.getOrderDetails)
	}

	importGroup := v1.Group("/imports", authMiddleware(server.tokenMaker))
	{
		importGroup.POST("", server.createImport)
		importGroup.GET("", server.listImports)
	}

	reportGroup := v1.Group("/reports", authMiddleware(server.tokenMaker))
	{
		reportGroup.GET("revenue", server.getRevenueReport)
	}

	paymentGroup := v1.Group("/payments", authMiddleware(server.tokenMaker))
	{
		paymentGroup.POST("qr", server.createPaymentQR)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}

// Handler exposes the underlying router, dùng khi serve qua ngrok listener.
func (server *Server) Handler() *gin.Engine {
	return server.router
}
