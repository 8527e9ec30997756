package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/requestid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/suraj4812010/Videotube/config"
	"github.com/suraj4812010/Videotube/controllers"
	"github.com/suraj4812010/Videotube/db"
	"github.com/suraj4812010/Videotube/forms"
	"github.com/suraj4812010/Videotube/kv"
	"github.com/suraj4812010/Videotube/mailer"
	"github.com/suraj4812010/Videotube/service"
)

// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Accept-Encoding")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

func SlogMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rlog := logger.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
			"request_id", requestid.Get(c),
		)

		start := time.Now()
		rlog.Debug("request started")
		c.Next()
		duration := time.Since(start)
		rlog.Info("request completed", "status", c.Writer.Status(), "duration", duration)
	}
}

func main() {
	//Load the .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Error("failed to load the env file")
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logger *slog.Logger
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	//Start the default gin server
	r := gin.Default()

	//Custom form validator
	binding.Validator = new(forms.DefaultValidator)

	r.Use(CORSMiddleware(cfg.CORSOrigin))
	r.Use(requestid.New(requestid.WithCustomHeaderStrKey("X-Request-Id")))
	r.Use(SlogMiddleware(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	database, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisKV, err := kv.NewRedisKV(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		slog.Error("failed to connect to key-value store", "error", err)
		os.Exit(1)
	}

	mail, err := mailer.New(cfg.SMTP)
	if err != nil {
		slog.Error("failed to configure mailer", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(service.NewCodec(cfg.Token), database)
	userService := service.NewUserService(database, authService)
	recoveryService := service.NewRecoveryService(database, mail, cfg.Token.ResetTTL, cfg.AppBaseURL)
	loginLimiter := service.NewRateLimiter(redisKV, cfg.LoginAttempts, cfg.LoginWindow)
	resetLimiter := service.NewRateLimiter(redisKV, cfg.ResetAttempts, cfg.ResetWindow)

	cookies := controllers.NewCookieWriter(cfg.Production(), cfg.Token.AccessTTL, cfg.Token.RefreshTTL)

	health := controllers.NewHealthController(map[string]func(context.Context) error{
		"mongodb": database.Ping,
		"redis":   redisKV.Ping,
	})
	r.GET("/health", health.Health)

	auth := controllers.NewAuthController(authService, cookies)
	user := controllers.NewUserController(userService, authService, recoveryService, loginLimiter, resetLimiter, cookies)

	r.POST("/register", user.Register)
	r.POST("/login", user.Login)
	r.POST("/refresh-token", auth.RefreshToken)
	r.POST("/forgot-password", user.ForgotPassword)
	r.POST("/reset-password/:token", user.ResetPassword)

	secured := r.Group("", auth.RequireAuth())
	secured.POST("/logout", user.Logout)
	secured.GET("/current-user", user.GetCurrentUser)
	secured.POST("/change-password", user.ChangePassword)
	secured.PATCH("/update-account", user.UpdateAccount)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)

	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
