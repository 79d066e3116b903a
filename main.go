package main

import (
	"os"

	"github.com/firdaus0729/nurse/routes"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeUploads()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the web frontend
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// Uploaded media is served straight from the local upload directory.
	app.HandleDir("/upload", iris.Dir(storage.UploadDir()))

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	// Anonymous visitor chat: no authentication, the uuid is the identity.
	chat := app.Party("/api/chat")
	{
		chat.Post("/", routes.StartConversation)
		chat.Get("/{uuid}", routes.GetConversation)
		chat.Post("/{uuid}/messages", routes.PostVisitorMessage)
	}

	// Public content reads
	app.Get("/api/pages/{slug}", routes.GetPageBySlug)
	app.Get("/api/home/welcome", routes.GetHomeWelcome)
	app.Get("/api/carousel", routes.GetCarouselSlides)
	app.Get("/api/quick-access", routes.GetQuickAccessCards)
	app.Get("/api/articles", routes.ListPublishedArticles)
	app.Get("/api/articles/{slug}", routes.GetArticleBySlug)
	app.Get("/api/categories", routes.GetCategories)
	app.Post("/api/contact", routes.SubmitContactForm)

	user := app.Party("/api/user")
	{
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Post("/logout", routes.Logout)
		user.Get("/me", accessTokenVerifierMiddleware, utils.StaffMiddleware, routes.GetCurrentUser)
	}

	app.Post("/api/upload", accessTokenVerifierMiddleware, utils.StaffMiddleware, routes.UploadImage)

	// Staff surface: reads and chat for any role, mutations mostly ADMIN.
	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.StaffMiddleware)
	{
		admin.Get("/conversations", routes.AdminListConversations)
		admin.Get("/conversations/{id}", routes.AdminGetConversation)
		admin.Post("/conversations/{id}/messages", routes.AdminReplyToConversation)
		admin.Patch("/conversations/{id}", routes.AdminCloseConversation)
		admin.Get("/chat-feed", routes.AdminChatFeed)
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", utils.AdminOnlyMiddleware, routes.AdminActivity)

		admin.Get("/users", utils.AdminOnlyMiddleware, routes.AdminListUsers)
		admin.Post("/users", utils.AdminOnlyMiddleware, routes.AdminCreateUser)
		admin.Patch("/users/{id:uint}/role", utils.AdminOnlyMiddleware, routes.AdminChangeUserRole)

		admin.Get("/pages", routes.AdminListPages)
		admin.Post("/pages", utils.AdminOnlyMiddleware, routes.AdminCreatePage)
		admin.Get("/pages/{slug}", routes.AdminGetPage)
		admin.Patch("/pages/{slug}", utils.AdminOnlyMiddleware, routes.AdminUpdatePage)
		admin.Delete("/pages/{slug}", utils.AdminOnlyMiddleware, routes.AdminDeletePage)
		admin.Get("/pages/{slug}/sections", routes.AdminListSections)
		admin.Post("/pages/{slug}/sections", utils.AdminOnlyMiddleware, routes.AdminCreateSection)
		admin.Patch("/sections/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminUpdateSection)
		admin.Delete("/sections/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminDeleteSection)
		admin.Get("/home/welcome", routes.AdminGetWelcome)
		admin.Patch("/home/welcome", utils.AdminOnlyMiddleware, routes.AdminUpdateWelcome)
		admin.Get("/cuidate", routes.AdminGetCuidateCards)
		admin.Patch("/cuidate", utils.AdminOnlyMiddleware, routes.AdminUpdateCuidateCards)

		// Nurses may draft articles; publication state changes and deletes
		// are checked against the role inside the handlers.
		admin.Get("/articles", routes.AdminListArticles)
		admin.Post("/articles", routes.AdminCreateArticle)
		admin.Patch("/articles/{id:uint}", routes.AdminUpdateArticle)
		admin.Delete("/articles/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminDeleteArticle)

		admin.Get("/categories", routes.GetCategories)
		admin.Post("/categories", utils.AdminOnlyMiddleware, routes.AdminCreateCategory)
		admin.Patch("/categories/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminUpdateCategory)
		admin.Delete("/categories/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminDeleteCategory)

		admin.Get("/carousel", routes.AdminListCarouselSlides)
		admin.Post("/carousel", utils.AdminOnlyMiddleware, routes.AdminCreateCarouselSlide)
		admin.Patch("/carousel/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminUpdateCarouselSlide)
		admin.Delete("/carousel/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminDeleteCarouselSlide)
		admin.Post("/carousel/{id:uint}/move", utils.AdminOnlyMiddleware, routes.AdminMoveCarouselSlide)

		admin.Get("/quick-access", routes.AdminListQuickAccessCards)
		admin.Post("/quick-access", utils.AdminOnlyMiddleware, routes.AdminCreateQuickAccessCard)
		admin.Patch("/quick-access/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminUpdateQuickAccessCard)
		admin.Delete("/quick-access/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminDeleteQuickAccessCard)
		admin.Post("/quick-access/{id:uint}/move", utils.AdminOnlyMiddleware, routes.AdminMoveQuickAccessCard)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}
