package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReFOiL/fitboddy-admin/internal/config"
	"github.com/ReFOiL/fitboddy-admin/internal/handlers"
	"github.com/ReFOiL/fitboddy-admin/internal/middleware"
	"github.com/ReFOiL/fitboddy-admin/internal/repository"
	"github.com/ReFOiL/fitboddy-admin/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	questionRepo := repository.NewQuestionRepository(db)
	userRepo := repository.NewUserRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	workoutRepo := repository.NewWorkoutTemplateRepository(db)

	var storageService services.StorageService
	if cfg.StorageURL != "" && cfg.StorageBucket != "" && cfg.StorageServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.StorageURL, cfg.StorageBucket, cfg.StorageServiceKey)
	}

	questionService := services.NewQuestionService(db, questionRepo)
	userService := services.NewUserService(userRepo)
	exerciseService := services.NewExerciseService(exerciseRepo, storageService, cfg.AdminToken)
	workoutService := services.NewWorkoutService(db, workoutRepo)

	authHandler := handlers.NewAuthHandler(cfg.AdminToken)
	questionHandler := handlers.NewQuestionHandler(questionService)
	userHandler := handlers.NewUserHandler(userService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)
	referenceHandler := handlers.NewReferenceHandler(referenceRepo)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	auth := middleware.AdminAuthRequired(cfg.AdminToken)

	// The questions/users families live at the root admin prefix, the rest
	// under /api/v1/admin. Both prefixes predate this service and the panel
	// depends on them.
	admin := app.Group("/admin")
	admin.Post("/auth/login", authHandler.Login)

	questions := admin.Group("/questions", auth)
	questions.Get("", questionHandler.ListQuestions)
	questions.Post("", questionHandler.CreateQuestion)
	questions.Put("/:id", questionHandler.UpdateQuestion)
	questions.Delete("/:id", questionHandler.DeactivateQuestion)
	questions.Put("/:id/order", questionHandler.UpdateQuestionOrder)

	users := admin.Group("/users", auth)
	users.Get("", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)

	apiAdmin := app.Group("/api/v1/admin", auth)

	exercises := apiAdmin.Group("/exercises")
	exercises.Get("", exerciseHandler.ListExercises)
	exercises.Post("", exerciseHandler.CreateExercise)
	exercises.Get("/:id", exerciseHandler.GetExercise)
	exercises.Put("/:id", exerciseHandler.UpdateExercise)
	exercises.Delete("/:id", exerciseHandler.DeleteExercise)

	apiAdmin.Get("/muscles", referenceHandler.ListMuscles)
	apiAdmin.Get("/contraindications", referenceHandler.ListContraindications)

	workouts := apiAdmin.Group("/workout-templates")
	workouts.Get("", workoutHandler.ListTemplates)
	workouts.Post("", workoutHandler.CreateTemplate)
	workouts.Get("/:id", workoutHandler.GetTemplate)
	workouts.Put("/:id", workoutHandler.UpdateTemplate)
	workouts.Delete("/:id", workoutHandler.DeleteTemplate)
	workouts.Put("/:id/exercises/order", workoutHandler.UpdateExercisesOrder)

	apiAdmin.Post("/uploads/video", uploadHandler.UploadVideo)
}
