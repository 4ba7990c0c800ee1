package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/controllers"
	"github.com/Glory2TheLord/FitLogV1/middlewares"
	"github.com/Glory2TheLord/FitLogV1/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(db)
	if err != nil {
		log.Printf("push service unavailable: %v", err)
	}
	history := services.NewHistoryService(db)
	services.InitEventDeps(history, hub, push)

	var verifier services.PersonVerifier
	if rek, err := services.NewRekognitionService(); err != nil {
		log.Printf("rekognition unavailable, photo checks disabled: %v", err)
	} else {
		verifier = rek
	}

	prefsCtl := controllers.NewPreferencesController(services.NewPreferencesService(db))
	metricsCtl := controllers.NewMetricsController(services.NewMetricsService(db))
	mealCtl := controllers.NewMealController(services.NewMealTrackingService(db))
	workoutCtl := controllers.NewWorkoutController(services.NewWorkoutService(db))
	photoCtl := controllers.NewPhotoController(services.NewPhotoService(db, verifier))
	weighInCtl := controllers.NewWeighInController(services.NewWeighInService(db))
	historyCtl := controllers.NewHistoryController(history)
	dayCtl := controllers.NewDayController(services.NewDayCompletionService(db))
	profileCtl := controllers.NewProfileController(services.NewProfileService(db))
	analyticsCtl := controllers.NewAnalyticsController(services.NewAnalyticsService(db))
	realtimeCtl := controllers.NewRealtimeController(hub)
	deviceCtl := controllers.NewDeviceController(push)
	devCtl := controllers.NewDevController(db, push)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		user := api.Group("/user")
		{
			user.GET("/account", controllers.GetAccount)
			user.PUT("/account", controllers.UpdateAccount)
			user.DELETE("/account", controllers.DeleteAccount)
			user.PUT("/mfa", controllers.SetMFA)
			user.GET("/profile", profileCtl.Get)
			user.PUT("/profile", profileCtl.Update)
		}

		prefs := api.Group("/preferences")
		{
			prefs.GET("", prefsCtl.Get)
			prefs.PUT("", prefsCtl.Update)
		}

		metrics := api.Group("/metrics")
		{
			metrics.GET("/today", metricsCtl.GetToday)
			metrics.POST("/steps", metricsCtl.AddSteps)
			metrics.PUT("/steps", metricsCtl.SetSteps)
			metrics.POST("/water", metricsCtl.AddWater)
			metrics.PUT("/blood-pressure", metricsCtl.SetBloodPressure)
		}

		meals := api.Group("/meals")
		{
			meals.GET("/templates", mealCtl.ListTemplates)
			meals.POST("/templates", mealCtl.CreateTemplate)
			meals.PUT("/templates/:id", mealCtl.UpdateTemplate)
			meals.DELETE("/templates/:id", mealCtl.DeleteTemplate)
			meals.GET("/slots", mealCtl.GetSlots)
			meals.PUT("/slots/:index/template", mealCtl.AssignTemplate)
			meals.PUT("/slots/:index/completed", mealCtl.SetSlotCompleted)
		}

		workouts := api.Group("/workouts")
		{
			workouts.GET("/program-days", workoutCtl.ListProgramDays)
			workouts.POST("/program-days", workoutCtl.AddProgramDay)
			workouts.PUT("/program-days/:id", workoutCtl.UpdateProgramDay)
			workouts.GET("/focus", workoutCtl.FocusToday)
			workouts.GET("/templates", workoutCtl.ListTemplates)
			workouts.POST("/templates", workoutCtl.CreateTemplate)
			workouts.PUT("/templates/:id", workoutCtl.UpdateTemplate)
			workouts.DELETE("/templates/:id", workoutCtl.DeleteTemplate)
			workouts.GET("", workoutCtl.ListForDate)
			workouts.POST("", workoutCtl.AddWorkout)
			workouts.PUT("/:id", workoutCtl.UpdateWorkout)
			workouts.DELETE("/:id", workoutCtl.DeleteWorkout)
			workouts.POST("/:id/toggle", workoutCtl.ToggleCompleted)
		}

		photos := api.Group("/photos")
		{
			photos.GET("", photoCtl.ListDays)
			photos.GET("/:date", photoCtl.GetDay)
			photos.POST("/:date", photoCtl.UploadPosition)
			photos.DELETE("/:date", photoCtl.DeleteDay)
		}

		weighIns := api.Group("/weigh-ins")
		{
			weighIns.POST("", weighInCtl.Record)
			weighIns.GET("", weighInCtl.List)
		}

		history := api.Group("/history")
		{
			history.GET("", historyCtl.List)
			history.GET("/:date", historyCtl.GetDay)
			history.POST("/note", historyCtl.AddNote)
			history.DELETE("/:date", historyCtl.DeleteDay)
		}

		day := api.Group("/day")
		{
			day.GET("/status", dayCtl.Status)
			day.POST("/complete", dayCtl.Complete)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/weekly", analyticsCtl.Weekly)
			analytics.GET("/summary", analyticsCtl.Summary)
			analytics.POST("/weekly-email", analyticsCtl.EmailSummary)
		}

		api.GET("/ws/events", realtimeCtl.EventsWS)
		api.POST("/devices/register", deviceCtl.Register)

		dev := api.Group("/dev")
		{
			dev.POST("/push-test", devCtl.PushTest)
			dev.POST("/reset-today", devCtl.ResetToday)
		}
	}

	return r
}
