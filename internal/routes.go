package internal

import (
	"mindmate/internal/controllers"
	"mindmate/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/moods", http.HandlerFunc(apiController.GetMoodOptions))
	routers.Get("/mood", http.HandlerFunc(apiController.GetMood))
	routers.Post("/mood/select", http.HandlerFunc(apiController.SelectMood))
	routers.Post("/mood/intensity", http.HandlerFunc(apiController.SetIntensity))
	routers.Post("/mood/journal", http.HandlerFunc(apiController.SetJournal))
	routers.Post("/mood/submit", http.HandlerFunc(apiController.SubmitMood))
	routers.Post("/mood/reset", http.HandlerFunc(apiController.ResetMood))
	routers.Get("/daily", http.HandlerFunc(apiController.GetDaily))
	routers.Get("/weekly", http.HandlerFunc(apiController.GetWeekly))
	return routers
}
