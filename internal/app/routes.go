package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Monthly views
	r.HandleFunc("/api/summary", deps.SummaryHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/score", deps.ScoreHandler.GetScore).Methods("GET")
	r.HandleFunc("/api/projection", deps.ProjectionHandler.GetProjection).Methods("GET")
	r.HandleFunc("/api/comparison", deps.ComparisonHandler.CompareMonths).Methods("GET")

	// Contributions
	r.HandleFunc("/api/contribution", deps.ContributionHandler.ListWallets).Methods("GET")
	r.HandleFunc("/api/contribution/{contributionId}/skip", deps.SkipHandler.ToggleSkip).Methods("PUT")

	// Category budgets
	r.HandleFunc("/api/budget", deps.CategoryBudgetHandler.ListBudgets).Methods("GET")
	r.HandleFunc("/api/budget", deps.CategoryBudgetHandler.SetBudget).Methods("PUT")

	// Assets
	r.HandleFunc("/api/asset", deps.AssetHandler.ListAssets).Methods("GET")
	r.HandleFunc("/api/asset", deps.AssetHandler.CreateAsset).Methods("POST")
	r.HandleFunc("/api/asset/yield", deps.AssetHandler.GetYield).Methods("GET")
	r.HandleFunc("/api/asset/{assetId}", deps.AssetHandler.UpdateAsset).Methods("PUT")
	r.HandleFunc("/api/asset/{assetId}", deps.AssetHandler.DeleteAsset).Methods("DELETE")
}
