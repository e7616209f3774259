package api

import (
	"net/http"

	"github.com/Umesh-JNU/jeff-backend/internal/auth"
	"github.com/Umesh-JNU/jeff-backend/internal/db"
	"github.com/Umesh-JNU/jeff-backend/internal/handlers"
	"github.com/Umesh-JNU/jeff-backend/internal/middleware"
	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/Umesh-JNU/jeff-backend/internal/otp"
	"github.com/Umesh-JNU/jeff-backend/internal/storage"
	"github.com/Umesh-JNU/jeff-backend/internal/trips"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	AuthService *auth.Service
	Users       db.UserCollection
	UserLogs    db.UserLogCollection
	Trucks      db.TruckCollection
	Locations   db.LocationCollection
	Mills       db.MillCollection
	Enquiries   db.EnquiryCollection
	TripService *trips.Service
	OTPGateway  otp.Gateway
	Uploader    storage.Uploader
	Tx          db.TxRunner
}

// NewRouter builds the HTTP surface.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMW := middleware.NewAuthMiddleware(deps.AuthService)
	userHandler := handlers.NewUserHandler(deps.AuthService, deps.Users, deps.UserLogs, deps.OTPGateway, deps.Uploader, deps.Tx)
	adminHandler := handlers.NewAdminHandler(deps.AuthService, deps.Users, deps.UserLogs, deps.Uploader)
	enquiryHandler := handlers.NewEnquiryHandler(deps.Enquiries, deps.Uploader)
	tripHandler := handlers.NewTripHandler(deps.TripService)
	truckHandler := handlers.NewTruckHandler(deps.Trucks)
	locationHandler := handlers.NewLocationHandler(deps.Locations)
	millHandler := handlers.NewMillHandler(deps.Mills, deps.Locations, deps.Tx)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/user/register", userHandler.Register)
		r.Post("/user/login", userHandler.Login)
		r.Post("/user/verify-otp", userHandler.VerifyOTP)
		r.Post("/user/resend-otp", userHandler.ResendOTP)
		r.Post("/admin/login", adminHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Get("/user/profile", userHandler.GetProfile)
			r.Put("/user/update-profile", userHandler.UpdateProfile)
			r.Put("/user/update-password", userHandler.UpdatePassword)
			r.Delete("/user/delete-account", userHandler.DeleteAccount)
			r.Put("/user/check-in", userHandler.CheckIn)
			r.Put("/user/check-out", userHandler.CheckOut)

			r.Post("/trip", tripHandler.CreateTrip)
			r.Get("/trip/current", tripHandler.GetCurrentTrip)
			r.Get("/trip/history", tripHandler.GetHistory)
			r.Put("/trip/{id}", tripHandler.UpdateTrip)
			r.Put("/trip/{id}/shift-change", tripHandler.ShiftChange)
			r.Post("/sub-trip", tripHandler.CreateSubTrip)
			r.Put("/sub-trip/{id}", tripHandler.UpdateSubTrip)

			r.Get("/truck", truckHandler.ListTrucks)
			r.Get("/truck/{id}", truckHandler.GetTruck)
			r.Get("/location", locationHandler.ListLocations)
			r.Get("/location/{id}", locationHandler.GetLocation)
			r.Get("/mill", millHandler.ListMills)
			r.Get("/mill/{id}", millHandler.GetMill)

			r.Post("/enquiry", enquiryHandler.CreateEnquiry)

			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireRole(models.RoleAdmin))

				r.Get("/trip", tripHandler.ListTrips)
				r.Delete("/trip/{id}", tripHandler.DeleteTrip)

				r.Post("/truck", truckHandler.CreateTruck)
				r.Put("/truck/{id}", truckHandler.UpdateTruck)
				r.Delete("/truck/{id}", truckHandler.DeleteTruck)

				r.Post("/location", locationHandler.CreateLocation)
				r.Put("/location/{id}", locationHandler.UpdateLocation)
				r.Delete("/location/{id}", locationHandler.DeleteLocation)

				r.Post("/mill", millHandler.CreateMill)
				r.Put("/mill/{id}", millHandler.UpdateMill)
				r.Delete("/mill/{id}", millHandler.DeleteMill)

				r.Get("/enquiry", enquiryHandler.ListEnquiries)
				r.Get("/enquiry/{id}", enquiryHandler.GetEnquiry)
				r.Put("/enquiry/{id}", enquiryHandler.UpdateEnquiry)
				r.Delete("/enquiry/{id}", enquiryHandler.DeleteEnquiry)

				r.Get("/admin/user", adminHandler.ListUsers)
				r.Get("/admin/user/{id}", adminHandler.GetUser)
				r.Delete("/admin/user/{id}", adminHandler.DeleteUser)
				r.Post("/admin/sale-person", adminHandler.CreateSalePerson)
				r.Post("/admin/image", adminHandler.UploadImage)
				r.Post("/admin/images", adminHandler.UploadImages)
			})
		})
	})

	return r
}
