package main

import (
	"net/http"

	"github.com/Umesh-JNU/jeff-backend/internal/api"
	"github.com/Umesh-JNU/jeff-backend/internal/auth"
	"github.com/Umesh-JNU/jeff-backend/internal/config"
	"github.com/Umesh-JNU/jeff-backend/internal/db"
	"github.com/Umesh-JNU/jeff-backend/internal/otp"
	"github.com/Umesh-JNU/jeff-backend/internal/storage"
	"github.com/Umesh-JNU/jeff-backend/internal/trips"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Info("Connected to MongoDB successfully")

	database := client.Database(cfg.MongoDB)

	users := &db.MongoUserCollection{Collection: database.Collection("users")}
	userLogs := &db.MongoUserLogCollection{Collection: database.Collection("userlogs")}
	trucks := &db.MongoTruckCollection{Collection: database.Collection("trucks")}
	locations := &db.MongoLocationCollection{Collection: database.Collection("locations")}
	mills := &db.MongoMillCollection{Collection: database.Collection("mills")}
	enquiries := &db.MongoEnquiryCollection{Collection: database.Collection("enquiries")}
	tripColl := &db.MongoTripCollection{Collection: database.Collection("trips")}
	subTrips := &db.MongoSubTripCollection{Collection: database.Collection("subtrips")}
	tx := &db.MongoTxRunner{Client: client}

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	uploader, err := storage.NewS3Uploader(cfg)
	if err != nil {
		log.Fatalf("Failed to create S3 uploader: %v", err)
	}

	otpGateway := otp.NewTwilioGateway(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioServiceSID)

	tripService := trips.NewService(tripColl, subTrips, trucks, tx, uploader)

	router := api.NewRouter(api.Deps{
		AuthService: authService,
		Users:       users,
		UserLogs:    userLogs,
		Trucks:      trucks,
		Locations:   locations,
		Mills:       mills,
		Enquiries:   enquiries,
		TripService: tripService,
		OTPGateway:  otpGateway,
		Uploader:    uploader,
		Tx:          tx,
	})

	log.Infof("HTTP server listening on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
