package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/benefitcheckout/lib/myconfig"
	"github.com/MarcGrol/benefitcheckout/lib/myhttpclient"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
	"github.com/MarcGrol/benefitcheckout/lib/mymetrics"
	"github.com/MarcGrol/benefitcheckout/lib/mypublisher"
	"github.com/MarcGrol/benefitcheckout/lib/mypubsub"
	"github.com/MarcGrol/benefitcheckout/lib/mytime"
	"github.com/MarcGrol/benefitcheckout/lib/myuuid"
	"github.com/MarcGrol/benefitcheckout/services/checkout"
	"github.com/MarcGrol/benefitcheckout/services/health"
	"github.com/MarcGrol/benefitcheckout/services/publicform"
	"github.com/MarcGrol/benefitcheckout/services/storefront"
	"github.com/MarcGrol/benefitcheckout/services/transactions"
	"github.com/MarcGrol/benefitcheckout/services/transactions/txstore"
)

func main() {
	c := context.Background()

	cfg, err := myconfig.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}
	mylog.Configure(cfg.ProjectID)

	router := mux.NewRouter()
	nower := mytime.RealNower{}

	transactionStore, storeCleanup, err := txstore.New(c, cfg)
	if err != nil {
		log.Fatalf("Error creating transaction store: %s", err)
	}
	defer storeCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c, cfg.ProjectID)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	err = pubsub.CreateTopic(c, transactions.TopicName)
	if err != nil {
		log.Fatalf("Error creating topic %s: %s", transactions.TopicName, err)
	}
	publisher := mypublisher.New(pubsub, nower)

	{
		checkoutService := checkout.NewWebService(
			checkout.NewPayer(cfg.Stripe.SecretKey),
			checkout.DefaultCatalog,
			checkout.Policy{MinDonation: cfg.Checkout.MinDonation},
			checkout.NewRedirectURLs(cfg.Frontend.BaseURL))
		err = checkoutService.RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering checkout service: %s", err)
		}
	}

	{
		transactionService := transactions.NewWebService(transactions.NewVerifier(cfg.Stripe.WebhookSecret), nower, transactionStore, publisher)
		err = transactionService.RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering transaction service: %s", err)
		}
	}

	{
		formService := publicform.NewWebService(publicform.NewCRMClient(cfg.CRM.BaseURL, myhttpclient.New()), myuuid.RealUUIDer{})
		err = formService.RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering public form service: %s", err)
		}
	}

	{
		storefrontService := storefront.NewWebService(storefront.Offer{
			PublishableKey:   cfg.Stripe.PublishableKey,
			TicketPriceMinor: checkout.DefaultCatalog.TicketPriceMinor,
			MinDonation:      cfg.Checkout.MinDonation,
		})
		err = storefrontService.RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering storefront service: %s", err)
		}
	}

	{
		healthService := health.NewWebService(nower, transactionStore)
		err = healthService.RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering health service: %s", err)
		}
	}

	router.Handle("/metrics", mymetrics.Handler()).Methods("GET")

	startWebServerBlocking(cfg, withCORS(cfg.Frontend.BaseURL, router))
}

// withCORS lets the browser frontend, and only that origin, call the api with credentials.
func withCORS(frontendURL string, handler http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})(handler)
}

func startWebServerBlocking(cfg myconfig.Config, handler http.Handler) {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting %s webserver on port %s (try http://localhost:%s)", cfg.Environment, cfg.Port, cfg.Port)
	err := server.ListenAndServe()
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", cfg.Port, err)
	}
}
