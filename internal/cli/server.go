package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"kartografi-service/internal/app"
	"kartografi-service/internal/config"
	"kartografi-service/internal/domain"
	"kartografi-service/internal/infra/memory"
	mongostore "kartografi-service/internal/infra/mongo"
	redisinfra "kartografi-service/internal/infra/redis"
	"kartografi-service/internal/quiz"
	"kartografi-service/internal/restcountries"
	transport "kartografi-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the kartografi backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "5000"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	countriesClient := restcountries.New(
		cfg.Countries.BaseURL,
		config.TTLDuration(cfg.Countries.Timeout, 10*time.Second),
	)
	countriesTTL := config.TTLDuration(cfg.Countries.TTL, memory.DefaultCountriesTTL)

	var countries quiz.CountrySource
	if redisClient != nil {
		countries = redisinfra.NewCountriesCache(redisClient, countriesClient, countriesTTL)
	} else {
		countries = memory.NewCountriesCache(countriesClient, countriesTTL)
	}
	quizService := quiz.NewService(countries, countriesClient)

	var userStore app.UserStore = memory.NewUserStore()
	var lbStore app.LeaderboardStore = memory.NewLeaderboardStore()
	var cityStore app.CityStore = memory.NewCityStore(sampleCities())
	if cfg.Mongo.URI != "" {
		client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		db := client.Database(cfg.Mongo.Database)
		userStore = mongostore.NewUserStore(db)
		lbStore = mongostore.NewLeaderboardStore(db)
		cityStore = mongostore.NewCityStore(db)
	} else {
		log.Println("no mongo uri configured, using in-memory stores")
	}

	var lbCache app.LeaderboardCache
	if redisClient != nil {
		lbCache = redisinfra.NewLeaderboardCache(redisClient)
	}

	feed := app.NewScoreFeed()
	userService := app.NewUserService(userStore)
	lbService := app.NewLeaderboardService(lbStore, userStore, lbCache, feed)

	router := transport.NewRouter(&transport.Container{
		Quiz:        quizService,
		Users:       userService,
		Leaderboard: lbService,
		Cities:      cityStore,
		Feed:        feed,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting kartografi backend on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleCities backs the in-memory fallback; production deployments seed the
// city table into Mongo with the seed command.
func sampleCities() []domain.City {
	return []domain.City{
		{Name: "Ljubljana", Lat: 46.0569, Lng: 14.5058},
		{Name: "Maribor", Lat: 46.5547, Lng: 15.6459},
		{Name: "Celje", Lat: 46.2311, Lng: 15.2683},
	}
}
