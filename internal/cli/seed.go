package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"kartografi-service/internal/config"
	"kartografi-service/internal/domain"
	mongostore "kartografi-service/internal/infra/mongo"
)

// NewSeedCmd creates indexes and loads the city coordinate table.
func NewSeedCmd(configPath *string) *cobra.Command {
	var citiesPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create Mongo indexes and load the city table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, citiesPath)
		},
	}
	cmd.Flags().StringVar(&citiesPath, "cities", "", "CSV file of city,lat,lng rows")
	return cmd
}

func runSeed(ctx context.Context, configPath, citiesPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Mongo.URI == "" {
		return fmt.Errorf("mongo uri not configured")
	}

	client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Println("indexes created")

	if citiesPath == "" {
		return nil
	}

	cities, err := readCitiesCSV(citiesPath)
	if err != nil {
		return err
	}
	if err := mongostore.NewCityStore(db).Insert(ctx, cities); err != nil {
		return err
	}
	log.Printf("seeded %d cities", len(cities))
	return nil
}

func readCitiesCSV(path string) ([]domain.City, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cities := make([]domain.City, 0, len(records))
	for i, record := range records {
		if len(record) < 3 {
			return nil, fmt.Errorf("%s line %d: want city,lat,lng", path, i+1)
		}
		if i == 0 && record[0] == "city" {
			continue
		}
		lat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad lat: %w", path, i+1, err)
		}
		lng, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad lng: %w", path, i+1, err)
		}
		cities = append(cities, domain.City{Name: record[0], Lat: lat, Lng: lng})
	}
	return cities, nil
}
