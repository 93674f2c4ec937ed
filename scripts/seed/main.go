// Inserts 50 fake leads for dashboard development.
//
// Distribution mirrors realistic intake traffic: 50% China, 30% India, 20%
// spread across other countries; 4 of the 50 leads are already REACHED_OUT.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/garnizeh/leaddesk/internal/config"
	"github.com/garnizeh/leaddesk/internal/db"
	"github.com/garnizeh/leaddesk/internal/models"
	"github.com/garnizeh/leaddesk/internal/repository/sqlite"
)

const (
	total           = 50
	chinaCount      = 25 // 50 %
	indiaCount      = 15 // 30 %
	reachedOutCount = 4
)

var firstNames = []string{"Wei", "Ananya", "Jorge", "Fatima", "Liam", "Mei", "Raj", "Sofia", "Kenji", "Amara"}
var lastNames = []string{"Chen", "Patel", "Garcia", "Hassan", "Murphy", "Wang", "Sharma", "Rossi", "Tanaka", "Okafor"}
var otherCountries = []string{"FR", "BR", "NG", "AU", "DE", "MX", "KR", "ZA", "CA", "GB"}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	repo := sqlite.New(database)

	countries := make([]string, 0, total)
	for i := 0; i < chinaCount; i++ {
		countries = append(countries, "CN")
	}
	for i := 0; i < indiaCount; i++ {
		countries = append(countries, "IN")
	}
	for i := 0; len(countries) < total; i++ {
		countries = append(countries, otherCountries[i%len(otherCountries)])
	}
	rand.Shuffle(len(countries), func(i, j int) {
		countries[i], countries[j] = countries[j], countries[i]
	})

	reachedOut := map[int]bool{}
	for len(reachedOut) < reachedOutCount {
		reachedOut[rand.Intn(total)] = true
	}

	statusCounts := map[string]int{}
	for i := 0; i < total; i++ {
		first := firstNames[rand.Intn(len(firstNames))]
		last := lastNames[rand.Intn(len(lastNames))]

		status := models.StatusPending
		if reachedOut[i] {
			status = models.StatusReachedOut
		}
		statusCounts[status]++

		// 1-2 random visa categories
		cats := append([]string(nil), models.VisaCategories...)
		rand.Shuffle(len(cats), func(a, b int) { cats[a], cats[b] = cats[b], cats[a] })
		cats = cats[:1+rand.Intn(2)]

		lead := &models.Lead{
			FirstName:      first,
			LastName:       last,
			Email:          fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), 1000+rand.Intn(9000)),
			Country:        countries[i],
			LinkedinURL:    fmt.Sprintf("https://linkedin.com/in/%s-%s-%d", strings.ToLower(first), strings.ToLower(last), rand.Intn(100000)),
			VisaCategories: cats,
			Status:         status,
		}
		id, err := repo.CreateLead(ctx, lead)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed insert error: %v\n", err)
			os.Exit(1)
		}

		// spread creation over the last 7 days
		created := time.Now().Add(-time.Duration(rand.Intn(7*24)) * time.Hour).Unix()
		if _, err := database.Exec(ctx, `UPDATE leads SET created = ?, updated = ? WHERE id = ?`, created, created, id); err != nil {
			fmt.Fprintf(os.Stderr, "Seed timestamp error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seeded %d leads\n", total)
	fmt.Printf("  PENDING:     %d\n", statusCounts[models.StatusPending])
	fmt.Printf("  REACHED_OUT: %d\n", statusCounts[models.StatusReachedOut])
}
