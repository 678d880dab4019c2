// main.go
//
// A nutrition tracking data service with a shared food catalog
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of foodtrack.
// foodtrack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// foodtrack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with foodtrack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/localnerve/foodtrack/internal/config"
	"github.com/localnerve/foodtrack/internal/database"
	"github.com/localnerve/foodtrack/internal/services"
	"github.com/localnerve/foodtrack/internal/utils"
)

func main() {
	var healthURL string
	flag.StringVar(&healthURL, "url", "", "check a running server at this health URL instead of the database")
	flag.Parse()

	if healthURL != "" {
		if err := utils.CheckHealth(healthURL, 3*time.Second); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println("healthy")
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.DBType != "sqlite" {
		if err := utils.Dial(net.JoinHostPort(cfg.DBHost, cfg.DBPort), 3*time.Second); err != nil {
			printResult(services.HealthCheckResult{Status: "unhealthy", Database: "unreachable", ErrorMessage: err.Error()})
			os.Exit(1)
		}
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(context.Background(), cfg, db)

	printResult(result)

	// Exit with appropriate code
	if !result.Healthy() {
		database.Close(db)
		os.Exit(1)
	}
}

// printResult writes result as indented JSON
func printResult(result services.HealthCheckResult) {
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("{\"status\": %q}\n", result.Status)
		return
	}
	fmt.Println(string(output))
}
