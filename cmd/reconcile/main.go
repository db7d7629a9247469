package main

import (
	"buildcost/internal/app/dsn"
	"buildcost/internal/app/procurement"
	"buildcost/internal/app/repository"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Проверка счётчиков закупленного по смете: reconcile -tenant 1 -estimate 42
func main() {
	tenantID := flag.Uint("tenant", 0, "ID тенанта")
	estimateID := flag.Uint("estimate", 0, "ID сметы")
	flag.Parse()

	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}
	if *tenantID == 0 || *estimateID == 0 {
		flag.Usage()
		os.Exit(2)
	}

	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	service := procurement.NewService(repo)
	scope := procurement.Scope{TenantID: *tenantID}

	discrepancies, err := service.Audit(context.Background(), scope, *estimateID)
	if err != nil {
		logrus.Fatal(err)
	}

	if len(discrepancies) == 0 {
		fmt.Printf("estimate %d: in sync\n", *estimateID)
		return
	}
	for _, d := range discrepancies {
		fmt.Printf("requirement %d: purchased=%s ledger=%s entries=%d\n",
			d.RequirementID, d.PurchasedQuantity, d.LedgerQuantity, d.LedgerEntries)
	}
	os.Exit(1)
}
