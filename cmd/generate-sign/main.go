// Prints a status-check sign for a collect request id, for debugging
// gateway calls by hand.
//
// Usage: go run ./cmd/generate-sign <collect_request_id>
package main

import (
	"fmt"
	"log"
	"os"

	"schoolpay_backend/internals/configs"
	"schoolpay_backend/internals/features/payments/service"
)

func main() {
	configs.LoadEnv()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: generate-sign <collect_request_id>")
		os.Exit(1)
	}
	collectRequestID := os.Args[1]

	cfg := configs.LoadApp()
	signer := service.NewSignGenerator(cfg.Gateway)

	sign, err := signer.SignForStatus(collectRequestID)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Println("Generated Sign:", sign)
}
