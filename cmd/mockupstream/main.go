package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

const mockToken = "mock-access-token"

func main() {
	port := "8081"

	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock aggregator running on port %s...\n", port)
	if err := http.ListenAndServe(addr, newMux()); err != nil {
		log.Fatal(err)
	}
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", TokenHandler)
	mux.HandleFunc("/v2/shopping/flight-offers", requireToken(FlightOffersHandler))
	mux.HandleFunc("/v1/reference-data/locations", requireToken(LocationsHandler))
	return mux
}
