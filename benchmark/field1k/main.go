package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxFields int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	fieldIDs := make([]string, maxFields)
	for i := 0; i < maxFields; i++ {
		fieldIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v field IDs\n", maxFields)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	startTime := time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxFields; i++ {
		i := i
		wg.Add(1)
		go func() {
			postReading(fieldIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime := time.Since(startTime)

	fmt.Printf(
		"posted readings for %v fields: used time=%v seconds, throughput=%v reading/second\n",
		maxFields, usedTime.Seconds(), float64(maxFields)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64) float64 {
	return min + rnd.Float64()*(max-min)
}

func postReading(fieldID string) {
	payload := map[string]any{
		"readingId":           uuid.NewString(),
		"soilMoisturePercent": rndFloat64(5, 95),
		"temperatureC":        rndFloat64(-5, 45),
		"rainMm":              rndFloat64(0, 30),
		"measuredAtUtc":       time.Now().UTC().Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(
		fmt.Sprintf("http://%s/fields/%s/readings", httpHostPort, fieldID),
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		log.Println("failed to post reading:", err)
		return
	}
	defer resp.Body.Close()
}
